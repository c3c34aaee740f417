// Package config holds the run configuration: which browsers to drive, how long each kind
// of operation may take, how many tests run at once, and where reports go.
//
// A Config is an explicit value. It is built from a profile (local or CI), optionally
// overlaid with a YAML file, and then passed to everything that needs it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL     = "https://www.telerik.com"
	DefaultDemosPath   = "/support/demos"
	DefaultProjectName = "chromium"
)

// Screenshot modes.
const (
	ScreenshotOff           = "off"
	ScreenshotOn            = "on"
	ScreenshotOnlyOnFailure = "only-on-failure"
)

// Reporter names.
const (
	ReporterList  = "list"
	ReporterJSON  = "json"
	ReporterJUnit = "junit"
	ReporterHTML  = "html"
)

var knownBrowsers = []string{"chromium", "firefox", "webkit"}

var knownReporters = []string{ReporterList, ReporterJSON, ReporterJUnit, ReporterHTML}

type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Timeouts struct {
	// Action limits a single interaction such as a click or fill.
	Action time.Duration `yaml:"action"`
	// Navigation limits loading a page.
	Navigation time.Duration `yaml:"navigation"`
	// Expect limits how long an assertion keeps polling for its condition.
	Expect time.Duration `yaml:"expect"`
	// Test limits one attempt of one test.
	Test time.Duration `yaml:"test"`
}

type Config struct {
	BaseURL     string   `yaml:"baseURL"`
	DefaultPath string   `yaml:"defaultPath"`
	Browsers    []string `yaml:"browsers"`
	Headless    bool     `yaml:"headless"`
	Viewport    Viewport `yaml:"viewport"`

	Workers       int  `yaml:"workers"`
	Retries       int  `yaml:"retries"`
	ForbidFocused bool `yaml:"forbidFocused"`

	Timeouts     Timeouts      `yaml:"timeouts"`
	SettleDelay  time.Duration `yaml:"settleDelay"`
	ScrollSettle time.Duration `yaml:"scrollSettle"`

	Screenshot string   `yaml:"screenshot"`
	Reporters  []string `yaml:"reporters"`
	ReportDir  string   `yaml:"reportDir"`
	ResultsDir string   `yaml:"resultsDir"`

	CI bool `yaml:"-"`
}

// IsCI reports whether the CI environment variable is set to something truthy.
func IsCI(getenv func(string) string) bool {
	v := strings.TrimSpace(strings.ToLower(getenv("CI")))
	return v != "" && v != "0" && v != "false"
}

// Default returns the profile for local runs, or for continuous integration if ci is true.
// CI runs use fewer workers, retry failed tests once, and refuse focused tests.
func Default(ci bool) Config {
	c := Config{
		BaseURL:     DefaultBaseURL,
		DefaultPath: DefaultDemosPath,
		Browsers:    []string{DefaultProjectName},
		Headless:    true,
		Viewport:    Viewport{Width: 1920, Height: 1080},
		Workers:     3,
		Retries:     0,
		Timeouts: Timeouts{
			Action:     15 * time.Second,
			Navigation: 30 * time.Second,
			Expect:     10 * time.Second,
			Test:       40 * time.Second,
		},
		SettleDelay:  3 * time.Second,
		ScrollSettle: time.Second,
		Screenshot:   ScreenshotOnlyOnFailure,
		Reporters:    append([]string(nil), knownReporters...),
		ReportDir:    "playwright-report",
		ResultsDir:   "test-results",
		CI:           ci,
	}
	if ci {
		c.Workers = 2
		c.Retries = 1
		c.ForbidFocused = true
	}
	return c
}

// Load returns the default profile overlaid with the YAML file at path, if path is not
// empty. Fields missing from the file keep their profile values.
func Load(path string, ci bool) (Config, error) {
	c := Default(ci)
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("malformed config file %s: %w", path, err)
	}
	c.CI = ci
	return c, c.Validate()
}

func (c Config) Validate() error {
	var problems []string
	if c.BaseURL == "" {
		problems = append(problems, "baseURL is required")
	}
	if c.Workers < 1 {
		problems = append(problems, "workers must be at least 1")
	}
	if c.Retries < 0 {
		problems = append(problems, "retries must not be negative")
	}
	if c.Timeouts.Action <= 0 || c.Timeouts.Navigation <= 0 || c.Timeouts.Expect <= 0 || c.Timeouts.Test <= 0 {
		problems = append(problems, "timeouts must be positive")
	}
	if c.SettleDelay < 0 || c.ScrollSettle < 0 {
		problems = append(problems, "settle delays must not be negative")
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		problems = append(problems, "viewport must have a positive size")
	}
	if len(c.Browsers) == 0 {
		problems = append(problems, "at least one browser is required")
	}
	for _, b := range c.Browsers {
		if !contains(knownBrowsers, b) {
			problems = append(problems, fmt.Sprintf("unknown browser %q", b))
		}
	}
	for _, r := range c.Reporters {
		if !contains(knownReporters, r) {
			problems = append(problems, fmt.Sprintf("unknown reporter %q", r))
		}
	}
	switch c.Screenshot {
	case ScreenshotOff, ScreenshotOn, ScreenshotOnlyOnFailure:
	default:
		problems = append(problems, fmt.Sprintf("unknown screenshot mode %q", c.Screenshot))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DemosURL is the page most tests start from.
func (c Config) DemosURL() string {
	return c.BaseURL + c.DefaultPath
}

func (c Config) HasReporter(name string) bool {
	return contains(c.Reporters, name)
}

func (c Config) ScreenshotDir() string {
	return filepath.Join(c.ResultsDir, "screenshots")
}

func (c Config) JSONReportPath() string {
	return filepath.Join(c.ResultsDir, "json-report", "results.json")
}

func (c Config) JUnitReportPath() string {
	return filepath.Join(c.ResultsDir, "junit-report", "results.xml")
}

func (c Config) HTMLReportPath() string {
	return filepath.Join(c.ReportDir, "index.html")
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
