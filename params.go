package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/demos-qa/telerik-demos-tests/config"
	"github.com/demos-qa/telerik-demos-tests/framework"
)

type commandParams struct {
	configPath string
	baseURL    string
	filters    framework.RegexFilters
	browsers   browserList
	workers    int
	retries    int
	headed     bool
	install    bool
	debug      bool
	debugAll   bool
	verbose    bool
}

// browserList collects -browser flags; each may also be a comma-separated list.
type browserList []string

func (b browserList) String() string {
	return strings.Join(b, ",")
}

func (b *browserList) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*b = append(*b, v)
		}
	}
	return nil
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.configPath, "config", "", "YAML file overriding the default configuration")
	fs.StringVar(&c.baseURL, "url", "", "origin of the site under test (default from configuration)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.Var(&c.browsers, "browser", "browser project(s) to run: chromium, firefox, webkit")
	fs.IntVar(&c.workers, "workers", 0, "maximum number of tests running at once (default from configuration)")
	fs.IntVar(&c.retries, "retries", -1, "number of times to retry a failed test (default from configuration)")
	fs.BoolVar(&c.headed, "headed", false, "show the browser windows")
	fs.BoolVar(&c.install, "install", false, "install the Playwright driver and browsers before running")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.verbose, "verbose", false, "print each test as it starts and each error as it happens")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	return true
}

// Apply overrides configuration values with any that were given on the command line.
func (c *commandParams) Apply(cfg *config.Config) {
	if c.baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(c.baseURL, "/")
	}
	if len(c.browsers) > 0 {
		cfg.Browsers = c.browsers
	}
	if c.workers > 0 {
		cfg.Workers = c.workers
	}
	if c.retries >= 0 {
		cfg.Retries = c.retries
	}
	if c.headed {
		cfg.Headless = false
	}
}

// rerunCommand builds a command line that runs only the given failed tests again with the
// same settings.
func (c *commandParams) rerunCommand(program string, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program)
	if c.configPath != "" {
		b.add("-config", c.configPath)
	}
	if c.baseURL != "" {
		b.add("-url", c.baseURL)
	}
	if len(c.browsers) > 0 {
		b.add("-browser", c.browsers.String())
	}
	if c.headed {
		b.add("-headed")
	}
	if c.debug || c.debugAll {
		b.add("-debug")
	}
	for _, f := range failures {
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
