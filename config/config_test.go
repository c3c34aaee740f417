package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(name string) string { return values[name] }
}

func TestIsCI(t *testing.T) {
	assert.False(t, IsCI(envOf(nil)))
	assert.False(t, IsCI(envOf(map[string]string{"CI": "false"})))
	assert.False(t, IsCI(envOf(map[string]string{"CI": "0"})))
	assert.True(t, IsCI(envOf(map[string]string{"CI": "true"})))
	assert.True(t, IsCI(envOf(map[string]string{"CI": "1"})))
}

func TestLocalProfile(t *testing.T) {
	c := Default(false)
	require.NoError(t, c.Validate())
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, 0, c.Retries)
	assert.False(t, c.ForbidFocused)
	assert.Equal(t, "https://www.telerik.com/support/demos", c.DemosURL())
	assert.Equal(t, []string{"chromium"}, c.Browsers)
	assert.Equal(t, Viewport{Width: 1920, Height: 1080}, c.Viewport)
	assert.Equal(t, 15*time.Second, c.Timeouts.Action)
	assert.Equal(t, 30*time.Second, c.Timeouts.Navigation)
	assert.Equal(t, 10*time.Second, c.Timeouts.Expect)
	assert.Equal(t, 40*time.Second, c.Timeouts.Test)
	assert.Equal(t, ScreenshotOnlyOnFailure, c.Screenshot)
	for _, r := range []string{ReporterList, ReporterJSON, ReporterJUnit, ReporterHTML} {
		assert.True(t, c.HasReporter(r), r)
	}
}

func TestCIProfile(t *testing.T) {
	c := Default(true)
	require.NoError(t, c.Validate())
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, 1, c.Retries)
	assert.True(t, c.ForbidFocused)
	assert.True(t, c.CI)
}

func TestReportPaths(t *testing.T) {
	c := Default(false)
	assert.Equal(t, filepath.Join("test-results", "screenshots"), c.ScreenshotDir())
	assert.Equal(t, filepath.Join("test-results", "json-report", "results.json"), c.JSONReportPath())
	assert.Equal(t, filepath.Join("test-results", "junit-report", "results.xml"), c.JUnitReportPath())
	assert.Equal(t, filepath.Join("playwright-report", "index.html"), c.HTMLReportPath())
}

func TestLoadWithoutFileReturnsProfile(t *testing.T) {
	c, err := Load("", true)
	require.NoError(t, err)
	assert.Equal(t, Default(true), c)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
baseURL: http://localhost:8080
browsers: [chromium, firefox]
workers: 5
timeouts:
  test: 90s
settleDelay: 500ms
reporters: [list]
`), 0o600))

	c, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL)
	assert.Equal(t, DefaultDemosPath, c.DefaultPath)
	assert.Equal(t, []string{"chromium", "firefox"}, c.Browsers)
	assert.Equal(t, 5, c.Workers)
	assert.Equal(t, 90*time.Second, c.Timeouts.Test)
	assert.Equal(t, 15*time.Second, c.Timeouts.Action)
	assert.Equal(t, 500*time.Millisecond, c.SettleDelay)
	assert.True(t, c.HasReporter(ReporterList))
	assert.False(t, c.HasReporter(ReporterHTML))
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 0\nbrowsers: [netscape]\nscreenshot: sometimes\n"), 0o600))

	_, err := Load(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers must be at least 1")
	assert.Contains(t, err.Error(), `unknown browser "netscape"`)
	assert.Contains(t, err.Error(), `unknown screenshot mode "sometimes"`)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [\n"), 0o600))

	_, err := Load(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed config file")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"), false)
	assert.Error(t, err)
}
