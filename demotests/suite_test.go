package demotests

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/demos-qa/telerik-demos-tests/browser"
	"github.com/demos-qa/telerik-demos-tests/config"
	"github.com/demos-qa/telerik-demos-tests/fixtures"
	"github.com/demos-qa/telerik-demos-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSessions struct {
	projects []string
}

func (f *failingSessions) NewSession(ctx context.Context, project string) (*browser.Session, error) {
	f.projects = append(f.projects, project)
	return nil, errors.New("browser not available")
}

func testEnvironment(t *testing.T, browsers ...string) *Environment {
	data, err := fixtures.Load()
	require.NoError(t, err)
	cfg := config.Default(false)
	if len(browsers) > 0 {
		cfg.Browsers = browsers
	}
	return &Environment{Config: cfg, Sessions: &failingSessions{}, Data: data}
}

func TestPlanDeclaresEverySuite(t *testing.T) {
	tests := Plan(testEnvironment(t)).Tests()
	require.Len(t, tests, 64)

	suites := make(map[string]int)
	tcPattern := regexp.MustCompile(`^TC(\d{3}): `)
	seen := make(map[string]bool)
	for _, test := range tests {
		require.Len(t, test.ID.Path, 3, test.ID.String())
		assert.Equal(t, "chromium", test.ID.Path[0])
		suites[test.ID.Path[1]]++

		m := tcPattern.FindStringSubmatch(test.ID.Name())
		require.NotNil(t, m, test.ID.Name())
		assert.False(t, seen[m[1]], "duplicate test case %s", m[1])
		seen[m[1]] = true
		assert.False(t, test.Focused, test.ID.String())
	}
	assert.Len(t, suites, 7)
	assert.Equal(t, 9, suites["Reporting, Testing & Other Sections Tests"])
	assert.Equal(t, 5, suites["Additional Robust Tests"])
	assert.False(t, seen["040"])
}

func TestPlanRepeatsTestsForEveryProject(t *testing.T) {
	tests := Plan(testEnvironment(t, "chromium", "firefox")).Tests()
	require.Len(t, tests, 128)
	assert.Equal(t, "chromium", tests[0].ID.Path[0])
	assert.Equal(t, "firefox", tests[64].ID.Path[0])
	assert.Equal(t, tests[0].ID.Name(), tests[64].ID.Name())
}

func TestLinkAuditHasLongerTimeout(t *testing.T) {
	for _, test := range Plan(testEnvironment(t)).Tests() {
		if strings.HasPrefix(test.ID.Name(), "TC058:") {
			assert.Equal(t, 60*time.Second, test.Timeout)
		} else {
			assert.Zero(t, test.Timeout, test.ID.String())
		}
	}
}

func TestTestFailsWhenSessionCannotOpen(t *testing.T) {
	env := testEnvironment(t)
	sessions := env.Sessions.(*failingSessions)
	tests := Plan(env).Tests()[:2]

	results, err := framework.Run(tests, framework.RunOptions{Workers: 1}, nil)
	require.NoError(t, err)
	require.Len(t, results.Failures, 2)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "could not open browser session")
	assert.Equal(t, framework.CategoryAssertion, results.Failures[0].Category)
	assert.Equal(t, []string{"chromium", "chromium"}, sessions.projects)
}

func TestFocusedTestsNarrowTheRun(t *testing.T) {
	env := testEnvironment(t)
	plan := framework.NewPlan()
	s := &Suite{plan: plan, env: env, project: "chromium"}
	s.Test("ordinary", func(t *T) {})
	s.Only("focused", func(t *T) {})

	tests := plan.Tests()
	require.Len(t, tests, 2)
	assert.False(t, tests[0].Focused)
	assert.True(t, tests[1].Focused)

	_, err := framework.Run(tests, framework.RunOptions{ForbidFocused: true}, nil)
	assert.ErrorIs(t, err, framework.ErrFocusedTests)
}

func TestScreenshotName(t *testing.T) {
	assert.Equal(t, "chromium_tc046-_test_dropdown-select_menus_in_forms_failure",
		screenshotName("chromium", "TC046: Test dropdown/select menus in forms", "failure", 0))
	assert.Equal(t, "webkit_tc001-_verify_homepage_failure-retry1",
		screenshotName("webkit", "TC001: Verify homepage", "failure", 1))
	assert.Equal(t, "chromium_tc003-_verify_main_heading_-demos-_is_visible_final",
		screenshotName("chromium", `TC003: Verify main heading "Demos" is visible`, "final", 0))
}

func TestDescribe(t *testing.T) {
	err := errors.New("timed out")
	assert.Equal(t, "timed out", describe(err, nil))
	assert.Equal(t, "link should be visible: timed out", describe(err, []interface{}{"%s should be visible", "link"}))
	assert.Equal(t, "plain: timed out", describe(err, []interface{}{"plain"}))
}
