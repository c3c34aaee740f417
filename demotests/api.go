package demotests

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/demos-qa/telerik-demos-tests/browser"
	"github.com/demos-qa/telerik-demos-tests/config"
	"github.com/demos-qa/telerik-demos-tests/fixtures"
	"github.com/demos-qa/telerik-demos-tests/framework"
	"github.com/demos-qa/telerik-demos-tests/helpers"
	"github.com/demos-qa/telerik-demos-tests/linkcheck"

	"github.com/stretchr/testify/require"
)

// SessionFactory opens browser sessions. *browser.Launcher implements it.
type SessionFactory interface {
	NewSession(ctx context.Context, project string) (*browser.Session, error)
}

// Environment is everything the tests share. None of it is mutated by tests.
type Environment struct {
	Config   config.Config
	Sessions SessionFactory
	Data     fixtures.Data
	// HTTPClient is used for link probes that bypass the browser.
	HTTPClient *http.Client
}

// T represents one attempt of one test.
//
// It implements the same basic functionality as Go's testing.T, so the assert and require
// packages can be used with it, and it owns the browser session the test runs in. The
// session is opened before the test's own code runs and closed when the test ends, even if
// the test times out.
//
// Methods that interact with the page fail the test and exit immediately if the browser
// reports an error. Probe methods such as Count and Visible never fail.
type T struct {
	context    *framework.Context
	env        *Environment
	project    string
	session    *browser.Session
	page       *browser.Page
	lock       sync.Mutex
	screenshot bool
}

func newTestScope(c *framework.Context, env *Environment, project string) *T {
	return &T{context: c, env: env, project: project}
}

// open starts the browser session. If the test's deadline expires, the session is closed
// from here so that whatever the test is waiting on fails promptly.
func (t *T) open() {
	session, err := t.env.Sessions.NewSession(t.context.Context(), t.project)
	require.NoError(t, err, "could not open browser session")
	t.session = session
	t.page = session.Page
	t.page.SetLogger(t.context.DebugLogger())

	done := make(chan struct{})
	t.context.Defer(t.close)
	t.context.Defer(func() { close(done) })
	t.context.Defer(t.captureOnFinish)
	go func() {
		select {
		case <-t.context.Context().Done():
			if t.context.Context().Err() == context.DeadlineExceeded {
				t.captureFailure()
			}
			_ = t.session.Close()
		case <-done:
		}
	}()
}

func (t *T) close() {
	if t.session != nil {
		if err := t.session.Close(); err != nil {
			t.Debug("error closing browser session: %s", err)
		}
	}
}

func (t *T) captureOnFinish() {
	switch t.env.Config.Screenshot {
	case config.ScreenshotOn:
		t.capture("final")
	case config.ScreenshotOnlyOnFailure:
		if t.context.Failed() {
			t.captureFailure()
		}
	}
}

func (t *T) captureFailure() {
	if t.env.Config.Screenshot != config.ScreenshotOff {
		t.capture("failure")
	}
}

// capture takes at most one automatic screenshot per attempt.
func (t *T) capture(kind string) {
	t.lock.Lock()
	if t.screenshot || t.page == nil {
		t.lock.Unlock()
		return
	}
	t.screenshot = true
	t.lock.Unlock()
	t.Screenshot(screenshotName(t.project, t.context.ID().Name(), kind, t.context.Attempt()))
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Skip ends the test without failing it. Tests call this when an optional part of the page
// is not there.
func (t *T) Skip(reason string) {
	t.Debug("skipping: %s", reason)
	t.context.SkipWithReason(reason)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) Context() context.Context {
	return t.context.Context()
}

func (t *T) Project() string {
	return t.project
}

func (t *T) Config() config.Config {
	return t.env.Config
}

func (t *T) Data() fixtures.Data {
	return t.env.Data
}

// Page gives direct access to the page facade.
func (t *T) Page() *browser.Page {
	return t.page
}

// RequireNoError fails the test and exits if err is not nil. Timeouts are recorded as such
// rather than as assertion failures.
func (t *T) RequireNoError(err error, msgAndArgs ...interface{}) {
	if err == nil {
		return
	}
	if browser.IsTimeout(err) {
		t.context.Timeoutf("%s", describe(err, msgAndArgs))
		t.FailNow()
	}
	require.NoError(t, err, msgAndArgs...)
}

func describe(err error, msgAndArgs []interface{}) string {
	if len(msgAndArgs) == 0 {
		return err.Error()
	}
	msg := fmt.Sprint(msgAndArgs[0])
	if len(msgAndArgs) > 1 {
		msg = fmt.Sprintf(msg, msgAndArgs[1:]...)
	}
	return msg + ": " + err.Error()
}

// Navigate loads a path on the site under test, or the demos page if path is empty.
func (t *T) Navigate(path string) {
	t.RequireNoError(t.page.NavigateTo(path))
}

func (t *T) WaitForLoad() {
	t.RequireNoError(t.page.WaitForLoad())
}

// ScrollTo scrolls the window to a vertical offset and waits for content to settle.
func (t *T) ScrollTo(y int) {
	t.RequireNoError(t.page.ScrollPage(y))
}

func (t *T) Pause(d time.Duration) {
	t.RequireNoError(t.page.Pause(d))
}

func (t *T) SetViewport(width, height int) {
	t.RequireNoError(t.page.SetViewport(width, height))
}

func (t *T) PressKey(key string) {
	t.RequireNoError(t.page.PressKey(key))
}

func (t *T) Locator(selector string) playwright.Locator {
	return t.page.Locator(selector)
}

// Count is the number of elements loc matches, or 0 if that cannot be determined.
func (t *T) Count(loc playwright.Locator) int {
	return browser.Count(loc)
}

func (t *T) Visible(loc playwright.Locator) bool {
	return browser.Visible(loc)
}

func (t *T) Attr(loc playwright.Locator, name string) string {
	return browser.Attribute(loc, name)
}

func (t *T) Text(loc playwright.Locator) string {
	return browser.Text(loc)
}

func (t *T) BodyText() string {
	return t.page.BodyText()
}

func (t *T) Title() string {
	return t.page.Title()
}

func (t *T) URL() string {
	return t.page.URL()
}

func (t *T) Click(loc playwright.Locator) {
	t.RequireNoError(loc.Click(), "click failed")
}

func (t *T) Fill(loc playwright.Locator, value string) {
	t.RequireNoError(loc.Fill(value), "fill failed")
}

func (t *T) ExpectVisible(loc playwright.Locator, description string) {
	t.RequireNoError(t.page.ExpectVisible(loc), "%s should be visible", description)
}

func (t *T) ExpectAttached(loc playwright.Locator, description string) {
	t.RequireNoError(t.page.ExpectAttached(loc), "%s should be attached", description)
}

func (t *T) ExpectHidden(loc playwright.Locator, description string) {
	t.RequireNoError(t.page.ExpectHidden(loc), "%s should not be visible", description)
}

func (t *T) ExpectEnabled(loc playwright.Locator, description string) {
	t.RequireNoError(t.page.ExpectEnabled(loc), "%s should be enabled", description)
}

func (t *T) ExpectText(loc playwright.Locator, want string) {
	t.RequireNoError(t.page.ExpectText(loc, want))
}

// ExpectURL waits for the URL to match pattern, ignoring case.
func (t *T) ExpectURL(pattern string) {
	t.RequireNoError(t.page.VerifyURLContains(pattern))
}

func (t *T) ExpectTitle(pattern string) {
	t.RequireNoError(t.page.VerifyPageTitle(pattern))
}

// Screenshot saves a full-page image and attaches it to the test result.
func (t *T) Screenshot(name string) {
	if path := t.page.TakeScreenshot(name); path != "" {
		t.context.Attach(path)
	}
}

// BaselineScreenshot saves a full-page image under a name that stays the same from run to
// run, so it can serve as the reference for later visual comparisons.
func (t *T) BaselineScreenshot(name string) {
	path := t.page.BaselinePath(name)
	t.RequireNoError(t.page.SaveScreenshot(path), "could not save baseline screenshot")
	t.context.Attach(path)
}

// FocusedTag returns the tag name of the focused element, failing the test if exactly one
// element is not focused.
func (t *T) FocusedTag() string {
	tag, ok := t.page.FocusedTagName()
	require.True(t, ok, "expected exactly one focused element, found %d", t.page.FocusedCount())
	return tag
}

// ClickForPopup clicks loc, expecting it to open a new window, and returns that window once
// it has loaded. The window is closed when the test ends.
func (t *T) ClickForPopup(loc playwright.Locator) playwright.Page {
	popup, err := t.page.OpenPopup(func() error { return loc.Click() })
	t.RequireNoError(err)
	t.context.Defer(func() { _ = popup.Close() })
	t.RequireNoError(popup.WaitForLoadState(), "popup did not load")
	return popup
}

// AuditLinks requests a bounded sample of hrefs outside the browser.
func (t *T) AuditLinks(hrefs []string) linkcheck.Report {
	auditor := linkcheck.Auditor{
		Client:   t.env.HTTPClient,
		MaxLinks: t.env.Data.LinkAuditMaxLinks(),
		Logger:   framework.LoggerWithPrefix(t.context.DebugLogger(), "link audit: "),
	}
	report, err := auditor.Audit(t.Context(), hrefs)
	t.RequireNoError(err)
	return report
}

// Links snapshots every anchor on the current page.
func (t *T) Links() []helpers.Link {
	links, err := t.page.GetAllLinks()
	t.RequireNoError(err)
	return links
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9_.-]+`)

func screenshotName(project, testName, kind string, attempt int) string {
	name := helpers.FormatTestCaseName(strings.Join([]string{project, testName, kind}, " "))
	name = strings.Trim(unsafeFileChars.ReplaceAllString(name, "-"), "-")
	if attempt > 0 {
		name = fmt.Sprintf("%s-retry%d", name, attempt)
	}
	return name
}
