package browser

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/demos-qa/telerik-demos-tests/config"
	"github.com/demos-qa/telerik-demos-tests/framework"
	"github.com/demos-qa/telerik-demos-tests/helpers"
)

const (
	DefaultWaitTimeout        = 10 * time.Second
	DefaultVisibleWaitTimeout = 15 * time.Second
	pollInterval              = 100 * time.Millisecond
)

type PageOptions struct {
	BaseURL     string
	DefaultPath string
	// SettleDelay is how long NavigateTo waits after the document is parsed, since the site
	// keeps rendering with scripts afterward and has no signal for when it is done.
	SettleDelay time.Duration
	// ScrollSettle is how long the scroll operations wait for lazily loaded content.
	ScrollSettle  time.Duration
	Navigation    time.Duration
	Expect        time.Duration
	ScreenshotDir string
	Logger        framework.Logger
}

func PageOptionsFromConfig(cfg config.Config) PageOptions {
	return PageOptions{
		BaseURL:       cfg.BaseURL,
		DefaultPath:   cfg.DefaultPath,
		SettleDelay:   cfg.SettleDelay,
		ScrollSettle:  cfg.ScrollSettle,
		Navigation:    cfg.Timeouts.Navigation,
		Expect:        cfg.Timeouts.Expect,
		ScreenshotDir: cfg.ScreenshotDir(),
	}
}

// Page is the facade a test uses to talk to its browser page.
//
// Its operations come in two families. Operations that return an error (navigation, waits,
// actions, Expect and Verify checks) fail loudly, and their timeouts wrap ErrTimeout.
// Probes (IsElementVisible, GetElementText, Count, and so on) never fail: anything that
// goes wrong is reported as absence, so tests can use them for optional checks.
type Page struct {
	ctx  context.Context
	page playwright.Page
	opts PageOptions
}

// NewPage wraps a Playwright page. The context bounds all pauses.
func NewPage(ctx context.Context, page playwright.Page, opts PageOptions) *Page {
	if opts.Logger == nil {
		opts.Logger = framework.NullLogger()
	}
	if opts.Expect <= 0 {
		opts.Expect = DefaultWaitTimeout
	}
	return &Page{ctx: ctx, page: page, opts: opts}
}

// Raw returns the underlying Playwright page.
func (p *Page) Raw() playwright.Page {
	return p.page
}

// SetLogger sets where the facade reports skipped screenshots and similar notices.
func (p *Page) SetLogger(logger framework.Logger) {
	if logger != nil {
		p.opts.Logger = logger
	}
}

func (p *Page) Locator(selector string) playwright.Locator {
	return p.page.Locator(selector)
}

// NavigateTo loads the base URL plus path, using the default path if path is empty. It
// waits for the DOMContentLoaded event and then for the settle delay.
func (p *Page) NavigateTo(path string) error {
	if path == "" {
		path = p.opts.DefaultPath
	}
	url := p.opts.BaseURL + path
	gotoOpts := playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateDomcontentloaded}
	if p.opts.Navigation > 0 {
		gotoOpts.Timeout = playwright.Float(milliseconds(p.opts.Navigation))
	}
	if _, err := p.page.Goto(url, gotoOpts); err != nil {
		return wrapError("navigating to "+url, err)
	}
	if err := p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	}); err != nil {
		return wrapError("waiting for "+url+" to load", err)
	}
	return p.Pause(p.opts.SettleDelay)
}

// WaitForLoad waits for the page to finish loading, for instance after a click that
// navigated.
func (p *Page) WaitForLoad() error {
	return wrapError("waiting for page load", p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateLoad,
	}))
}

// WaitForElement waits until an element matching selector is attached to the document. A
// zero timeout means DefaultWaitTimeout.
func (p *Page) WaitForElement(selector string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	return wrapError("waiting for "+selector, p.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(milliseconds(timeout)),
	}))
}

// WaitForElementVisible waits until the first element matching selector is visible and
// returns it. A zero timeout means DefaultVisibleWaitTimeout.
func (p *Page) WaitForElementVisible(selector string, timeout time.Duration) (playwright.Locator, error) {
	if timeout <= 0 {
		timeout = DefaultVisibleWaitTimeout
	}
	element := p.page.Locator(selector).First()
	if err := element.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(milliseconds(timeout)),
	}); err != nil {
		return nil, wrapError("waiting for "+selector+" to be visible", err)
	}
	return element, nil
}

func (p *Page) ClickElement(selector string) error {
	return wrapError("clicking "+selector, p.page.Locator(selector).First().Click())
}

func (p *Page) FillField(selector, text string) error {
	return wrapError("filling "+selector, p.page.Locator(selector).First().Fill(text))
}

// GetElementText returns the text content of the first match, or "" if there is none.
func (p *Page) GetElementText(selector string) string {
	return Text(p.page.Locator(selector).First())
}

// GetElementAttribute returns an attribute of the first match, or "" if there is no match
// or no such attribute.
func (p *Page) GetElementAttribute(selector, name string) string {
	return Attribute(p.page.Locator(selector).First(), name)
}

func (p *Page) IsElementVisible(selector string) bool {
	return Visible(p.page.Locator(selector).First())
}

func (p *Page) IsElementAttached(selector string) bool {
	return Count(p.page.Locator(selector)) > 0
}

// TakeScreenshot saves a full-page image named after name and the current time, and
// returns its path. A failed capture is logged and returns "".
func (p *Page) TakeScreenshot(name string) string {
	path := filepath.Join(p.opts.ScreenshotDir, fmt.Sprintf("%s-%d.png", name, time.Now().UnixMilli()))
	if err := p.SaveScreenshot(path); err != nil {
		p.opts.Logger.Printf("Could not save screenshot %s: %s", path, err)
		return ""
	}
	return path
}

// BaselinePath is where SaveScreenshot should write the reference image called name. The
// path does not change between runs.
func (p *Page) BaselinePath(name string) string {
	return filepath.Join(p.opts.ScreenshotDir, name+".png")
}

// SaveScreenshot writes a full-page image to path, replacing any file already there.
func (p *Page) SaveScreenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return wrapError("taking screenshot", err)
}

// VerifyURLContains checks that the current URL matches text as a case-insensitive regular
// expression, waiting up to the expect timeout for it to do so.
func (p *Page) VerifyURLContains(text string) error {
	rx, err := regexp.Compile("(?i)" + text)
	if err != nil {
		return fmt.Errorf("invalid URL pattern %q: %w", text, err)
	}
	var last string
	if p.poll(func() bool {
		last = p.page.URL()
		return rx.MatchString(last)
	}) {
		return nil
	}
	return fmt.Errorf("expected URL to match %q, but it was %q", text, last)
}

// VerifyPageTitle checks that the title matches pattern as a case-insensitive regular
// expression, waiting up to the expect timeout for it to do so.
func (p *Page) VerifyPageTitle(pattern string) error {
	rx, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return fmt.Errorf("invalid title pattern %q: %w", pattern, err)
	}
	var last string
	if p.poll(func() bool {
		last = p.Title()
		return rx.MatchString(last)
	}) {
		return nil
	}
	return fmt.Errorf("expected title to match %q, but it was %q", pattern, last)
}

func (p *Page) ScrollToElement(selector string) error {
	if err := p.page.Locator(selector).First().ScrollIntoViewIfNeeded(); err != nil {
		return wrapError("scrolling to "+selector, err)
	}
	return p.Pause(p.opts.ScrollSettle)
}

// ScrollPage scrolls the window to the vertical offset y.
func (p *Page) ScrollPage(y int) error {
	if _, err := p.page.Evaluate("y => window.scrollTo(0, y)", y); err != nil {
		return wrapError("scrolling page", err)
	}
	return p.Pause(p.opts.ScrollSettle)
}

// Pause waits for d, failing early if the test's context ends first.
func (p *Page) Pause(d time.Duration) error {
	if err := helpers.Delay(p.ctx, d); err != nil {
		return wrapError("pausing", err)
	}
	return nil
}

func (p *Page) SetViewport(width, height int) error {
	return wrapError("resizing viewport", p.page.SetViewportSize(width, height))
}

func (p *Page) PressKey(key string) error {
	return wrapError("pressing "+key, p.page.Keyboard().Press(key))
}

// FocusedTagName returns the lower-case tag name of the focused element, and false if no
// element has focus.
func (p *Page) FocusedTagName() (string, bool) {
	focused := p.page.Locator("*:focus")
	if Count(focused) != 1 {
		return "", false
	}
	v, err := focused.Evaluate("el => el.tagName.toLowerCase()", nil)
	if err != nil {
		return "", false
	}
	tag, ok := v.(string)
	return tag, ok && tag != ""
}

// FocusedCount is the number of elements matching :focus.
func (p *Page) FocusedCount() int {
	return Count(p.page.Locator("*:focus"))
}

func (p *Page) Title() string {
	title, err := p.page.Title()
	if err != nil {
		return ""
	}
	return title
}

func (p *Page) URL() string {
	return p.page.URL()
}

// BodyText returns the text content of the document body, or "" if it cannot be read.
func (p *Page) BodyText() string {
	return Text(p.page.Locator("body"))
}

// EvaluateInt runs a script that produces a number.
func (p *Page) EvaluateInt(expression string) (int, error) {
	v, err := p.page.Evaluate(expression)
	if err != nil {
		return 0, wrapError("evaluating script", err)
	}
	return toInt(v)
}

// OpenPopup runs action, which should cause the page to open a new window, and returns
// that window.
func (p *Page) OpenPopup(action func() error) (playwright.Page, error) {
	popup, err := p.page.ExpectPopup(action, playwright.PageExpectPopupOptions{
		Timeout: playwright.Float(milliseconds(p.opts.Expect)),
	})
	if err != nil {
		return nil, wrapError("waiting for popup", err)
	}
	return popup, nil
}

// GetAllLinks snapshots every anchor in the current document.
func (p *Page) GetAllLinks() ([]helpers.Link, error) {
	html, err := p.page.Content()
	if err != nil {
		return nil, wrapError("reading page content", err)
	}
	return helpers.HarvestLinks(html, p.page.URL())
}

// ExpectVisible waits up to the expect timeout for loc to be visible.
func (p *Page) ExpectVisible(loc playwright.Locator) error {
	return p.expectState(loc, playwright.WaitForSelectorStateVisible, "visible")
}

func (p *Page) ExpectAttached(loc playwright.Locator) error {
	return p.expectState(loc, playwright.WaitForSelectorStateAttached, "attached")
}

func (p *Page) ExpectHidden(loc playwright.Locator) error {
	return p.expectState(loc, playwright.WaitForSelectorStateHidden, "hidden")
}

func (p *Page) ExpectEnabled(loc playwright.Locator) error {
	if err := p.ExpectVisible(loc); err != nil {
		return err
	}
	if p.poll(func() bool {
		enabled, err := loc.IsEnabled()
		return err == nil && enabled
	}) {
		return nil
	}
	return fmt.Errorf("expected element to be enabled: %w", ErrTimeout)
}

// ExpectText waits up to the expect timeout for the trimmed text of loc to equal want.
func (p *Page) ExpectText(loc playwright.Locator, want string) error {
	var last string
	if p.poll(func() bool {
		last = strings.TrimSpace(Text(loc))
		return last == want
	}) {
		return nil
	}
	return fmt.Errorf("expected text %q, but it was %q", want, last)
}

func (p *Page) expectState(loc playwright.Locator, state *playwright.WaitForSelectorState, name string) error {
	err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(milliseconds(p.opts.Expect)),
	})
	return wrapError("expecting element to be "+name, err)
}

// poll evaluates cond until it is true or the expect timeout expires.
func (p *Page) poll(cond func() bool) bool {
	deadline := time.Now().Add(p.opts.Expect)
	for {
		if cond() {
			return true
		}
		if !time.Now().Before(deadline) || p.ctx.Err() != nil {
			return false
		}
		time.Sleep(pollInterval)
	}
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}
