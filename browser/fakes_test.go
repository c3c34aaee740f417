package browser

import (
	"errors"
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// timeoutError builds an error the way the Playwright driver reports an expired wait.
func timeoutError(message string) error {
	return fmt.Errorf("%w: %w: %w", playwright.ErrPlaywright, playwright.ErrTimeout,
		&playwright.Error{Name: "TimeoutError", Message: message})
}

// fakePage implements the parts of playwright.Page the facade uses. Calling any other
// method panics through the nil embedded interface.
type fakePage struct {
	playwright.Page

	lock          sync.Mutex
	url           string
	title         string
	content       string
	gotoErr       error
	gotoURLs      []string
	loadStates    []string
	locators      map[string]*fakeLocator
	screenshotErr error
	screenshots   []string
	evaluated     []string
	evalResult    interface{}
}

func newFakePage() *fakePage {
	return &fakePage{locators: make(map[string]*fakeLocator)}
}

func (f *fakePage) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.gotoURLs = append(f.gotoURLs, url)
	if f.gotoErr != nil {
		return nil, f.gotoErr
	}
	f.url = url
	return nil, nil
}

func (f *fakePage) WaitForLoadState(options ...playwright.PageWaitForLoadStateOptions) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	for _, o := range options {
		if o.State != nil {
			f.loadStates = append(f.loadStates, string(*o.State))
		}
	}
	return nil
}

func (f *fakePage) URL() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.url
}

func (f *fakePage) Title() (string, error) {
	return f.title, nil
}

func (f *fakePage) Content() (string, error) {
	return f.content, nil
}

func (f *fakePage) Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator {
	if l, ok := f.locators[selector]; ok {
		return l
	}
	return &fakeLocator{}
}

func (f *fakePage) Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error) {
	if f.screenshotErr != nil {
		return nil, f.screenshotErr
	}
	for _, o := range options {
		if o.Path != nil {
			f.screenshots = append(f.screenshots, *o.Path)
		}
	}
	return []byte{}, nil
}

func (f *fakePage) Evaluate(expression string, arg ...interface{}) (interface{}, error) {
	f.evaluated = append(f.evaluated, expression)
	return f.evalResult, nil
}

// locatorBase renames the embedded interface so its field does not shadow Locator().
type locatorBase = playwright.Locator

type fakeLocator struct {
	locatorBase

	count      int
	visible    bool
	text       string
	attributes map[string]string
	err        error
	waitErr    error
	evalResult interface{}
}

func (l *fakeLocator) First() playwright.Locator {
	return l
}

func (l *fakeLocator) Count() (int, error) {
	return l.count, l.err
}

func (l *fakeLocator) IsVisible(options ...playwright.LocatorIsVisibleOptions) (bool, error) {
	return l.visible, l.err
}

func (l *fakeLocator) TextContent(options ...playwright.LocatorTextContentOptions) (string, error) {
	return l.text, l.err
}

func (l *fakeLocator) GetAttribute(name string, options ...playwright.LocatorGetAttributeOptions) (string, error) {
	return l.attributes[name], l.err
}

func (l *fakeLocator) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	return l.waitErr
}

func (l *fakeLocator) Evaluate(expression string, arg interface{}, options ...playwright.LocatorEvaluateOptions) (interface{}, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.evalResult, nil
}

var errBrowserGone = errors.New("target page, context or browser has been closed")
