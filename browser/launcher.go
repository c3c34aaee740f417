// Package browser drives real browsers through Playwright. A Launcher starts one browser
// per configured project; every test gets its own Session with a fresh browser context,
// and interacts with it through the Page facade.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/demos-qa/telerik-demos-tests/config"
	"github.com/demos-qa/telerik-demos-tests/framework"
)

type LaunchOptions struct {
	// InstallBrowsers downloads the Playwright driver and browser binaries before starting.
	InstallBrowsers bool
	// SlowMo delays every browser operation, which helps when watching a headed run.
	SlowMo time.Duration
	Logger framework.Logger
}

type Launcher struct {
	pw       *playwright.Playwright
	browsers map[string]playwright.Browser
	cfg      config.Config
	logger   framework.Logger
}

// Launch starts the Playwright driver and one browser for each project in cfg.Browsers.
func Launch(cfg config.Config, opts LaunchOptions) (*Launcher, error) {
	logger := opts.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	if opts.InstallBrowsers {
		logger.Printf("Installing Playwright browsers: %v", cfg.Browsers)
		if err := playwright.Install(&playwright.RunOptions{Browsers: cfg.Browsers}); err != nil {
			return nil, fmt.Errorf("could not install playwright: %w", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	l := &Launcher{
		pw:       pw,
		browsers: make(map[string]playwright.Browser),
		cfg:      cfg,
		logger:   logger,
	}
	for _, project := range cfg.Browsers {
		browserType, err := l.browserType(project)
		if err != nil {
			l.Close()
			return nil, err
		}
		b, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(cfg.Headless),
			SlowMo:   playwright.Float(milliseconds(opts.SlowMo)),
		})
		if err != nil {
			l.Close()
			return nil, fmt.Errorf("could not launch %s: %w", project, err)
		}
		framework.LoggerWithPrefix(logger, project+": ").Printf("launched version %s", b.Version())
		l.browsers[project] = b
	}
	return l, nil
}

func (l *Launcher) browserType(project string) (playwright.BrowserType, error) {
	switch project {
	case "chromium":
		return l.pw.Chromium, nil
	case "firefox":
		return l.pw.Firefox, nil
	case "webkit":
		return l.pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", project)
	}
}

// NewSession opens a fresh browser context and page in the given project's browser. The
// session belongs to the caller and must be closed by it; ctx bounds the facade's settle
// delays.
func (l *Launcher) NewSession(ctx context.Context, project string) (*Session, error) {
	b, ok := l.browsers[project]
	if !ok {
		return nil, fmt.Errorf("browser %q was not launched", project)
	}
	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  l.cfg.Viewport.Width,
			Height: l.cfg.Viewport.Height,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	page.SetDefaultTimeout(milliseconds(l.cfg.Timeouts.Action))
	page.SetDefaultNavigationTimeout(milliseconds(l.cfg.Timeouts.Navigation))

	closeContext := func() error { return bctx.Close() }
	return NewSession(project, NewPage(ctx, page, PageOptionsFromConfig(l.cfg)), closeContext), nil
}

func (l *Launcher) Close() {
	for project, b := range l.browsers {
		if err := b.Close(); err != nil {
			l.logger.Printf("Error closing %s: %s", project, err)
		}
	}
	l.browsers = nil
	if l.pw != nil {
		if err := l.pw.Stop(); err != nil {
			l.logger.Printf("Error stopping playwright: %s", err)
		}
		l.pw = nil
	}
}

// Session is one browser context owned by a single test.
type Session struct {
	Project string
	Page    *Page

	closer    func() error
	closeOnce sync.Once
	closeErr  error
}

// NewSession wraps a page whose resources are released by closer. closer runs at most once,
// however many times the session is closed.
func NewSession(project string, page *Page, closer func() error) *Session {
	return &Session{Project: project, Page: page, closer: closer}
}

// Close releases the browser context. It is safe to call more than once and from more than
// one goroutine; any operation still in progress on the page fails.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.closer != nil {
			s.closeErr = s.closer()
		}
	})
	return s.closeErr
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
