package browser

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	gtalkerr "github.com/theapemachine/gtalk/pkg/errors"
)

// installHint is shown when no usable browser binary can be found.
const installHint = "install Google Chrome or Chromium and make sure it is on your PATH"

// hideWebdriver masks the automation flag the page can probe for.
const hideWebdriver = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// Options controls how the headless browser is launched.
type Options struct {
	// Bin overrides browser binary discovery. Empty means search the
	// system for an installed Chrome/Chromium.
	Bin       string
	UserAgent string
	Headless  bool
}

/*
Session owns one headless browser process and the single page used for every
query. It is not safe for concurrent use; callers run one query at a time.
*/
type Session struct {
	launch  *launcher.Launcher
	browser *rod.Browser
	page    *rod.Page
}

/*
New launches the browser and opens a blank page. Binary discovery happens
before anything touches the network, so a missing browser fails fast with
installation guidance.
*/
func New(ctx context.Context, opts Options) (*Session, error) {
	bin := opts.Bin
	if bin == "" {
		found, ok := launcher.LookPath()
		if !ok {
			return nil, gtalkerr.NewBrowserError("lookup", installHint, os.ErrNotExist)
		}
		bin = found
	} else if _, err := os.Stat(bin); err != nil {
		return nil, gtalkerr.NewBrowserError("lookup", installHint, err)
	}

	log.Debug("launching browser", "bin", bin, "headless", opts.Headless)

	launch := launcher.New().
		Bin(bin).
		Headless(opts.Headless).
		Leakless(true).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled")

	if opts.UserAgent != "" {
		launch = launch.Set("user-agent", opts.UserAgent)
	}

	wsURL, err := launch.Launch()
	if err != nil {
		return nil, gtalkerr.NewBrowserError("launch", installHint, err)
	}

	b := rod.New().ControlURL(wsURL).Context(ctx)
	if err := b.Connect(); err != nil {
		launch.Kill()
		return nil, gtalkerr.NewBrowserError("connect", installHint, err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		b.Close()
		launch.Kill()
		return nil, gtalkerr.NewBrowserError("page", installHint, err)
	}

	if _, err := page.EvalOnNewDocument(hideWebdriver); err != nil {
		log.Warn("could not mask webdriver flag", "error", err)
	}

	return &Session{launch: launch, browser: b, page: page}, nil
}

// Navigate loads url and waits for the page load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return err
	}
	return page.WaitLoad()
}

/*
WaitFor blocks until an element matching selector exists or timeout passes.
A timeout is returned as an error; the page is left as-is so the caller can
still read whatever did render.
*/
func (s *Session) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	_, err := s.page.Context(ctx).Timeout(timeout).Element(selector)
	return err
}

// HTML returns the current serialized DOM.
func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

// Close shuts down the browser process. Safe to call more than once.
func (s *Session) Close() {
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			log.Debug("browser close", "error", err)
		}
		s.browser = nil
	}
	if s.launch != nil {
		s.launch.Kill()
		s.launch = nil
	}
}
