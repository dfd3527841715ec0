package aimode

// Google's AI Mode answers are rendered client side, so queries go through a
// real browser page rather than a plain HTTP client. The executor drives the
// page through the small Pager interface, which keeps the browser backend
// swappable in tests.

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	gtalkerr "github.com/theapemachine/gtalk/pkg/errors"
)

// Pager is the slice of browser session behavior the executor needs.
type Pager interface {
	Navigate(ctx context.Context, url string) error
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error
	HTML(ctx context.Context) (string, error)
}

/*
Exec resolves one query at a time against a live page: navigate, wait for the
answer to render, pull the DOM, extract the answer blocks.
*/
type Exec struct {
	page Pager
	cfg  Config
}

func New(page Pager, cfg Config) *Exec {
	return &Exec{page: page, cfg: cfg}
}

// SearchURL builds the AI Mode results URL for a query. The udm/aep params
// select the AI answer surface.
func SearchURL(endpoint, query string) string {
	v := url.Values{}
	v.Set("udm", "50")
	v.Set("aep", "11")
	v.Set("q", query)
	return endpoint + "?" + v.Encode()
}

/*
Run resolves a single query. It returns ErrBotDetected when the upstream
serves a challenge page and ErrNoAnswer when nothing recognizable rendered
within the wait window. Either way the session stays usable for the next
query.
*/
func (e *Exec) Run(ctx context.Context, query string) (*Answer, error) {
	target := SearchURL(e.cfg.Endpoint, query)
	log.Debug("navigating", "url", target)

	if err := e.page.Navigate(ctx, target); err != nil {
		return nil, err
	}
	if err := sleep(ctx, e.cfg.SettleDelay); err != nil {
		return nil, err
	}

	src, err := e.page.HTML(ctx)
	if err != nil {
		return nil, err
	}
	if looksLikeChallenge(src) {
		return nil, gtalkerr.ErrBotDetected
	}

	// The marker may never appear for queries AI Mode declines to answer.
	// That is not fatal yet: extraction below decides.
	if err := e.page.WaitFor(ctx, e.cfg.Markers, e.cfg.AnswerTimeout); err != nil {
		log.Debug("answer marker did not appear", "error", err)
	}
	if err := sleep(ctx, e.cfg.RenderDelay); err != nil {
		return nil, err
	}

	if src, err = e.page.HTML(ctx); err != nil {
		return nil, err
	}
	return Extract(src)
}

// Ask runs a query and renders the answer for the terminal.
func (e *Exec) Ask(ctx context.Context, query string) (string, error) {
	answer, err := e.Run(ctx, query)
	if err != nil {
		return "", err
	}
	return Render(answer), nil
}

func looksLikeChallenge(src string) bool {
	lower := strings.ToLower(src)
	return strings.Contains(lower, "captcha") ||
		strings.Contains(lower, "google.com/sorry")
}

// sleep waits for d unless ctx is cancelled first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
