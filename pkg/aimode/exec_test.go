package aimode

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	gtalkerr "github.com/theapemachine/gtalk/pkg/errors"
)

// stubPager fakes the browser boundary: navigation is recorded, the wait can
// fail, and HTML returns a canned page.
type stubPager struct {
	html    string
	navErr  error
	waitErr error

	navigated []string
	waits     int
}

func (s *stubPager) Navigate(ctx context.Context, url string) error {
	s.navigated = append(s.navigated, url)
	return s.navErr
}

func (s *stubPager) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	s.waits++
	return s.waitErr
}

func (s *stubPager) HTML(ctx context.Context) (string, error) {
	return s.html, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SettleDelay = 0
	cfg.RenderDelay = 0
	cfg.AnswerTimeout = time.Millisecond
	return cfg
}

func TestRun(t *testing.T) {
	Convey("Given a page that renders an answer", t, func() {
		page := &stubPager{html: wrap(`<div class="Y3BBE">Paris is the capital of France</div>`)}
		exec := New(page, testConfig())

		Convey("It should navigate once and return the answer", func() {
			answer, err := exec.Run(context.Background(), "capital of France")
			So(err, ShouldBeNil)
			So(answer.Blocks[0].Body, ShouldEqual, "Paris is the capital of France")
			So(page.navigated, ShouldHaveLength, 1)
			So(page.navigated[0], ShouldContainSubstring, "q=capital+of+France")
		})
	})

	Convey("Given a challenge page", t, func() {
		page := &stubPager{html: `<html><body>please solve this CAPTCHA</body></html>`}
		exec := New(page, testConfig())

		Convey("It should report bot detection without waiting for markers", func() {
			_, err := exec.Run(context.Background(), "anything")
			So(err, ShouldEqual, gtalkerr.ErrBotDetected)
			So(page.waits, ShouldEqual, 0)
		})
	})

	Convey("Given a page where the marker never appears", t, func() {
		page := &stubPager{
			html:    `<html><body>no ai answer here</body></html>`,
			waitErr: context.DeadlineExceeded,
		}
		exec := New(page, testConfig())

		Convey("It should report no answer rather than failing", func() {
			_, err := exec.Run(context.Background(), "first")
			So(err, ShouldEqual, gtalkerr.ErrNoAnswer)

			Convey("And the session stays usable for the next query", func() {
				page.html = wrap(`<div class="Y3BBE">second answer</div>`)
				answer, err := exec.Run(context.Background(), "second")
				So(err, ShouldBeNil)
				So(answer.Blocks[0].Body, ShouldEqual, "second answer")
				So(page.navigated, ShouldHaveLength, 2)
			})
		})
	})

	Convey("Given a navigation failure", t, func() {
		boom := errors.New("net::ERR_CONNECTION_RESET")
		page := &stubPager{navErr: boom}
		exec := New(page, testConfig())

		Convey("It should surface the error", func() {
			_, err := exec.Run(context.Background(), "anything")
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		cfg := testConfig()
		cfg.SettleDelay = time.Hour
		exec := New(&stubPager{}, cfg)

		Convey("It should bail out during the settle wait", func() {
			_, err := exec.Run(ctx, "anything")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestSearchURL(t *testing.T) {
	Convey("Given a query with characters needing escape", t, func() {
		url := SearchURL("https://www.google.com/search", "what is 2+2?")

		Convey("It should encode the query and select the AI surface", func() {
			So(url, ShouldStartWith, "https://www.google.com/search?")
			So(url, ShouldContainSubstring, "udm=50")
			So(url, ShouldContainSubstring, "aep=11")
			So(url, ShouldContainSubstring, "q=what+is+2%2B2%3F")
		})
	})
}
