package repl

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	gtalkerr "github.com/theapemachine/gtalk/pkg/errors"
)

type fakeAsker struct {
	out     string
	err     error
	queries []string
}

func (f *fakeAsker) Ask(ctx context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	return f.out, f.err
}

func runWith(asker Asker, input string) (*bytes.Buffer, error) {
	out := &bytes.Buffer{}
	err := New(asker, strings.NewReader(input), out).Run(context.Background())
	return out, err
}

func TestExitCommands(t *testing.T) {
	Convey("Given the interactive loop", t, func() {
		for _, cmd := range []string{"quit", "exit", "q", "QUIT", "Exit", "Q"} {
			Convey("The '"+cmd+"' command should end the loop cleanly", func() {
				asker := &fakeAsker{}
				out, err := runWith(asker, cmd+"\n")
				So(err, ShouldBeNil)
				So(asker.queries, ShouldBeEmpty)
				So(out.String(), ShouldContainSubstring, "Goodbye!")
			})
		}

		Convey("EOF should end the loop cleanly", func() {
			asker := &fakeAsker{}
			out, err := runWith(asker, "")
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Exiting...")
		})
	})
}

func TestInterruptAtPrompt(t *testing.T) {
	Convey("Given a loop blocked at the prompt on input that never arrives", t, func() {
		pr, pw := io.Pipe()
		defer pw.Close()

		ctx, cancel := context.WithCancel(context.Background())
		out := &syncBuffer{}

		done := make(chan error, 1)
		go func() {
			done <- New(&fakeAsker{}, pr, out).Run(ctx)
		}()

		Convey("Cancelling the context should end the loop without another line", func() {
			cancel()

			select {
			case err := <-done:
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "Interrupted. Goodbye!")
			case <-time.After(2 * time.Second):
				So("loop still blocked after cancellation", ShouldBeEmpty)
			}
		})
	})
}

// syncBuffer guards the output buffer against the reader goroutine and the
// test goroutine touching it at once.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestQueryDispatch(t *testing.T) {
	Convey("Given an asker that answers", t, func() {
		asker := &fakeAsker{out: "Paris is the capital of France"}

		Convey("A non-command line should run exactly one query and reprompt", func() {
			out, err := runWith(asker, "capital of France\nquit\n")
			So(err, ShouldBeNil)
			So(asker.queries, ShouldResemble, []string{"capital of France"})
			So(out.String(), ShouldContainSubstring, "Paris is the capital of France")
			So(strings.Count(out.String(), "Query> "), ShouldEqual, 2)
		})

		Convey("Empty lines and commands should not trigger queries", func() {
			_, err := runWith(asker, "\n   \nhelp\nclear\nquit\n")
			So(err, ShouldBeNil)
			So(asker.queries, ShouldBeEmpty)
		})

		Convey("The help command should print usage", func() {
			out, err := runWith(asker, "help\nquit\n")
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Query Google AI Mode")
		})
	})
}

func TestQueryFailureRecovery(t *testing.T) {
	Convey("Given an asker that finds no answer", t, func() {
		asker := &fakeAsker{err: gtalkerr.ErrNoAnswer}

		Convey("The loop should report and keep accepting queries", func() {
			out, err := runWith(asker, "first\nsecond\nquit\n")
			So(err, ShouldBeNil)
			So(asker.queries, ShouldResemble, []string{"first", "second"})
			So(out.String(), ShouldContainSubstring, "No AI summary found.")
		})
	})

	Convey("Given an asker hitting bot detection", t, func() {
		asker := &fakeAsker{err: gtalkerr.ErrBotDetected}

		Convey("The loop should suggest slowing down and continue", func() {
			out, err := runWith(asker, "first\nquit\n")
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "detected automated access")
			So(out.String(), ShouldContainSubstring, "Goodbye!")
		})
	})
}
