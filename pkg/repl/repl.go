package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gtalkerr "github.com/theapemachine/gtalk/pkg/errors"
)

// Asker resolves one query into terminal-ready output.
type Asker interface {
	Ask(ctx context.Context, query string) (string, error)
}

const (
	prompt      = "Query> "
	clearScreen = "\033[2J\033[H"
)

const banner = `============================================================
  Google AI Mode - Interactive Terminal Query Tool
============================================================

Type 'help' for commands, 'quit' to exit.
`

const helpText = `
Commands:
  [any text]  - Query Google AI Mode
  help        - Show this help message
  clear       - Clear the screen
  quit/exit/q - Exit the program
`

/*
REPL is the interactive loop: read a line, dispatch it as a command or a
query, print, repeat. One browser session backs the Asker for the lifetime
of the loop. Query failures are reported and the loop continues; only exit
commands, EOF, or context cancellation end it.
*/
type REPL struct {
	asker Asker
	in    io.Reader
	out   io.Writer
}

func New(asker Asker, in io.Reader, out io.Writer) *REPL {
	return &REPL{asker: asker, in: in, out: out}
}

func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprint(r.out, banner)

	// Input is read on its own goroutine so an interrupt can end the loop
	// while it sits at the prompt, not just between lines.
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Fprint(r.out, prompt)

		var raw string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out, "\nInterrupted. Goodbye!")
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out, "\nExiting...")
				return <-scanErr
			}
			raw = line
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		case "help":
			fmt.Fprint(r.out, helpText)
			continue
		case "clear":
			fmt.Fprint(r.out, clearScreen)
			continue
		}

		fmt.Fprintln(r.out)
		r.query(ctx, line)
	}
}

// query runs one query and reports the outcome. Never returns an error: the
// loop must survive anything a single query can throw at it.
func (r *REPL) query(ctx context.Context, q string) {
	fmt.Fprintln(r.out, "Searching...")

	out, err := r.asker.Ask(ctx, q)
	switch {
	case err == nil:
		fmt.Fprintln(r.out, out)
		fmt.Fprintln(r.out)
	case errors.Is(err, gtalkerr.ErrBotDetected):
		fmt.Fprintln(r.out, "Google has detected automated access (CAPTCHA).")
		fmt.Fprintln(r.out, "Tip: wait a few minutes and try again, or change networks.")
		fmt.Fprintln(r.out)
	case errors.Is(err, gtalkerr.ErrNoAnswer):
		fmt.Fprintln(r.out, "No AI summary found.")
		fmt.Fprintln(r.out, "Tip: try rephrasing your query (e.g. 'What is...', 'How to...').")
		fmt.Fprintln(r.out)
	default:
		fmt.Fprintf(r.out, "Error: %v\n\n", err)
	}
}
