package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/theapemachine/gtalk/pkg/aimode"
	"github.com/theapemachine/gtalk/pkg/browser"
	gtalkerr "github.com/theapemachine/gtalk/pkg/errors"
	"github.com/theapemachine/gtalk/pkg/repl"
)

/*
newSession starts the headless browser and wires the query executor to it.
The returned executor is what both the loop and the single-shot path use;
callers must Close the session when done.
*/
func newSession(ctx context.Context) (*aimode.Exec, *browser.Session, error) {
	fmt.Println("Initializing browser (this may take a moment)...")

	session, err := browser.New(ctx, browser.Options{
		Bin:       viper.GetString("browser.bin"),
		UserAgent: viper.GetString("browser.user_agent"),
		Headless:  viper.GetBool("browser.headless"),
	})
	if err != nil {
		var berr *gtalkerr.BrowserError
		if errors.As(err, &berr) {
			fmt.Fprintf(os.Stderr, "Could not start the browser: %v\nTip: %s\n", err, berr.Hint)
		}
		return nil, nil, err
	}

	fmt.Println("Browser ready.")
	return aimode.New(session, aimode.FromViper()), session, nil
}

func runInteractive(ctx context.Context) error {
	exec, session, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	return repl.New(exec, os.Stdin, os.Stdout).Run(ctx)
}

func runOnce(ctx context.Context, query string) error {
	exec, session, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	fmt.Printf("Querying: %s\n\n", query)

	out, err := exec.Ask(ctx, query)
	switch {
	case err == nil:
		fmt.Println(out)
		return nil
	case errors.Is(err, gtalkerr.ErrBotDetected):
		fmt.Println("Google has detected automated access (CAPTCHA).")
		fmt.Println("Tip: wait a few minutes and try again, or change networks.")
		return err
	case errors.Is(err, gtalkerr.ErrNoAnswer):
		fmt.Println("No AI summary found.")
		fmt.Println("Tip: try rephrasing your query (e.g. 'What is...', 'How to...').")
		return err
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
}
