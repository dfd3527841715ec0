package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two per-query failure modes. Both are recoverable:
// the interactive loop reports them and keeps the browser session alive.
var (
	// ErrNoAnswer means the page rendered but no AI Mode answer container
	// was found within the wait window.
	ErrNoAnswer = errors.New("no AI summary found")

	// ErrBotDetected means the upstream served a CAPTCHA / sorry page
	// instead of results.
	ErrBotDetected = errors.New("automated access detected")
)

/*
BrowserError is a fatal startup failure of the headless browser backend.
It carries a hint the CLI surfaces to the user, typically installation
guidance when no Chrome binary can be found on the system.
*/
type BrowserError struct {
	Op   string
	Hint string
	Err  error
}

func (e *BrowserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("browser %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("browser %s failed", e.Op)
}

func (e *BrowserError) Unwrap() error { return e.Err }

/*
NewBrowserError wraps err with the failing operation and a user-facing hint.
*/
func NewBrowserError(op, hint string, err error) *BrowserError {
	return &BrowserError{Op: op, Hint: hint, Err: err}
}
