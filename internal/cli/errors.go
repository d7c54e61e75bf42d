package cli

import (
	"errors"
	"fmt"

	"github.com/rshade/sift/internal/library"
)

// Exit codes returned by the sift binary.
const (
	ExitCodeError    = 1
	ExitCodeNotFound = 2
)

// ErrNotInteractive is returned by browse when stdin or stdout is not a terminal.
var ErrNotInteractive = errors.New("browse needs an interactive terminal; use 'sift ls' instead")

// ExitError carries a specific process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// classify wraps listing errors for a missing or invalid directory with ExitCodeNotFound.
func classify(err error) error {
	if errors.Is(err, library.ErrPathNotFound) || errors.Is(err, library.ErrNotDirectory) {
		return &ExitError{Code: ExitCodeNotFound, Err: err}
	}
	return err
}

// ExitCode returns the process exit code for err: 0 for nil, the ExitError code
// when one is wrapped, ExitCodeError otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCodeError
}

func wrapf(err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
