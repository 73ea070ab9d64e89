package errors

import "fmt"

// Exit codes reported by the CLI. ExitCodeGateFailed is reserved for the
// scan severity gate so CI pipelines can tell "issues found" apart from
// crashes.
const (
	ExitCodeFailure    = 1
	ExitCodeGateFailed = 3
)

// CommandError carries an exit code alongside the error message so the root
// command can exit with the right status.
type CommandError struct {
	ExitCode    int
	CommonError string
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// NewCommandError wraps err with an explicit exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
	}
}

// NewGateError builds the error the scan command fails with when issues at
// or above the configured severity threshold were found.
func NewGateError(threshold string, issues int) *CommandError {
	return &CommandError{
		ExitCode:    ExitCodeGateFailed,
		CommonError: fmt.Sprintf("found %d issue(s) at or above severity %q", issues, threshold),
	}
}
