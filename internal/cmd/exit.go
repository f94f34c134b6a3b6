package cmd

import (
	"errors"
	"fmt"
)

// codedError ties a command failure to a process exit code from the shared
// foundry table. RunE handlers return it; main surfaces the code via ExitCode.
type codedError struct {
	code    int
	message string
	err     error
}

func (e *codedError) Error() string {
	if e.err == nil {
		return e.message
	}
	return fmt.Sprintf("%s: %v", e.message, e.err)
}

func (e *codedError) Unwrap() error { return e.err }

// exitError creates an error that will cause the CLI to exit with the given code.
func exitError(code int, message string, err error) error {
	return &codedError{code: code, message: message, err: err}
}

// ExitCode maps a command error to the process exit code: 0 for nil, the
// foundry code when one was attached, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return 1
}
