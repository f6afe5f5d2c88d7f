package main

import "fmt"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// ExitError is an error that carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
