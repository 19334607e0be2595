package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/fpcapture/internal/record"
	"github.com/roach88/fpcapture/internal/report"
)

// Exit codes for the process.
const (
	ExitSuccess = 0 // Recognized command completed
	ExitFailure = 1 // Missing or unknown command, or an operation failure
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code
	Message string // Error message, reported verbatim in the error record
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure for anything that is not an
// ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// errNoCommand is returned when no positional argument is given.
var errNoCommand = NewExitError(ExitFailure, "No command specified")

func unknownCommand(name string) *ExitError {
	return NewExitError(ExitFailure, "Unknown command: "+name)
}

// failureMessage is the text of the dispatcher's error record. An error
// with an empty message is described by its type instead.
func failureMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	name := strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return fmt.Sprintf("%s: %#v", name, err)
}

// emit writes rec through the reporter. A record that cannot be written
// aborts the operation.
func (o *Options) emit(rec record.Record) error {
	if err := o.Reporter.Emit(rec); err != nil {
		o.logger().Error("record not written", "error", err)
		return err
	}
	return nil
}

func (o *Options) debug(msg string) error {
	return o.emit(report.Debug(msg))
}
