package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	assert.Equal(t, 7, GetExitCode(NewExitError(7, "custom")))
	assert.Equal(t, 7, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(7, "custom"))))
}

func TestExitError_Message(t *testing.T) {
	err := NewExitError(ExitFailure, "Unknown command: foo")
	assert.Equal(t, "Unknown command: foo", err.Error())

	wrapped := &ExitError{Code: ExitFailure, Message: "outer", Err: errors.New("inner")}
	assert.Equal(t, "outer: inner", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "inner")
}

type silentError struct{ Reason string }

func (*silentError) Error() string { return "" }

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "boom", failureMessage(errors.New("boom")))

	msg := failureMessage(&silentError{Reason: "gone"})
	assert.Contains(t, msg, "silentError: ")
	assert.Contains(t, msg, "gone")
}
