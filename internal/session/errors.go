package session

import (
	"errors"
	"fmt"

	"github.com/roach88/fpcapture/internal/sdk"
)

// ErrorCode categorizes the failures that end an operation.
type ErrorCode string

const (
	// ErrCodeDeviceAccess indicates the SDK could not be reached or failed
	// while enumerating or querying a reader.
	ErrCodeDeviceAccess ErrorCode = "DEVICE_ACCESS"

	// ErrCodeNoDevice indicates no reader was bound after initialization.
	ErrCodeNoDevice ErrorCode = "NO_DEVICE"

	// ErrCodeReaderNotReady indicates the reader reported a status that does
	// not authorize capture.
	ErrCodeReaderNotReady ErrorCode = "READER_NOT_READY"
)

// Error is a fatal operation failure. Only these cross the operation
// boundary; open and capture failures degrade instead.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Status is the observed reader status (READER_NOT_READY only).
	Status sdk.Status

	// Err is the underlying SDK error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewDeviceAccessError wraps an SDK failure.
func NewDeviceAccessError(message string, err error) *Error {
	return &Error{Code: ErrCodeDeviceAccess, Message: message, Err: err}
}

// NewNoDeviceError reports that no reader is bound.
func NewNoDeviceError() *Error {
	return &Error{
		Code:    ErrCodeNoDevice,
		Message: "No fingerprint reader available - device not found or not initialized properly",
	}
}

// NewReaderNotReadyError reports a disqualifying reader status.
func NewReaderNotReadyError(status sdk.Status) *Error {
	return &Error{
		Code:    ErrCodeReaderNotReady,
		Message: fmt.Sprintf("Reader not ready for capture. Status: %s", status),
		Status:  status,
	}
}

// CodeOf returns the ErrorCode of err, or "" when err is not an *Error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsDeviceAccess returns true if err is a DEVICE_ACCESS error.
func IsDeviceAccess(err error) bool {
	return CodeOf(err) == ErrCodeDeviceAccess
}

// IsNoDevice returns true if err is a NO_DEVICE error.
func IsNoDevice(err error) bool {
	return CodeOf(err) == ErrCodeNoDevice
}

// IsReaderNotReady returns true if err is a READER_NOT_READY error.
func IsReaderNotReady(err error) bool {
	return CodeOf(err) == ErrCodeReaderNotReady
}
