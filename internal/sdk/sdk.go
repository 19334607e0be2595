// Package sdk defines the narrow capability interface fpcapture drives a
// fingerprint reader through.
//
// The vendor SDK sits behind Provider and Reader. Everything above this
// package (session, capture, cli) depends only on these interfaces, so a
// real SDK binding and the fixture provider are interchangeable.
//
// All calls are blocking. Capture has no timeout: InfiniteTimeout waits
// until the reader returns.
package sdk

import (
	"context"
	"errors"
)

// Provider enumerates readers attached to the host.
type Provider interface {
	// Readers queries the SDK for the current reader collection.
	// An empty slice is a valid result.
	Readers(ctx context.Context) ([]Reader, error)

	// Release frees the reader collection held by the SDK.
	Release() error
}

// Reader is a single fingerprint reader handle.
type Reader interface {
	Description() Description
	Status() (Status, error)
	Open(priority Priority) error
	Close() error
	Capabilities() (Capabilities, error)
	Capture(ctx context.Context, params CaptureParams) (CaptureResult, error)
}

// Description identifies a reader as reported by the SDK.
type Description struct {
	Name         string
	SerialNumber string
}

// Status is the readiness tag reported by a reader. The set is vendor
// defined; only StatusReady and StatusNeedCalibration authorize capture.
type Status string

const (
	StatusReady           Status = "READY"
	StatusNeedCalibration Status = "NEED_CALIBRATION"
	StatusBusy            Status = "BUSY"
	StatusNeedCleaning    Status = "NEED_CLEANING"
	StatusFailure         Status = "FAILURE"
)

// AuthorizesCapture reports whether a reader in this status may be opened
// for capture.
func (s Status) AuthorizesCapture() bool {
	return s == StatusReady || s == StatusNeedCalibration
}

// Priority is the open mode requested from the SDK.
type Priority string

const (
	// PriorityCooperative requests shared access. It is a hint to the SDK,
	// not a lock.
	PriorityCooperative Priority = "COOPERATIVE"
	PriorityExclusive   Priority = "EXCLUSIVE"
)

// Format is the biometric interchange format of a captured image.
type Format string

const FormatANSI381 Format = "ANSI_381_2004"

// ImageProcessing selects the SDK's image processing mode.
type ImageProcessing string

const ImageProcessingDefault ImageProcessing = "IMG_PROC_DEFAULT"

// InfiniteTimeout makes Capture wait until the reader returns.
const InfiniteTimeout = -1

// Quality is the SDK's verdict on a capture attempt.
type Quality string

const (
	QualityGood       Quality = "GOOD"
	QualityTimedOut   Quality = "TIMED_OUT"
	QualityCanceled   Quality = "CANCELED"
	QualityNoFinger   Quality = "NO_FINGER"
	QualityFakeFinger Quality = "FAKE_FINGER"
)

// Capabilities describes what a reader supports.
type Capabilities struct {
	Resolutions []int
}

// CaptureParams are the arguments to Reader.Capture.
type CaptureParams struct {
	Format          Format
	ImageProcessing ImageProcessing
	Resolution      int
	TimeoutMillis   int
}

// CaptureResult is returned by a completed capture call. Data holds the
// raw interchange buffer; fpcapture never reports it.
type CaptureResult struct {
	Quality Quality
	Data    []byte
}

// ErrUnavailable is returned by Unavailable for every enumeration.
var ErrUnavailable = errors.New("no fingerprint SDK provider configured")

// Unavailable is the provider used when no SDK binding is configured.
// Enumeration always fails; Release always succeeds.
type Unavailable struct{}

// Readers always returns ErrUnavailable.
func (Unavailable) Readers(context.Context) ([]Reader, error) {
	return nil, ErrUnavailable
}

// Release is a no-op.
func (Unavailable) Release() error {
	return nil
}
