package session

import (
	"context"

	"github.com/roach88/fpcapture/internal/sdk"
)

// Handle is the selected reader. It tracks whether the reader is open so
// Cleanup knows whether a close is owed.
type Handle struct {
	desc   Descriptor
	reader sdk.Reader
	open   bool
}

// Descriptor returns the reader's descriptor.
func (h *Handle) Descriptor() Descriptor {
	return h.desc
}

// Name returns the reader's name as reported at enumeration.
func (h *Handle) Name() string {
	return h.desc.Name
}

// IsOpen reports whether Open succeeded without a later Close.
func (h *Handle) IsOpen() bool {
	return h.open
}

// Status queries the reader's current readiness.
func (h *Handle) Status() (sdk.Status, error) {
	return h.reader.Status()
}

// Open opens the reader with the given priority.
func (h *Handle) Open(priority sdk.Priority) error {
	if err := h.reader.Open(priority); err != nil {
		return err
	}
	h.open = true
	return nil
}

// Close closes the reader. The handle counts as closed even when the SDK
// reports a failure; a second close is never attempted.
func (h *Handle) Close() error {
	h.open = false
	return h.reader.Close()
}

// Capabilities queries what the reader supports.
func (h *Handle) Capabilities() (sdk.Capabilities, error) {
	return h.reader.Capabilities()
}

// Capture runs a blocking capture.
func (h *Handle) Capture(ctx context.Context, params sdk.CaptureParams) (sdk.CaptureResult, error) {
	return h.reader.Capture(ctx, params)
}
