package session

import "context"

// Session holds the initialization state and selected reader for one
// process.
type Session struct {
	registry    *Registry
	initialized bool
	devices     []Device
	selected    *Handle
}

// New creates an uninitialized session.
func New(registry *Registry) *Session {
	return &Session{registry: registry}
}

// EnsureInitialized enumerates readers if the session is not initialized.
//
// Zero readers still marks the session initialized. When at least one
// reader exists, index 0 is selected. On an SDK failure the session stays
// uninitialized and a DEVICE_ACCESS error is returned.
func (s *Session) EnsureInitialized(ctx context.Context) error {
	if s.initialized {
		return nil
	}

	devices, err := s.registry.Enumerate(ctx)
	if err != nil {
		s.reset()
		return err
	}

	s.initialized = true
	s.devices = devices
	if len(devices) > 0 {
		s.selected = &Handle{desc: devices[0].Descriptor, reader: devices[0].Reader}
	}
	return nil
}

// Initialized reports whether EnsureInitialized has succeeded since the
// last Cleanup.
func (s *Session) Initialized() bool {
	return s.initialized
}

// Devices returns the enumerated descriptors in enumeration order.
func (s *Session) Devices() []Descriptor {
	out := make([]Descriptor, len(s.devices))
	for i, d := range s.devices {
		out[i] = d.Descriptor
	}
	return out
}

// DeviceCount returns the number of enumerated readers.
func (s *Session) DeviceCount() int {
	return len(s.devices)
}

// Selected returns the selected reader, or nil when none is bound.
func (s *Session) Selected() *Handle {
	return s.selected
}

// CleanupResult reports what Cleanup did.
type CleanupResult struct {
	// ClosedReader is true when an open reader was closed.
	ClosedReader bool

	// CloseErr is the ignored close failure, if any.
	CloseErr error

	// Released is true when the SDK reader collection was released.
	Released bool
}

// Cleanup closes the selected reader if open, releases the registry and
// resets the session. Close failures are reported in the result, never as
// an error. A release failure is returned as DEVICE_ACCESS after the
// session has been reset. Cleanup on an uninitialized session is a no-op.
func (s *Session) Cleanup() (CleanupResult, error) {
	var result CleanupResult
	if !s.initialized {
		return result, nil
	}

	if s.selected != nil && s.selected.IsOpen() {
		result.ClosedReader = true
		result.CloseErr = s.selected.Close()
	}

	err := s.registry.Release()
	result.Released = err == nil
	s.reset()
	return result, err
}

func (s *Session) reset() {
	s.initialized = false
	s.devices = nil
	s.selected = nil
}
