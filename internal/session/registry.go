package session

import (
	"context"

	"github.com/roach88/fpcapture/internal/sdk"
)

// Descriptor identifies one enumerated reader. Index is the position in
// enumeration order, which is stable only within one process run.
type Descriptor struct {
	Index        int
	Name         string
	SerialNumber string
	Connected    bool
}

// Device pairs a descriptor with its SDK handle.
type Device struct {
	Descriptor Descriptor
	Reader     sdk.Reader
}

// Registry wraps reader enumeration.
type Registry struct {
	provider sdk.Provider
}

// NewRegistry creates a registry over provider.
func NewRegistry(provider sdk.Provider) *Registry {
	return &Registry{provider: provider}
}

// Enumerate queries the provider for attached readers. It never caches:
// every call reaches the SDK. Zero readers is success.
func (r *Registry) Enumerate(ctx context.Context) ([]Device, error) {
	readers, err := r.provider.Readers(ctx)
	if err != nil {
		return nil, NewDeviceAccessError("Failed to enumerate fingerprint readers", err)
	}

	devices := make([]Device, 0, len(readers))
	for i, reader := range readers {
		desc := reader.Description()
		devices = append(devices, Device{
			Descriptor: Descriptor{
				Index:        i,
				Name:         desc.Name,
				SerialNumber: desc.SerialNumber,
				Connected:    true,
			},
			Reader: reader,
		})
	}
	return devices, nil
}

// Release frees the SDK reader collection.
func (r *Registry) Release() error {
	if err := r.provider.Release(); err != nil {
		return NewDeviceAccessError("Failed to release fingerprint readers", err)
	}
	return nil
}
