package fixture

import (
	"context"
	"errors"
	"sync"

	"github.com/roach88/fpcapture/internal/sdk"
)

// Calls counts the SDK primitives invoked on a reader.
type Calls struct {
	Status       int
	Open         int
	Close        int
	Capabilities int
	Capture      int
}

// Provider is an sdk.Provider backed by a Fixture.
//
// Reader handles are created once and returned by every Readers call, so
// call counts accumulate across enumerations.
type Provider struct {
	mu         sync.Mutex
	fixture    Fixture
	readers    []*Reader
	enumerated int
	released   int
}

var _ sdk.Provider = (*Provider)(nil)

// New creates a provider for f.
func New(f Fixture) *Provider {
	p := &Provider{fixture: f}
	for _, spec := range f.Readers {
		p.readers = append(p.readers, &Reader{spec: spec})
	}
	return p
}

// Readers returns the fixture's readers in declaration order.
func (p *Provider) Readers(ctx context.Context) ([]sdk.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.enumerated++
	if p.fixture.Unreachable != "" {
		return nil, errors.New(p.fixture.Unreachable)
	}

	out := make([]sdk.Reader, len(p.readers))
	for i, r := range p.readers {
		out[i] = r
	}
	return out, nil
}

// Release fails with the fixture's release_error when one is set.
func (p *Provider) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.released++
	if p.fixture.ReleaseError != "" {
		return errors.New(p.fixture.ReleaseError)
	}
	return nil
}

// Reader returns the i-th fixture reader, or nil when out of range.
func (p *Provider) Reader(i int) *Reader {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.readers) {
		return nil
	}
	return p.readers[i]
}

// Enumerations returns how many times Readers was called.
func (p *Provider) Enumerations() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enumerated
}

// Releases returns how many times Release was called.
func (p *Provider) Releases() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}

// Reader is an sdk.Reader backed by a ReaderSpec.
type Reader struct {
	mu         sync.Mutex
	spec       ReaderSpec
	open       bool
	calls      Calls
	lastParams sdk.CaptureParams
}

var _ sdk.Reader = (*Reader)(nil)

// Description returns the reader's name and serial number.
func (r *Reader) Description() sdk.Description {
	return sdk.Description{Name: r.spec.Name, SerialNumber: r.spec.SerialNumber}
}

// Status returns the configured status, or status_error.
func (r *Reader) Status() (sdk.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls.Status++
	if r.spec.StatusError != "" {
		return "", errors.New(r.spec.StatusError)
	}
	return sdk.Status(r.spec.Status), nil
}

// Open marks the reader open unless open_error is set.
func (r *Reader) Open(sdk.Priority) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls.Open++
	if r.spec.OpenError != "" {
		return errors.New(r.spec.OpenError)
	}
	r.open = true
	return nil
}

// Close marks the reader closed. close_error is returned after the state
// change, as a real SDK may still release the handle on a failed close.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls.Close++
	r.open = false
	if r.spec.CloseError != "" {
		return errors.New(r.spec.CloseError)
	}
	return nil
}

// Capabilities returns the configured resolutions.
func (r *Reader) Capabilities() (sdk.Capabilities, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls.Capabilities++
	if r.spec.CapabilitiesError != "" {
		return sdk.Capabilities{}, errors.New(r.spec.CapabilitiesError)
	}
	res := make([]int, len(r.spec.Resolutions))
	copy(res, r.spec.Resolutions)
	return sdk.Capabilities{Resolutions: res}, nil
}

// Capture returns the configured quality, or capture_error.
func (r *Reader) Capture(ctx context.Context, params sdk.CaptureParams) (sdk.CaptureResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls.Capture++
	r.lastParams = params
	if err := ctx.Err(); err != nil {
		return sdk.CaptureResult{}, err
	}
	if !r.open {
		return sdk.CaptureResult{}, errors.New("reader is not open")
	}
	if r.spec.CaptureError != "" {
		return sdk.CaptureResult{}, errors.New(r.spec.CaptureError)
	}
	return sdk.CaptureResult{
		Quality: sdk.Quality(r.spec.Quality),
		Data:    []byte(string(params.Format)),
	}, nil
}

// IsOpen reports whether the reader is currently open.
func (r *Reader) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open
}

// LastCaptureParams returns the arguments of the most recent Capture call.
func (r *Reader) LastCaptureParams() sdk.CaptureParams {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastParams
}

// Calls returns a snapshot of the call counts.
func (r *Reader) Calls() Calls {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
