package fixture

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Fixture describes the simulated SDK state.
// Field tags are json because CUE decodes through them.
type Fixture struct {
	// Unreachable, when set, makes every enumeration fail with this message.
	Unreachable string `json:"unreachable,omitempty"`

	// ReleaseError, when set, makes Release fail with this message.
	ReleaseError string `json:"release_error,omitempty"`

	// Readers lists attached readers in enumeration order.
	Readers []ReaderSpec `json:"readers"`
}

// ReaderSpec describes one simulated reader.
type ReaderSpec struct {
	Name              string `json:"name"`
	SerialNumber      string `json:"serial_number"`
	Status            string `json:"status"`
	StatusError       string `json:"status_error,omitempty"`
	OpenError         string `json:"open_error,omitempty"`
	CapabilitiesError string `json:"capabilities_error,omitempty"`
	Resolutions       []int  `json:"resolutions"`
	CaptureError      string `json:"capture_error,omitempty"`
	Quality           string `json:"quality"`
	CloseError        string `json:"close_error,omitempty"`
}

// LoadError reports a fixture that could not be read or failed validation.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("fixture %s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("fixture: %s: %v", e.Message, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the fixture file at path and returns a provider for it.
func Load(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "reading file", Err: err}
	}

	f, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}

	return New(f), nil
}

// Parse decodes YAML fixture data, validates it against the schema and
// fills defaults.
func Parse(data []byte) (Fixture, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Fixture{}, &LoadError{Message: "decoding YAML", Err: err}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Fixture{}, &LoadError{Message: "compiling schema", Err: err}
	}

	value := schema.LookupPath(cue.ParsePath("#Fixture")).Unify(ctx.Encode(raw))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return Fixture{}, &LoadError{Message: "validating against schema", Err: err}
	}

	var f Fixture
	if err := value.Decode(&f); err != nil {
		return Fixture{}, &LoadError{Message: "decoding fixture", Err: err}
	}
	return f, nil
}
