package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fpcapture/internal/sdk/fixture"
)

// DefaultClockMillis is the clock reading used when a scenario sets none.
const DefaultClockMillis int64 = 1700000000123

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is the simulated SDK state, in fixture file syntax.
	Fixture map[string]any `yaml:"fixture,omitempty"`

	// ClockMillis fixes the capture timestamp.
	ClockMillis int64 `yaml:"clock_millis,omitempty"`

	// Steps run in order against one session.
	Steps []Step `yaml:"steps"`

	// Assertions validate the records of all steps.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step runs one command.
type Step struct {
	// Args are the process arguments. Empty runs with no command.
	Args []string `yaml:"args"`

	// ExitCode is the expected exit code.
	ExitCode int `yaml:"exit_code"`

	// Last is matched against the step's final record (subset semantics).
	Last map[string]any `yaml:"last,omitempty"`
}

// Assertion validates emitted records or fixture state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Record is the subset to match (record_contains, record_absent,
	// record_count).
	Record map[string]any `yaml:"record,omitempty"`

	// Records is the expected order (record_order).
	Records []map[string]any `yaml:"records,omitempty"`

	// Count is the expected number of matches (record_count,
	// journal_count).
	Count int `yaml:"count,omitempty"`

	// Reader is the fixture reader index (reader_calls).
	Reader int `yaml:"reader,omitempty"`

	// Calls maps status, open, close, capabilities and capture to the
	// expected call counts (reader_calls). Unlisted calls are not checked.
	Calls map[string]int `yaml:"calls,omitempty"`
}

// Assertion type constants.
const (
	AssertRecordContains = "record_contains"
	AssertRecordAbsent   = "record_absent"
	AssertRecordCount    = "record_count"
	AssertRecordOrder    = "record_order"
	AssertReaderCalls    = "reader_calls"
	AssertJournalCount   = "journal_count"
)

var assertionTypes = map[string]bool{
	AssertRecordContains: true,
	AssertRecordAbsent:   true,
	AssertRecordCount:    true,
	AssertRecordOrder:    true,
	AssertReaderCalls:    true,
	AssertJournalCount:   true,
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// ProviderFixture validates the scenario's fixture block against the
// fixture schema and returns it with defaults applied.
func (s *Scenario) ProviderFixture() (fixture.Fixture, error) {
	data, err := yaml.Marshal(s.Fixture)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("failed to encode fixture: %w", err)
	}
	return fixture.Parse(data)
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if s.ClockMillis < 0 {
		return fmt.Errorf("clock_millis must not be negative")
	}

	for i, a := range s.Assertions {
		if !assertionTypes[a.Type] {
			return fmt.Errorf("assertion %d: unknown type %q", i, a.Type)
		}
		switch a.Type {
		case AssertRecordContains, AssertRecordAbsent, AssertRecordCount:
			if len(a.Record) == 0 {
				return fmt.Errorf("assertion %d (%s): record is required", i, a.Type)
			}
		case AssertRecordOrder:
			if len(a.Records) < 2 {
				return fmt.Errorf("assertion %d (%s): at least two records are required", i, a.Type)
			}
		case AssertReaderCalls:
			if len(a.Calls) == 0 {
				return fmt.Errorf("assertion %d (%s): calls is required", i, a.Type)
			}
			for name := range a.Calls {
				if _, ok := callFields[name]; !ok {
					return fmt.Errorf("assertion %d (%s): unknown call %q", i, a.Type, name)
				}
			}
		}
	}

	if _, err := s.ProviderFixture(); err != nil {
		return err
	}
	return nil
}
