package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/fpcapture/internal/cli"
	"github.com/roach88/fpcapture/internal/journal"
	"github.com/roach88/fpcapture/internal/report"
	"github.com/roach88/fpcapture/internal/sdk/fixture"
	"github.com/roach88/fpcapture/internal/session"
	"github.com/roach88/fpcapture/internal/testutil"
)

// Harness holds the collaborators shared by the steps of one scenario.
type Harness struct {
	provider *fixture.Provider
	session  *session.Session
	journal  *journal.Journal
	clock    *testutil.FixedClock
	ids      *testutil.FixedIDGenerator
	logger   *slog.Logger
	out      *bytes.Buffer
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh fixture provider and an in-memory
// journal. All steps share one session, so a later step sees the state an
// earlier one left behind.
//
// A returned error means the scenario could not run at all; failed
// expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	f, err := scenario.ProviderFixture()
	if err != nil {
		return nil, err
	}

	j, err := journal.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
	}
	defer j.Close()

	millis := scenario.ClockMillis
	if millis == 0 {
		millis = DefaultClockMillis
	}

	provider := fixture.New(f)
	h := &Harness{
		provider: provider,
		session:  session.New(session.NewRegistry(provider)),
		journal:  j,
		clock:    testutil.NewFixedClockMillis(millis),
		ids:      testutil.NewFixedIDGenerator(scenario.Name),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:      &bytes.Buffer{},
	}

	ctx := context.Background()
	result := NewResult()
	for i, step := range scenario.Steps {
		sr, err := h.runStep(ctx, i, step)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		result.Steps = append(result.Steps, sr)
		checkStep(result, i, step, sr)
	}
	result.Output = bytes.Clone(h.out.Bytes())

	invocations, err := j.Invocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	for _, inv := range invocations {
		entries, err := j.Entries(ctx, inv)
		if err != nil {
			return nil, fmt.Errorf("failed to read journal: %w", err)
		}
		result.JournalLines += len(entries)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions, provider) {
		result.AddError(msg)
	}
	return result, nil
}

// runStep runs one command through the dispatcher and collects its records.
func (h *Harness) runStep(ctx context.Context, i int, step Step) (StepResult, error) {
	invocation := fmt.Sprintf("%s-%d", h.ids.Generate(), i)
	command := ""
	if len(step.Args) > 0 {
		command = step.Args[0]
	}

	var stepOut bytes.Buffer
	reporter := report.New(io.MultiWriter(h.out, &stepOut),
		report.WithLogger(h.logger),
		report.WithSink(h.journal.Recorder(ctx, invocation, command, h.clock)),
	)

	code := cli.Run(ctx, step.Args, &cli.Options{
		Session:     h.session,
		Reporter:    reporter,
		Clock:       h.clock,
		Logger:      h.logger,
		Diagnostics: io.Discard,
	})

	records, err := decodeRecords(stepOut.Bytes())
	if err != nil {
		return StepResult{}, err
	}
	return StepResult{Args: step.Args, ExitCode: code, Records: records}, nil
}

func checkStep(result *Result, i int, step Step, sr StepResult) {
	if sr.ExitCode != step.ExitCode {
		result.AddError(fmt.Sprintf("step %d %v: exit code %d, want %d", i, step.Args, sr.ExitCode, step.ExitCode))
	}
	if step.Last == nil {
		return
	}
	if len(sr.Records) == 0 {
		result.AddError(fmt.Sprintf("step %d %v: no records emitted", i, step.Args))
		return
	}
	last := sr.Records[len(sr.Records)-1]
	if !matchRecord(last, step.Last) {
		result.AddError(fmt.Sprintf("step %d %v: last record %v does not match %v", i, step.Args, last, step.Last))
	}
}

// decodeRecords parses one JSON object per line. Numbers stay json.Number
// so integers compare exactly.
func decodeRecords(out []byte) ([]map[string]any, error) {
	records := []map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(out))
	dec.UseNumber()
	for dec.More() {
		var rec map[string]any
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("output is not one JSON object per line: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
