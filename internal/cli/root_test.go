package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fpcapture/internal/report"
	"github.com/roach88/fpcapture/internal/sdk"
	"github.com/roach88/fpcapture/internal/sdk/fixture"
	"github.com/roach88/fpcapture/internal/session"
	"github.com/roach88/fpcapture/internal/testutil"
)

const testMillis = 1700000000123

type harness struct {
	opts *Options
	out  *bytes.Buffer
	diag *bytes.Buffer
}

func newHarness(t *testing.T, p sdk.Provider) *harness {
	t.Helper()
	out := &bytes.Buffer{}
	diag := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &harness{
		opts: &Options{
			Session:     session.New(session.NewRegistry(p)),
			Reporter:    report.New(out, report.WithLogger(logger)),
			Clock:       testutil.NewFixedClockMillis(testMillis),
			Logger:      logger,
			Diagnostics: diag,
		},
		out:  out,
		diag: diag,
	}
}

func (h *harness) run(args ...string) int {
	return Run(context.Background(), args, h.opts)
}

func reader1() fixture.ReaderSpec {
	return fixture.ReaderSpec{
		Name:         "Reader1",
		SerialNumber: "SN123",
		Status:       "READY",
		Quality:      "GOOD",
		Resolutions:  []int{500},
	}
}

func oneReader(spec fixture.ReaderSpec) *fixture.Provider {
	return fixture.New(fixture.Fixture{Readers: []fixture.ReaderSpec{spec}})
}

func assertGolden(t *testing.T, name string, out []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, out)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(&Options{})
	require.NotNil(t, cmd)
	assert.Equal(t, "fpcapture", cmd.Name())
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(&Options{})

	for _, name := range Commands {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestScenarioA_InitializeNoDevices(t *testing.T) {
	h := newHarness(t, fixture.New(fixture.Fixture{}))

	code := h.run("initialize")

	assert.Equal(t, ExitSuccess, code)
	assertGolden(t, "scenario_a_initialize_no_devices", h.out.Bytes())
}

func TestScenarioB_EnumerateOneDevice(t *testing.T) {
	h := newHarness(t, oneReader(reader1()))

	code := h.run("enumerate")

	assert.Equal(t, ExitSuccess, code)
	assertGolden(t, "scenario_b_enumerate_one_device", h.out.Bytes())
}

func TestScenarioC_CaptureGood(t *testing.T) {
	p := oneReader(reader1())
	h := newHarness(t, p)

	code := h.run("capture")

	assert.Equal(t, ExitSuccess, code)
	assertGolden(t, "scenario_c_capture_good", h.out.Bytes())
	assert.Equal(t, 1, p.Reader(0).Calls().Close)
}

func TestScenarioD_CaptureOpenFails(t *testing.T) {
	spec := reader1()
	spec.OpenError = "device claimed by another process"
	p := oneReader(spec)
	h := newHarness(t, p)

	code := h.run("capture")

	assert.Equal(t, ExitSuccess, code)
	assertGolden(t, "scenario_d_capture_open_fails", h.out.Bytes())
	assert.Equal(t, 0, p.Reader(0).Calls().Capture)
	assert.Equal(t, 1, p.Reader(0).Calls().Close)
}

func TestScenarioE_UnknownCommand(t *testing.T) {
	p := oneReader(reader1())
	h := newHarness(t, p)

	code := h.run("foo")

	assert.Equal(t, ExitFailure, code)
	assertGolden(t, "scenario_e_unknown_command", h.out.Bytes())
	assert.Equal(t, 0, p.Enumerations(), "unknown command has no side effects")
}

func TestRun_NoCommand(t *testing.T) {
	h := newHarness(t, fixture.New(fixture.Fixture{}))

	code := h.run()

	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, `{"error":"No command specified"}`+"\n", h.out.String())
}

func TestRun_HelpIsNotACommand(t *testing.T) {
	for _, arg := range []string{"help", "--help", "-h", "completion"} {
		t.Run(arg, func(t *testing.T) {
			h := newHarness(t, fixture.New(fixture.Fixture{}))

			code := h.run(arg)

			assert.Equal(t, ExitFailure, code)
			assert.Equal(t, `{"error":"Unknown command: `+arg+`"}`+"\n", h.out.String())
		})
	}
}

func TestRun_SubcommandHelpFlagFails(t *testing.T) {
	tests := [][]string{
		{"capture", "--help"},
		{"initialize", "-h"},
		{"enumerate", "--help"},
		{"cleanup", "-h"},
	}

	for _, args := range tests {
		t.Run(args[0]+" "+args[1], func(t *testing.T) {
			p := oneReader(reader1())
			h := newHarness(t, p)

			code := h.run(args...)

			assert.Equal(t, ExitFailure, code)
			records := testutil.DecodeLines(t, h.out.String())
			require.Len(t, records, 1)
			assert.Contains(t, records[0]["error"], args[1])
			assert.Empty(t, h.diag.String(), "no help text is printed")
			assert.Zero(t, p.Enumerations())
		})
	}
}

func TestRun_ExtraArgumentFails(t *testing.T) {
	h := newHarness(t, oneReader(reader1()))

	code := h.run("initialize", "extra")

	assert.Equal(t, ExitFailure, code)
	records := testutil.DecodeLines(t, h.out.String())
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0]["error"])
}
