package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestGoldenScenarios(t *testing.T) {
	for _, name := range []string{"initialize_twice", "close_failure"} {
		t.Run(name, func(t *testing.T) {
			result, err := RunWithGolden(t, loadTestScenario(t, name))
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_StepsShareSession(t *testing.T) {
	result, err := Run(loadTestScenario(t, "session_lifecycle"))
	require.NoError(t, err)

	require.Len(t, result.Steps, 4)
	assert.Len(t, result.Steps[0].Records, 2)
	assert.Equal(t, "capture", result.Steps[1].Records[0]["action"])
	assert.Len(t, result.Steps[3].Records, 4, "enumerate after cleanup initializes again")
	assert.Equal(t, 20, result.JournalLines)
}

func TestRun_ReportsExitCodeMismatch(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: wrong_exit
description: "Unknown command expected to succeed"
steps:
  - args: [foo]
    exit_code: 0
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "exit code 1, want 0")
}

func TestRun_ReportsLastRecordMismatch(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: wrong_last
description: "Expects a device that is not there"
steps:
  - args: [initialize]
    exit_code: 0
    last: { deviceCount: 3 }
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "does not match")
}

func TestRun_NoCommandStep(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: no_command
description: "No arguments at all"
steps:
  - args: []
    exit_code: 1
    last: { error: "No command specified" }
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 1, result.JournalLines)
}
