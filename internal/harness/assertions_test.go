package harness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fpcapture/internal/sdk/fixture"
)

func resultWith(records ...map[string]any) *Result {
	r := NewResult()
	r.Steps = append(r.Steps, StepResult{Args: []string{"capture"}, Records: records})
	return r
}

func TestMatchValue(t *testing.T) {
	assert.True(t, matchValue(json.Number("3"), 3))
	assert.False(t, matchValue(json.Number("3"), 4))
	assert.False(t, matchValue("3", 3))
	assert.True(t, matchValue(json.Number("1712345678901"), int64(1712345678901)))
	assert.True(t, matchValue(true, true))
	assert.True(t, matchValue("good", "good"))
	assert.False(t, matchValue(map[string]any{"a": "b"}, "good"))
	assert.True(t, matchValue(nil, nil))

	got := []any{map[string]any{"id": json.Number("0"), "name": "Reader1"}}
	assert.True(t, matchValue(got, []any{map[string]any{"id": 0}}))
	assert.False(t, matchValue(got, []any{}))
}

func TestMatchRecord_Subset(t *testing.T) {
	rec := map[string]any{"action": "capture", "status": "success", "quality": "good"}

	assert.True(t, matchRecord(rec, map[string]any{"quality": "good"}))
	assert.True(t, matchRecord(rec, map[string]any{}))
	assert.False(t, matchRecord(rec, map[string]any{"quality": "fallback"}))
	assert.False(t, matchRecord(rec, map[string]any{"note": "x"}))
}

func TestEvaluateAssertions(t *testing.T) {
	result := resultWith(
		map[string]any{"action": "capture", "status": "starting"},
		map[string]any{"debug": "Reader opened successfully"},
		map[string]any{"action": "capture", "status": "success"},
	)
	result.JournalLines = 3

	provider := fixture.New(fixture.Fixture{Readers: []fixture.ReaderSpec{{Name: "Reader1"}}})

	passing := []Assertion{
		{Type: AssertRecordContains, Record: map[string]any{"debug": "Reader opened successfully"}},
		{Type: AssertRecordAbsent, Record: map[string]any{"error": "x"}},
		{Type: AssertRecordCount, Record: map[string]any{"action": "capture"}, Count: 2},
		{Type: AssertRecordOrder, Records: []map[string]any{{"status": "starting"}, {"status": "success"}}},
		{Type: AssertReaderCalls, Reader: 0, Calls: map[string]int{"open": 0}},
		{Type: AssertJournalCount, Count: 3},
	}
	assert.Empty(t, EvaluateAssertions(result, passing, provider))

	failing := []Assertion{
		{Type: AssertRecordContains, Record: map[string]any{"debug": "missing"}},
		{Type: AssertRecordAbsent, Record: map[string]any{"action": "capture"}},
		{Type: AssertRecordCount, Record: map[string]any{"action": "capture"}, Count: 1},
		{Type: AssertRecordOrder, Records: []map[string]any{{"status": "success"}, {"status": "starting"}}},
		{Type: AssertReaderCalls, Reader: 5, Calls: map[string]int{"open": 0}},
		{Type: AssertReaderCalls, Reader: 0, Calls: map[string]int{"open": 1}},
		{Type: AssertJournalCount, Count: 4},
	}
	errs := EvaluateAssertions(result, failing, provider)
	require.Len(t, errs, len(failing))
	assert.Contains(t, errs[0], "Assertion failed: record_contains")
	assert.Contains(t, errs[0], `[2] {"action":"capture","status":"success"}`)
	assert.Contains(t, errs[4], "no such reader")
}
