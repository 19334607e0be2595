package testutil

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// DecodeLines parses newline-separated JSON records. Numbers decode as
// json.Number so integer fields compare exactly.
func DecodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()

	var records []map[string]any
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line == "" {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader([]byte(line)))
		dec.UseNumber()
		var rec map[string]any
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("line is not a JSON object: %q: %v", line, err)
		}
		records = append(records, rec)
	}
	return records
}

// Last returns the final record, the one a parent process acts on.
func Last(t *testing.T, records []map[string]any) map[string]any {
	t.Helper()
	if len(records) == 0 {
		t.Fatal("no records emitted")
	}
	return records[len(records)-1]
}

// WithKey returns the records that contain key.
func WithKey(records []map[string]any, key string) []map[string]any {
	var out []map[string]any
	for _, r := range records {
		if _, ok := r[key]; ok {
			out = append(out, r)
		}
	}
	return out
}
