package harness

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/fpcapture/internal/sdk/fixture"
)

// AssertionError is returned when an assertion fails.
// It includes every emitted record to help debug the failure.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Records  []map[string]any
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nRecords:\n")
	for i, rec := range e.Records {
		line, _ := json.Marshal(rec)
		fmt.Fprintf(&buf, "  [%d] %s\n", i, line)
	}
	return buf.String()
}

var callFields = map[string]func(fixture.Calls) int{
	"status":       func(c fixture.Calls) int { return c.Status },
	"open":         func(c fixture.Calls) int { return c.Open },
	"close":        func(c fixture.Calls) int { return c.Close },
	"capabilities": func(c fixture.Calls) int { return c.Capabilities },
	"capture":      func(c fixture.Calls) int { return c.Capture },
}

// EvaluateAssertions checks every assertion and returns one message per
// failure.
func EvaluateAssertions(result *Result, assertions []Assertion, provider *fixture.Provider) []string {
	records := result.Records()
	var errs []string
	for _, a := range assertions {
		if err := evaluate(records, result, a, provider); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(records []map[string]any, result *Result, a Assertion, provider *fixture.Provider) error {
	fail := func(expected, actual string) error {
		return &AssertionError{Type: a.Type, Expected: expected, Actual: actual, Records: records}
	}

	switch a.Type {
	case AssertRecordContains:
		if countMatches(records, a.Record) == 0 {
			return fail(fmt.Sprintf("a record matching %v", a.Record), "none")
		}
	case AssertRecordAbsent:
		if n := countMatches(records, a.Record); n > 0 {
			return fail(fmt.Sprintf("no record matching %v", a.Record), fmt.Sprintf("%d", n))
		}
	case AssertRecordCount:
		if n := countMatches(records, a.Record); n != a.Count {
			return fail(fmt.Sprintf("%d records matching %v", a.Count, a.Record), fmt.Sprintf("%d", n))
		}
	case AssertRecordOrder:
		next := 0
		for _, rec := range records {
			if next < len(a.Records) && matchRecord(rec, a.Records[next]) {
				next++
			}
		}
		if next < len(a.Records) {
			return fail(fmt.Sprintf("records in order %v", a.Records), fmt.Sprintf("stopped before %v", a.Records[next]))
		}
	case AssertReaderCalls:
		r := provider.Reader(a.Reader)
		if r == nil {
			return fail(fmt.Sprintf("reader %d", a.Reader), "no such reader")
		}
		calls := r.Calls()
		names := make([]string, 0, len(a.Calls))
		for name := range a.Calls {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if got := callFields[name](calls); got != a.Calls[name] {
				return fail(fmt.Sprintf("reader %d %s calls = %d", a.Reader, name, a.Calls[name]), fmt.Sprintf("%d", got))
			}
		}
	case AssertJournalCount:
		if result.JournalLines != a.Count {
			return fail(fmt.Sprintf("%d journal lines", a.Count), fmt.Sprintf("%d", result.JournalLines))
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func countMatches(records []map[string]any, want map[string]any) int {
	n := 0
	for _, rec := range records {
		if matchRecord(rec, want) {
			n++
		}
	}
	return n
}

// matchRecord reports whether every key in want is present in got with a
// matching value. Nested records match the same way; arrays must match
// element by element.
func matchRecord(got, want map[string]any) bool {
	for k, w := range want {
		g, ok := got[k]
		if !ok || !matchValue(g, w) {
			return false
		}
	}
	return true
}

// matchValue compares a decoded record value with a YAML expectation.
func matchValue(got, want any) bool {
	switch w := want.(type) {
	case map[string]any:
		g, ok := got.(map[string]any)
		return ok && matchRecord(g, w)
	case []any:
		g, ok := got.([]any)
		if !ok || len(g) != len(w) {
			return false
		}
		for i := range w {
			if !matchValue(g[i], w[i]) {
				return false
			}
		}
		return true
	case int:
		return matchNumber(got, strconv.Itoa(w))
	case int64:
		return matchNumber(got, strconv.FormatInt(w, 10))
	case nil:
		return got == nil
	default:
		return got == want
	}
}

func matchNumber(got any, want string) bool {
	n, ok := got.(json.Number)
	return ok && n.String() == want
}
