// Package harness runs fpcapture conformance scenarios.
//
// A scenario describes a simulated reader fixture, a sequence of commands
// run against one session, and assertions over the records they emit.
// Every step goes through the real dispatcher, so a scenario exercises the
// same code path as the binary.
//
// # Scenario Format
//
//	name: close_failure_after_capture
//	description: "A failing close never changes the terminal record"
//	fixture:
//	  readers:
//	    - name: Reader1
//	      serial_number: SN123
//	      close_error: handle already released
//	steps:
//	  - args: [capture]
//	    exit_code: 0
//	    last: { action: capture, status: success, quality: good }
//	assertions:
//	  - type: record_contains
//	    record: { debug: "Reader close failed (expected): handle already released" }
//	  - type: reader_calls
//	    reader: 0
//	    calls: { open: 1, close: 1 }
//
// The fixture block uses the same schema as FPCAPTURE_FIXTURE files and is
// validated the same way.
//
// # Assertion Types
//
//   - record_contains: some record matches (subset semantics)
//   - record_absent: no record matches
//   - record_count: exactly count records match
//   - record_order: the listed records match in this order, not necessarily adjacent
//   - reader_calls: the fixture reader saw exactly these call counts
//   - journal_count: the journal holds count lines across all steps
//
// # Deterministic Testing
//
// Scenarios run with a fixed clock (clock_millis, default 1700000000123),
// fixed invocation ids and an in-memory journal, so the emitted records are
// byte-identical across runs and can be compared with golden files.
package harness
