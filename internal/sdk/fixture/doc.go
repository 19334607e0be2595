// Package fixture implements the sdk interfaces from a declarative reader
// fixture, so fpcapture can run and be tested without hardware.
//
// A fixture is YAML validated against an embedded CUE schema (schema.cue).
// The schema supplies defaults, so the smallest useful fixture is:
//
//	readers:
//	  - name: Reader1
//	    serial_number: SN123
//
// Each reader can inject a fault at any SDK call (status_error, open_error,
// capabilities_error, capture_error, close_error) or report a non-GOOD
// capture quality. A top-level unreachable message makes enumeration fail.
//
// Readers count every call made on them; tests use Calls to check which
// SDK primitives a code path reached.
package fixture
