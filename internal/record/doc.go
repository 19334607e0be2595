// Package record provides the ordered record type that every fpcapture
// operation reports through, and the single encoder that renders it.
//
// A Record keeps its keys in insertion order. The encoder never reorders
// keys, so the line a caller reads matches the order the operation built.
//
// Key constraints:
//   - Values are sealed: only String, Int, Bool, Array and Record
//   - No floats and no null (timestamps are integer milliseconds)
//   - Strings are NFC normalized at the encoding boundary
package record
