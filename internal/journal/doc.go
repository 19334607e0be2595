// Package journal keeps an optional SQLite audit trail of every protocol
// line fpcapture emits.
//
// Each process run gets a UUIDv7 invocation id. Lines are stamped with a
// monotonic seq (clock.Sequence) so the original order is recoverable even
// when several invocations write to the same file.
//
// Only protocol lines are journaled. They carry artifact tokens, never a
// biometric payload.
package journal
