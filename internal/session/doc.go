// Package session owns the reader lifecycle of a single fpcapture process.
//
// A Registry wraps SDK enumeration. A Session holds whether the SDK has been
// initialized, the readers found, and the selected reader Handle.
//
// Invariant: Selected() is non-nil only when Initialized() is true and at
// least one reader was enumerated. Initialization always selects index 0.
//
// One Session serves one command for the lifetime of the process. There is
// no locking; callers must not share a Session between goroutines.
package session
