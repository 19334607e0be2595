// Package capture implements the reader session controller: the state
// machine that takes the selected reader from description to a capture
// outcome.
//
// STATES:
//
//	NoReader → Described → StatusChecked → Opened → CaptureAttempted → Closed
//	                                     ↘ OpenFailed ─────────────────↗
//	                                       Opened → CaptureFailed ─────↗
//
// POLICY:
//
// Only two conditions stop a capture: no reader bound after initialization,
// and a reader status other than READY or NEED_CALIBRATION. Both yield a
// Failed outcome carrying a *session.Error.
//
// Everything after the status gate degrades instead of failing. An open
// failure yields Simulated. A capabilities, capture or quality failure
// yields Fallback. Once an open has been attempted the reader is closed
// exactly once, and a close failure is reported as a debug line only.
package capture
