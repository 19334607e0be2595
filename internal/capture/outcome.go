package capture

import (
	"time"

	"github.com/roach88/fpcapture/internal/record"
	"github.com/roach88/fpcapture/internal/report"
)

// Quality tags reported in the terminal capture record.
const (
	QualityGood      = "good"
	QualitySimulated = "simulated"
	QualityFallback  = "fallback"
)

// Artifact token prefixes. The token stands in for the biometric payload,
// which is never reported.
const (
	capturedPrefix  = "FP_CAPTURED_FINGERPRINT_DATA_"
	simulatedPrefix = "FP_SIMULATED_FINGERPRINT_DATA_"
	fallbackPrefix  = "FP_FALLBACK_FINGERPRINT_DATA_"
)

const (
	msgGood      = "Fingerprint captured successfully"
	msgSimulated = "Device detected but capture requires reader access - simulated response"
	msgFallback  = "Device communication successful but capture failed - fallback response"

	noteSimulated = "Reader open failed, providing simulated response to avoid crashes"
	noteFallback  = "Capture operation failed, providing fallback response"
)

// Outcome is the result of one capture invocation.
// Sealed: only Good, Simulated, Fallback and Failed implement it.
type Outcome interface {
	outcome()

	// Record builds the terminal record reported for this outcome.
	Record() record.Record
}

// Good is a capture the reader rated GOOD.
type Good struct {
	Artifact   string
	DeviceName string
	Timestamp  time.Time
}

func (Good) outcome() {}

// Record implements Outcome. Image dimensions are zero because the raw
// interchange format does not expose them.
func (g Good) Record() record.Record {
	return record.New(
		record.P("action", record.String("capture")),
		record.P("status", record.String(report.StatusSuccess)),
		record.P("quality", record.String(QualityGood)),
		record.P("deviceName", record.String(g.DeviceName)),
		record.P("timestamp", record.Int(g.Timestamp.UnixMilli())),
		record.P("message", record.String(msgGood)),
		record.P("captureData", record.String(g.Artifact)),
		record.P("imageWidth", record.Int(0)),
		record.P("imageHeight", record.Int(0)),
	)
}

// Simulated is reported when the reader could not be opened.
type Simulated struct {
	Artifact   string
	DeviceName string
	Timestamp  time.Time
	Reason     error
}

func (Simulated) outcome() {}

// Record implements Outcome.
func (s Simulated) Record() record.Record {
	return degradedRecord(QualitySimulated, s.DeviceName, s.Timestamp, msgSimulated, s.Artifact, noteSimulated)
}

// Fallback is reported when the reader opened but no GOOD capture came back.
type Fallback struct {
	Artifact   string
	DeviceName string
	Timestamp  time.Time
	Reason     error
}

func (Fallback) outcome() {}

// Record implements Outcome.
func (f Fallback) Record() record.Record {
	return degradedRecord(QualityFallback, f.DeviceName, f.Timestamp, msgFallback, f.Artifact, noteFallback)
}

// Failed is a capture stopped before open. Err is a *session.Error.
type Failed struct {
	Err error
}

func (Failed) outcome() {}

// Record implements Outcome.
func (f Failed) Record() record.Record {
	return report.ActionError("capture", f.Err.Error())
}

func degradedRecord(quality, device string, ts time.Time, msg, artifact, note string) record.Record {
	return record.New(
		record.P("action", record.String("capture")),
		record.P("status", record.String(report.StatusSuccess)),
		record.P("quality", record.String(quality)),
		record.P("deviceName", record.String(device)),
		record.P("timestamp", record.Int(ts.UnixMilli())),
		record.P("message", record.String(msg)),
		record.P("simulatedData", record.String(artifact)),
		record.P("note", record.String(note)),
	)
}
