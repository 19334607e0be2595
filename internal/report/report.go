// Package report writes protocol records to the caller, one line each.
//
// Each Emit encodes a single record, writes it followed by a newline and
// flushes the writer when it supports flushing. Nothing is held back between
// calls, so a crash mid-operation leaves every earlier line intact.
package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/fpcapture/internal/record"
)

// Status values carried in the "status" field.
const (
	StatusStarting = "starting"
	StatusSuccess  = "success"
	StatusError    = "error"
)

// Sink receives a copy of every emitted line (without the newline).
// Sink failures are logged and never affect the caller's output.
type Sink interface {
	RecordLine(line []byte) error
}

type flusher interface {
	Flush() error
}

// Reporter emits records to a writer.
type Reporter struct {
	w       io.Writer
	sinks   []Sink
	logger  *slog.Logger
	emitted int
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithSink adds a sink that receives every emitted line.
func WithSink(s Sink) Option {
	return func(r *Reporter) {
		if s != nil {
			r.sinks = append(r.sinks, s)
		}
	}
}

// WithLogger sets the logger used for sink failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reporter) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Reporter writing to w.
func New(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{w: w, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Emit writes rec as one line.
func (r *Reporter) Emit(rec record.Record) error {
	line, err := record.Encode(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')
	if _, err := r.w.Write(buf); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if f, ok := r.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush record: %w", err)
		}
	}
	r.emitted++

	for _, s := range r.sinks {
		if err := s.RecordLine(line); err != nil {
			r.logger.Warn("record sink failed", "error", err)
		}
	}
	return nil
}

// Debug emits a diagnostic {"debug": msg} line.
func (r *Reporter) Debug(msg string) error {
	return r.Emit(Debug(msg))
}

// Debugf emits a formatted diagnostic line.
func (r *Reporter) Debugf(format string, args ...any) error {
	return r.Emit(Debug(fmt.Sprintf(format, args...)))
}

// Emitted returns the number of lines written.
func (r *Reporter) Emitted() int {
	return r.emitted
}

// Starting builds {"action": action, "status": "starting"}.
func Starting(action string) record.Record {
	return record.New(
		record.P("action", record.String(action)),
		record.P("status", record.String(StatusStarting)),
	)
}

// ActionError builds the terminal error record of an operation.
func ActionError(action, message string) record.Record {
	return record.New(
		record.P("action", record.String(action)),
		record.P("status", record.String(StatusError)),
		record.P("message", record.String(message)),
	)
}

// Debug builds a diagnostic record.
func Debug(msg string) record.Record {
	return record.New(record.P("debug", record.String(msg)))
}

// Failure builds the dispatcher's terminal {"error": message} record.
func Failure(message string) record.Record {
	return record.New(record.P("error", record.String(message)))
}
