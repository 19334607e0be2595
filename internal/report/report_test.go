package report

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fpcapture/internal/record"
)

type captureSink struct {
	lines []string
	err   error
}

func (s *captureSink) RecordLine(line []byte) error {
	s.lines = append(s.lines, string(line))
	return s.err
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("stdout closed")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmitWritesOneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	require.NoError(t, r.Emit(Starting("initialize")))
	require.NoError(t, r.Debug("hello"))
	require.NoError(t, r.Debugf("count %d", 3))

	assert.Equal(t,
		"{\"action\":\"initialize\",\"status\":\"starting\"}\n"+
			"{\"debug\":\"hello\"}\n"+
			"{\"debug\":\"count 3\"}\n",
		buf.String())
	assert.Equal(t, 3, r.Emitted())
}

func TestEmitFlushesEachRecord(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	r := New(w)

	require.NoError(t, r.Emit(Debug("first")))
	assert.Equal(t, "{\"debug\":\"first\"}\n", buf.String(), "line must reach the writer before the next emit")
}

func TestEmitEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	err := r.Emit(record.New(record.P("bad", nil)))
	require.Error(t, err)
	assert.Empty(t, buf.String())
	assert.Equal(t, 0, r.Emitted())
}

func TestEmitWriteFailure(t *testing.T) {
	r := New(failingWriter{})
	err := r.Emit(Debug("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdout closed")
}

func TestSinkReceivesLinesWithoutNewline(t *testing.T) {
	var buf bytes.Buffer
	sink := &captureSink{}
	r := New(&buf, WithSink(sink), WithSink(nil))

	require.NoError(t, r.Emit(Failure("Unknown command: foo")))

	require.Len(t, sink.lines, 1)
	assert.Equal(t, `{"error":"Unknown command: foo"}`, sink.lines[0])
}

func TestSinkFailureDoesNotAffectOutput(t *testing.T) {
	var buf bytes.Buffer
	var logs bytes.Buffer
	sink := &captureSink{err: errors.New("disk full")}
	r := New(&buf, WithSink(sink), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	require.NoError(t, r.Emit(Debug("x")))
	assert.Equal(t, "{\"debug\":\"x\"}\n", buf.String())
	assert.Contains(t, logs.String(), "disk full")
}

func TestRecordBuilders(t *testing.T) {
	assert.Equal(t, `{"action":"capture","status":"starting"}`, Starting("capture").String())
	assert.Equal(t, `{"action":"cleanup","status":"error","message":"boom"}`, ActionError("cleanup", "boom").String())
	assert.Equal(t, `{"debug":"msg"}`, Debug("msg").String())
	assert.Equal(t, `{"error":"bad \"quote\""}`, Failure(`bad "quote"`).String())
}

func TestWithLoggerNilKeepsDefault(t *testing.T) {
	r := New(io.Discard, WithLogger(nil))
	assert.NotNil(t, r.logger)

	r = New(io.Discard, WithLogger(quietLogger()))
	require.NoError(t, r.Emit(Debug(strings.Repeat("a", 10))))
}
