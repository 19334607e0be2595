package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/roach88/fpcapture/internal/clock"
	"github.com/roach88/fpcapture/internal/report"
	"github.com/roach88/fpcapture/internal/sdk"
	"github.com/roach88/fpcapture/internal/session"
)

// State is a step of the capture state machine.
type State string

const (
	StateNoReader         State = "NoReader"
	StateDescribed        State = "Described"
	StateStatusChecked    State = "StatusChecked"
	StateOpened           State = "Opened"
	StateOpenFailed       State = "OpenFailed"
	StateCaptureAttempted State = "CaptureAttempted"
	StateCaptureFailed    State = "CaptureFailed"
	StateClosed           State = "Closed"
)

// Controller runs one capture against the session's selected reader.
type Controller struct {
	session  *session.Session
	reporter *report.Reporter
	clock    clock.Clock
	logger   *slog.Logger
	trace    []State
}

// NewController creates a controller. A nil logger uses slog.Default().
func NewController(s *session.Session, r *report.Reporter, c clock.Clock, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{session: s, reporter: r, clock: c, logger: logger}
}

// Trace returns the states visited by the last Capture, in order.
func (c *Controller) Trace() []State {
	out := make([]State, len(c.trace))
	copy(out, c.trace)
	return out
}

// Capture drives the selected reader to an outcome. It never returns nil.
// Debug lines are emitted as each step runs; the terminal record is left to
// the caller.
func (c *Controller) Capture(ctx context.Context) Outcome {
	c.trace = c.trace[:0]
	c.enter(StateNoReader)

	if err := c.session.EnsureInitialized(ctx); err != nil {
		return Failed{Err: err}
	}

	h := c.session.Selected()
	c.debugf("Reader status - initialized: %t, readers size: %d, reader null: %t",
		c.session.Initialized(), c.session.DeviceCount(), h == nil)
	if h == nil {
		return Failed{Err: session.NewNoDeviceError()}
	}

	c.debug("Getting reader description...")
	name := h.Name()
	c.enter(StateDescribed)
	c.debugf("Reader description: %s", name)

	c.debug("Checking reader status...")
	status, err := h.Status()
	if err != nil {
		return Failed{Err: session.NewDeviceAccessError("Failed to read reader status", err)}
	}
	c.debugf("Reader status: %s", status)
	if !status.AuthorizesCapture() {
		return Failed{Err: session.NewReaderNotReadyError(status)}
	}
	c.enter(StateStatusChecked)

	return c.openAndCapture(ctx, h, name)
}

// openAndCapture runs every step after the status gate. The deferred close
// covers the simulated, fallback and good branches alike.
func (c *Controller) openAndCapture(ctx context.Context, h *session.Handle, name string) Outcome {
	c.debug("Opening reader with COOPERATIVE priority...")
	openErr := h.Open(sdk.PriorityCooperative)
	defer c.close(h, openErr == nil)

	if openErr != nil {
		c.enter(StateOpenFailed)
		c.debugf("Reader open failed, trying basic communication only: %v", openErr)
		ts := c.clock.Now()
		return Simulated{
			Artifact:   token(simulatedPrefix, ts.UnixMilli()),
			DeviceName: name,
			Timestamp:  ts,
			Reason:     openErr,
		}
	}
	c.enter(StateOpened)
	c.debug("Reader opened successfully")

	c.debug("Attempting actual fingerprint capture...")
	if err := c.attempt(ctx, h); err != nil {
		c.enter(StateCaptureFailed)
		c.debugf("Actual capture failed: %v", err)
		ts := c.clock.Now()
		return Fallback{
			Artifact:   token(fallbackPrefix, ts.UnixMilli()),
			DeviceName: name,
			Timestamp:  ts,
			Reason:     err,
		}
	}
	c.enter(StateCaptureAttempted)

	ts := c.clock.Now()
	return Good{
		Artifact:   token(capturedPrefix, ts.UnixMilli()),
		DeviceName: name,
		Timestamp:  ts,
	}
}

// errNoResolutions is returned when the reader advertises no resolution.
var errNoResolutions = errors.New("reader reports no supported resolutions")

// attempt runs the raw capture. Any quality other than GOOD is an error.
func (c *Controller) attempt(ctx context.Context, h *session.Handle) error {
	caps, err := h.Capabilities()
	if err != nil {
		return fmt.Errorf("reading capabilities: %w", err)
	}
	if len(caps.Resolutions) == 0 {
		return errNoResolutions
	}

	result, err := h.Capture(ctx, sdk.CaptureParams{
		Format:          sdk.FormatANSI381,
		ImageProcessing: sdk.ImageProcessingDefault,
		Resolution:      caps.Resolutions[0],
		TimeoutMillis:   sdk.InfiniteTimeout,
	})
	if err != nil {
		return err
	}

	c.debugf("Capture completed with quality: %s", result.Quality)
	if result.Quality != sdk.QualityGood {
		return fmt.Errorf("poor capture quality: %s", result.Quality)
	}
	return nil
}

// close is attempted once whether or not open succeeded.
func (c *Controller) close(h *session.Handle, opened bool) {
	switch err := h.Close(); {
	case err != nil:
		c.logger.Warn("reader close failed", "reader", h.Name(), "error", err)
		c.debugf("Reader close failed (expected): %v", err)
	case opened:
		c.debug("Reader closed successfully")
	default:
		c.debug("Reader close attempted after failed open")
	}
	c.enter(StateClosed)
}

func (c *Controller) enter(s State) {
	c.trace = append(c.trace, s)
}

func (c *Controller) debug(msg string) {
	if err := c.reporter.Debug(msg); err != nil {
		c.logger.Warn("debug record not written", "error", err)
	}
}

func (c *Controller) debugf(format string, args ...any) {
	if err := c.reporter.Debugf(format, args...); err != nil {
		c.logger.Warn("debug record not written", "error", err)
	}
}

func token(prefix string, millis int64) string {
	return prefix + strconv.FormatInt(millis, 10)
}
