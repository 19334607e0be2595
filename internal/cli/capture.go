package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/fpcapture/internal/capture"
	"github.com/roach88/fpcapture/internal/report"
	"github.com/roach88/fpcapture/internal/session"
)

// NewCaptureCommand creates the capture command.
func NewCaptureCommand(opts *Options) *cobra.Command {
	return newOperationCommand("capture", "Capture one fingerprint from the selected reader", opts.capture)
}

// capture reports exactly one terminal record for every reader that passes
// the status gate. A missing reader produces no capture record at all; the
// dispatcher's error record is the only one.
func (o *Options) capture(ctx context.Context) error {
	if err := o.emit(report.Starting("capture")); err != nil {
		return err
	}
	if err := o.ensureInitialized(ctx); err != nil {
		return err
	}

	ctrl := capture.NewController(o.Session, o.Reporter, o.clock(), o.logger())
	outcome := ctrl.Capture(ctx)

	if failed, ok := outcome.(capture.Failed); ok {
		o.logger().Info("capture failed", "error", failed.Err, "trace", ctrl.Trace())
		if !session.IsNoDevice(failed.Err) {
			if err := o.emit(failed.Record()); err != nil {
				return err
			}
		}
		return failed.Err
	}

	rec := outcome.Record()
	o.logger().Info("capture finished", "quality", rec.StringField("quality"), "trace", ctrl.Trace())
	return o.emit(rec)
}
