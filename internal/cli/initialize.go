package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/fpcapture/internal/record"
	"github.com/roach88/fpcapture/internal/report"
)

const (
	msgInitialized = "Fingerprint SDK initialized successfully"
	msgNoDevices   = "No fingerprint devices found"
)

// NewInitializeCommand creates the initialize command.
func NewInitializeCommand(opts *Options) *cobra.Command {
	return newOperationCommand("initialize", "Enumerate readers and select the first one", opts.initialize)
}

// initialize brings the session up. It is also run, with its own pair of
// records, by enumerate and capture when the session is not initialized.
func (o *Options) initialize(ctx context.Context) error {
	if err := o.emit(report.Starting("initialize")); err != nil {
		return err
	}

	if err := o.Session.EnsureInitialized(ctx); err != nil {
		if emitErr := o.emit(report.ActionError("initialize", err.Error())); emitErr != nil {
			return emitErr
		}
		return err
	}

	n := o.Session.DeviceCount()
	msg := msgInitialized
	if n == 0 {
		msg = msgNoDevices
	}
	o.logger().Info("session initialized", "devices", n)
	return o.emit(record.New(
		record.P("action", record.String("initialize")),
		record.P("status", record.String(report.StatusSuccess)),
		record.P("deviceCount", record.Int(n)),
		record.P("message", record.String(msg)),
	))
}

func (o *Options) ensureInitialized(ctx context.Context) error {
	if o.Session.Initialized() {
		return nil
	}
	return o.initialize(ctx)
}
