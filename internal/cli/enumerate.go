package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/fpcapture/internal/record"
	"github.com/roach88/fpcapture/internal/report"
	"github.com/roach88/fpcapture/internal/session"
)

const msgEnumerated = "Device enumeration completed"

// NewEnumerateCommand creates the enumerate command.
func NewEnumerateCommand(opts *Options) *cobra.Command {
	return newOperationCommand("enumerate", "List attached readers", opts.enumerate)
}

func (o *Options) enumerate(ctx context.Context) error {
	if err := o.emit(report.Starting("enumerate")); err != nil {
		return err
	}
	if err := o.ensureInitialized(ctx); err != nil {
		return err
	}

	descs := o.Session.Devices()
	devices := make(record.Array, 0, len(descs))
	for _, d := range descs {
		devices = append(devices, deviceRecord(d))
	}

	return o.emit(record.New(
		record.P("action", record.String("enumerate")),
		record.P("status", record.String(report.StatusSuccess)),
		record.P("devices", devices),
		record.P("deviceCount", record.Int(len(devices))),
		record.P("message", record.String(msgEnumerated)),
	))
}

// deviceRecord reports a reader. The SDK exposes no model, so the name
// doubles as one.
func deviceRecord(d session.Descriptor) record.Record {
	return record.New(
		record.P("id", record.Int(d.Index)),
		record.P("name", record.String(d.Name)),
		record.P("serialNumber", record.String(d.SerialNumber)),
		record.P("model", record.String(d.Name)),
		record.P("connected", record.Bool(d.Connected)),
	)
}
