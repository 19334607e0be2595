package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fpcapture/internal/record"
	"github.com/roach88/fpcapture/internal/report"
)

const msgCleanedUp = "Fingerprint SDK cleaned up successfully"

// NewCleanupCommand creates the cleanup command.
func NewCleanupCommand(opts *Options) *cobra.Command {
	return newOperationCommand("cleanup", "Close the reader and release the SDK", opts.cleanup)
}

func (o *Options) cleanup(_ context.Context) error {
	if err := o.emit(report.Starting("cleanup")); err != nil {
		return err
	}

	result, err := o.Session.Cleanup()
	if result.CloseErr != nil {
		o.logger().Warn("reader close failed during cleanup", "error", result.CloseErr)
		if emitErr := o.debug(fmt.Sprintf("Reader close failed (ignored): %v", result.CloseErr)); emitErr != nil {
			return emitErr
		}
	}
	if err != nil {
		if emitErr := o.emit(report.ActionError("cleanup", err.Error())); emitErr != nil {
			return emitErr
		}
		return err
	}

	return o.emit(record.New(
		record.P("action", record.String("cleanup")),
		record.P("status", record.String(report.StatusSuccess)),
		record.P("message", record.String(msgCleanedUp)),
	))
}
