// Package cli dispatches fpcapture's single positional command to an
// operation and turns any failure into one error record and exit code 1.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/fpcapture/internal/clock"
	"github.com/roach88/fpcapture/internal/report"
	"github.com/roach88/fpcapture/internal/session"
)

// Commands lists the recognized commands in dispatch order.
var Commands = []string{"initialize", "enumerate", "capture", "cleanup"}

// Options holds the collaborators shared by every command.
type Options struct {
	Session  *session.Session
	Reporter *report.Reporter
	Clock    clock.Clock
	Logger   *slog.Logger

	// Diagnostics receives cobra's own help and usage text. Defaults to
	// os.Stderr so stdout carries records only.
	Diagnostics io.Writer
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o *Options) clock() clock.Clock {
	if o.Clock != nil {
		return o.Clock
	}
	return clock.System{}
}

// NewRootCommand creates the root command for fpcapture.
//
// Flags are not parsed at the root, so anything other than a recognized
// command (including "--help") is reported as an unknown command.
func NewRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "fpcapture <initialize|enumerate|capture|cleanup>",
		Short:              "Fingerprint reader bridge",
		Long:               "Drives a fingerprint reader and reports each step as one JSON record per line on stdout.",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoCommand
			}
			return unknownCommand(args[0])
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{
		Use:    "help",
		Hidden: true,
		Args:   cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return unknownCommand("help")
		},
	})

	diag := opts.Diagnostics
	if diag == nil {
		diag = os.Stderr
	}
	cmd.SetOut(diag)
	cmd.SetErr(diag)

	cmd.AddCommand(NewInitializeCommand(opts))
	cmd.AddCommand(NewEnumerateCommand(opts))
	cmd.AddCommand(NewCaptureCommand(opts))
	cmd.AddCommand(NewCleanupCommand(opts))

	return cmd
}

// Run executes one command and returns the process exit code. A failure
// from any command is reported once as {"error": message}.
func Run(ctx context.Context, args []string, opts *Options) int {
	log := opts.logger()

	if args == nil {
		args = []string{}
	}
	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)

	log.Info("dispatch", "args", args)
	err := cmd.ExecuteContext(ctx)
	code := GetExitCode(err)
	if err != nil {
		log.Warn("command failed", "error", err, "exit_code", code)
		if emitErr := opts.Reporter.Emit(report.Failure(failureMessage(err))); emitErr != nil {
			log.Error("error record not written", "error", emitErr)
		}
	}
	log.Info("dispatch finished", "exit_code", code, "records", opts.Reporter.Emitted())
	return code
}

// newOperationCommand builds a command that takes no arguments. Flags are
// not parsed either, so "-h" is an extra argument and fails like any other.
func newOperationCommand(name, short string, run func(ctx context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:                name,
		Short:              short,
		Args:               cobra.NoArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
}
