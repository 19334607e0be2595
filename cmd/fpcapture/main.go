// Command fpcapture drives a fingerprint reader for a parent process.
//
// Usage: fpcapture <initialize|enumerate|capture|cleanup>
//
// Every outcome is written to stdout as JSON, one record per line. Logs go
// to stderr.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/fpcapture/internal/cli"
	"github.com/roach88/fpcapture/internal/clock"
	"github.com/roach88/fpcapture/internal/config"
	"github.com/roach88/fpcapture/internal/journal"
	"github.com/roach88/fpcapture/internal/report"
	"github.com/roach88/fpcapture/internal/sdk"
	"github.com/roach88/fpcapture/internal/sdk/fixture"
	"github.com/roach88/fpcapture/internal/session"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	cfg := config.Load(os.Getenv)

	level, levelErr := cfg.SlogLevel()
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	if levelErr != nil {
		logger.Warn("using default log level", "error", levelErr)
	}

	clk := clock.System{}
	reporterOpts := []report.Option{report.WithLogger(logger)}

	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			logger.Error("journal disabled", "path", cfg.JournalPath, "error", err)
		} else {
			defer func() {
				if closeErr := j.Close(); closeErr != nil {
					logger.Error("error closing journal", "error", closeErr)
				}
			}()
			rec := j.Recorder(ctx, journal.UUIDv7Generator{}.Generate(), commandName(args), clk)
			reporterOpts = append(reporterOpts, report.WithSink(rec))
			logger.Info("journal ready", "path", cfg.JournalPath, "invocation", rec.Invocation())
		}
	}

	opts := &cli.Options{
		Session:  session.New(session.NewRegistry(loadProvider(cfg, logger))),
		Reporter: report.New(os.Stdout, reporterOpts...),
		Clock:    clk,
		Logger:   logger,
	}
	return cli.Run(ctx, args, opts)
}

// loadProvider returns the configured SDK provider. A fixture that fails
// to load leaves the process without a provider, so every operation that
// needs a reader reports DEVICE_ACCESS.
func loadProvider(cfg config.Config, logger *slog.Logger) sdk.Provider {
	if cfg.FixturePath == "" {
		logger.Info("no SDK provider configured", "env", config.EnvFixture)
		return sdk.Unavailable{}
	}

	p, err := fixture.Load(cfg.FixturePath)
	if err != nil {
		logger.Error("fixture provider not loaded", "error", err)
		return unavailable{cause: err}
	}
	logger.Info("fixture provider loaded", "path", cfg.FixturePath)
	return p
}

// unavailable is sdk.Unavailable with the reason the provider could not
// be loaded.
type unavailable struct {
	sdk.Unavailable
	cause error
}

func (u unavailable) Readers(ctx context.Context) ([]sdk.Reader, error) {
	return nil, fmt.Errorf("%w: %v", sdk.ErrUnavailable, u.cause)
}

func commandName(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
