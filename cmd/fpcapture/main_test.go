package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fpcapture/internal/config"
	"github.com/roach88/fpcapture/internal/sdk"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadProvider_Unconfigured(t *testing.T) {
	p := loadProvider(config.Config{}, discard())

	_, err := p.Readers(context.Background())
	assert.ErrorIs(t, err, sdk.ErrUnavailable)
}

func TestLoadProvider_Fixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("readers:\n  - name: Reader1\n    serial_number: SN123\n"), 0o600))

	p := loadProvider(config.Config{FixturePath: path}, discard())

	readers, err := p.Readers(context.Background())
	require.NoError(t, err)
	require.Len(t, readers, 1)
	assert.Equal(t, "Reader1", readers[0].Description().Name)
}

func TestLoadProvider_BadFixture(t *testing.T) {
	p := loadProvider(config.Config{FixturePath: filepath.Join(t.TempDir(), "missing.yaml")}, discard())

	_, err := p.Readers(context.Background())
	require.ErrorIs(t, err, sdk.ErrUnavailable)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, "", commandName(nil))
	assert.Equal(t, "capture", commandName([]string{"capture", "x"}))
}
