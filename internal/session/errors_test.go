package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/fpcapture/internal/sdk"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t,
		"No fingerprint reader available - device not found or not initialized properly",
		NewNoDeviceError().Error())
	assert.Equal(t,
		"Reader not ready for capture. Status: BUSY",
		NewReaderNotReadyError(sdk.StatusBusy).Error())
	assert.Equal(t,
		"Failed to enumerate fingerprint readers: boom",
		NewDeviceAccessError("Failed to enumerate fingerprint readers", errors.New("boom")).Error())
}

func TestErrorPredicatesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("capture: %w", NewReaderNotReadyError(sdk.StatusFailure))

	assert.True(t, IsReaderNotReady(wrapped))
	assert.False(t, IsNoDevice(wrapped))
	assert.False(t, IsDeviceAccess(wrapped))
	assert.Equal(t, ErrCodeReaderNotReady, CodeOf(wrapped))

	var se *Error
	assert.ErrorAs(t, wrapped, &se)
	assert.Equal(t, sdk.StatusFailure, se.Status)
}

func TestCodeOfForeignError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}

func TestDeviceAccessUnwraps(t *testing.T) {
	root := errors.New("driver missing")
	err := NewDeviceAccessError("Failed", root)
	assert.ErrorIs(t, err, root)
}
