package apperrors

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteError_Unwrap(t *testing.T) {
	err := &RemoteError{Kind: ErrSubmitFailed, Op: "submit team", Err: io.ErrUnexpectedEOF}

	assert.True(t, errors.Is(err, ErrSubmitFailed))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.False(t, errors.Is(err, ErrLoadFailed))
}

func TestRemoteError_Message(t *testing.T) {
	err := &RemoteError{Kind: ErrSubmitFailed, Op: "submit team", StatusCode: 200, Message: "sheet locked"}

	assert.Equal(t, "submit team: failed to submit team (status 200): sheet locked", err.Error())
	assert.Equal(t, "sheet locked", RemoteMessage(err))
	assert.Equal(t, "", RemoteMessage(ErrSubmitFailed))
}

func TestIs(t *testing.T) {
	err := NewBadRequestError("bad level")

	assert.True(t, Is(err, ErrValidationFailed, ErrBadRequest))
	assert.False(t, Is(err, ErrValidationFailed, ErrResourceNotFound))
}
