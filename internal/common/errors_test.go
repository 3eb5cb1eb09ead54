package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppError_IsMatchesCodeSentinel(t *testing.T) {
	err := NewAppError(CodeDecodeFailure, MsgDecodeFailure, errors.New("exit status 1"))
	require.ErrorIs(t, err, ErrDecodeFailure)
	require.NotErrorIs(t, err, ErrTransport)

	wrapped := fmt.Errorf("extract: %w", NewAppError(CodeTransport, MsgTransport, nil))
	require.ErrorIs(t, wrapped, ErrTransport)

	require.NotErrorIs(t, NewAppError("CONFIG_ERROR", "x", nil), ErrInvalidInput)
	require.ErrorIs(t, NewAppError("CONFIG_ERROR", "x", ErrInvalidInput), ErrInvalidInput)
}

func TestAppError_Error(t *testing.T) {
	require.Equal(t, "EMPTY_RESULT: none", NewAppError(CodeEmptyResult, "none", nil).Error())
	require.Equal(t, "TRANSPORT_FAILURE: down: eof", NewAppError(CodeTransport, "down", errors.New("eof")).Error())
}

func TestUserMessage(t *testing.T) {
	require.Empty(t, UserMessage(nil))
	require.Equal(t, MsgRejected, UserMessage(fmt.Errorf("x: %w", NewAppError(CodeRejected, MsgRejected, nil))))
	require.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestValidator(t *testing.T) {
	v := NewValidator().
		Field("image_data", "", Required, Base64).
		Field("mime_type", "text/plain", Required, ImageMIME).
		Field("card_type", "pan_card", OneOf("pan_card"))
	require.True(t, v.HasErrors())
	require.Len(t, v.Errors(), 2)
	require.Equal(t, "image_data", v.Errors()[0].Field)
	require.Contains(t, v.ErrorMessage(), "is required")
	require.Contains(t, v.ErrorMessage(), "must be an image/* content type")

	err := ValidateAndReturnError(v)
	require.ErrorIs(t, err, ErrInvalidInput)

	ok := NewValidator().Field("image_data", "QUJD", Required, Base64)
	require.NoError(t, ok.Error())
	require.NoError(t, ValidateAndReturnError(ok))

	bad := NewValidator().Field("image_data", "not base64!", Base64)
	require.Error(t, bad.Error())
}
