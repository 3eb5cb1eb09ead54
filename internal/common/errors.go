package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel that corresponds to the error's code, so callers can
// test kinds with errors.Is whatever the underlying cause.
func (e *AppError) Is(target error) bool {
	s, ok := codeSentinels[e.Code]
	return ok && s == target
}

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrValidation   = errors.New("validation failed")

	ErrInvalidFileType    = errors.New("invalid file type")
	ErrDecodeFailure      = errors.New("image decode failed")
	ErrExtractionRejected = errors.New("extraction rejected")
	ErrTransport          = errors.New("transport failure")
	ErrEmptyResult        = errors.New("empty or unrecognized result")
)

// Error codes carried by AppError.
const (
	CodeInvalidFileType = "INVALID_FILE_TYPE"
	CodeDecodeFailure   = "DECODE_FAILURE"
	CodeRejected        = "EXTRACTION_REJECTED"
	CodeTransport       = "TRANSPORT_FAILURE"
	CodeEmptyResult     = "EMPTY_RESULT"
	CodeInvalidArgument = "INVALID_ARGUMENT"
)

var codeSentinels = map[string]error{
	CodeInvalidFileType: ErrInvalidFileType,
	CodeDecodeFailure:   ErrDecodeFailure,
	CodeRejected:        ErrExtractionRejected,
	CodeTransport:       ErrTransport,
	CodeEmptyResult:     ErrEmptyResult,
	CodeInvalidArgument: ErrInvalidInput,
}

// User-facing messages.
const (
	MsgInvalidFileType = "Please select a valid image file."
	MsgNoFileSelected  = "Please select an image file first."
	MsgDecodeFailure   = "Failed to read the selected image. Please choose another file."
	MsgRejected        = "Failed to extract information"
	MsgTransport       = "Failed to extract information from the image"
	MsgEmptyResult     = "No document information was found in the extraction result."
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// UserMessage turns any error into the single string shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
