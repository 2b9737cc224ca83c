package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a failure. Only the HTTP layer turns a Kind into a status code.
type Kind uint8

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindConfiguration
	KindTranscriptsDisabled
	KindSourceUnavailable
	KindEmptyResult
	KindSummarization
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindConfiguration:
		return "configuration"
	case KindTranscriptsDisabled:
		return "transcripts_disabled"
	case KindSourceUnavailable:
		return "source_unavailable"
	case KindEmptyResult:
		return "empty_result"
	case KindSummarization:
		return "summarization"
	default:
		return "internal"
	}
}

type AppError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	VideoID string `json:"videoId,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Details returns the underlying cause message, if any.
func (e *AppError) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func E(kind Kind, op string, err error, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func InvalidInput(op string, err error, message string) *AppError {
	return E(KindInvalidInput, op, err, message)
}

func Configuration(op string, err error, message string) *AppError {
	return E(KindConfiguration, op, err, message)
}

func TranscriptsDisabled(op string, err error, message string) *AppError {
	return E(KindTranscriptsDisabled, op, err, message)
}

func SourceUnavailable(op string, err error, message string) *AppError {
	return E(KindSourceUnavailable, op, err, message)
}

func EmptyResult(op string, err error, message string) *AppError {
	return E(KindEmptyResult, op, err, message)
}

func Summarization(op string, err error, message string) *AppError {
	return E(KindSummarization, op, err, message)
}

func Internal(op string, err error, message string) *AppError {
	return E(KindInternal, op, err, message)
}

// WithVideoID attaches a video id to err. Plain errors are wrapped as Internal.
func WithVideoID(err error, videoID string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if pkgerrors.As(err, &appErr) {
		cp := *appErr
		cp.VideoID = videoID
		return &cp
	}
	return &AppError{
		Kind:    KindInternal,
		Message: "Internal server error",
		VideoID: videoID,
		Err:     err,
	}
}

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if pkgerrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the Kind of the first AppError in err's chain.
func KindOf(err error) Kind {
	var appErr *AppError
	if pkgerrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

func IsTranscriptsDisabled(err error) bool {
	return Is(err, KindTranscriptsDisabled)
}
