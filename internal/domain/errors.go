package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrNotOwner        = errors.New("job is not owned by this worker")
	ErrCorruptArtifact = errors.New("artifact failed integrity check")
	ErrInvalidKey      = errors.New("invalid storage key")
	// ErrTimeout is returned by subprocess runners when the wall-clock bound is exceeded.
	ErrTimeout = errors.New("subprocess timed out")
)

type ErrorKind string

const (
	KindInvalidRequest    ErrorKind = "InvalidRequest"
	KindSourceUnavailable ErrorKind = "SourceUnavailable"
	KindResolutionFailed  ErrorKind = "ResolutionFailed"
	KindFormatUnavailable ErrorKind = "FormatUnavailable"
	KindDownloadFailed    ErrorKind = "DownloadFailed"
	KindEncodeFailed      ErrorKind = "EncodeFailed"
	KindEmptyOutput       ErrorKind = "EmptyOutput"
	KindDurationMismatch  ErrorKind = "DurationMismatch"
	KindTimeout           ErrorKind = "Timeout"
	KindStorageFailure    ErrorKind = "StorageFailure"
	KindWorkerLost        ErrorKind = "WorkerLost"
)

var knownKinds = map[ErrorKind]bool{
	KindInvalidRequest:    true,
	KindSourceUnavailable: true,
	KindResolutionFailed:  true,
	KindFormatUnavailable: true,
	KindDownloadFailed:    true,
	KindEncodeFailed:      true,
	KindEmptyOutput:       true,
	KindDurationMismatch:  true,
	KindTimeout:           true,
	KindStorageFailure:    true,
	KindWorkerLost:        true,
}

func (k ErrorKind) Valid() bool {
	return knownKinds[k]
}

// maxDetailLength bounds the diagnostic text kept on a job record.
const maxDetailLength = 1024

// JobError is the only error shape that is ever written to a job record.
type JobError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	cause   error
}

func NewJobError(kind ErrorKind, message string) *JobError {
	return &JobError{Kind: kind, Message: message}
}

// WrapJobError classifies err under kind, keeping the tail of detail as diagnostic text.
func WrapJobError(kind ErrorKind, err error, detail string) *JobError {
	msg := string(kind)
	if err != nil {
		msg = err.Error()
	}
	return &JobError{
		Kind:    kind,
		Message: msg,
		Detail:  tail(detail, maxDetailLength),
		cause:   err,
	}
}

func (e *JobError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *JobError) Unwrap() error {
	return e.cause
}

// Is matches another *JobError by kind, so errors.Is(err, &JobError{Kind: KindTimeout}) works.
func (e *JobError) Is(target error) bool {
	t, ok := target.(*JobError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *JobError in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var je *JobError
	if errors.As(err, &je) {
		return je.Kind
	}
	return ""
}

// Classify converts any error into a *JobError. Existing job errors are kept as they are,
// deadline errors become Timeout, everything else becomes fallback.
func Classify(err error, fallback ErrorKind) *JobError {
	if err == nil {
		return nil
	}
	var je *JobError
	if errors.As(err, &je) {
		return je
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return WrapJobError(KindTimeout, err, "")
	}
	return WrapJobError(fallback, err, "")
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := len(s) - n
	// step forward to a rune boundary
	for cut < len(s) && s[cut]&0xC0 == 0x80 {
		cut++
	}
	return "..." + s[cut:]
}
