package resultclient

import (
	"fmt"

	"soundsphere/internal/domain"
)

// ErrorKind classifies analysis failures.
type ErrorKind string

const (
	// KindTransport means the service could not be reached.
	KindTransport ErrorKind = "transport"
	// KindService means the service answered but not with a usable result.
	KindService ErrorKind = "service"
)

// AnalysisError is returned by Client.Analyze. Message is safe to show to users.
type AnalysisError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Code maps the failure kind to the code surfaced to the UI.
func (e *AnalysisError) Code() domain.ErrorCode {
	if e.Kind == KindTransport {
		return domain.ErrorCodeTransport
	}
	return domain.ErrorCodeService
}

func transportError(err error) *AnalysisError {
	return &AnalysisError{
		Kind:    KindTransport,
		Message: fmt.Sprintf("analysis service unreachable: %v", err),
		Err:     err,
	}
}

func statusError(status int, detail string) *AnalysisError {
	msg := fmt.Sprintf("analysis service returned status %d", status)
	if detail != "" {
		msg += ": " + detail
	}
	return &AnalysisError{Kind: KindService, StatusCode: status, Message: msg}
}

func schemaError(status int, err error) *AnalysisError {
	return &AnalysisError{
		Kind:       KindService,
		StatusCode: status,
		Message:    fmt.Sprintf("analysis response did not match the expected schema: %v", err),
		Err:        err,
	}
}
