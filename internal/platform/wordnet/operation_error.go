package wordnet

import (
	"errors"
	"fmt"
)

type OperationErrorCode string

const (
	OperationErrorValidation  OperationErrorCode = "validation_failed"
	OperationErrorUnavailable OperationErrorCode = "lookup_unavailable"
	OperationErrorDecode      OperationErrorCode = "decode_failed"
	OperationErrorQuery       OperationErrorCode = "query_failed"
)

type OperationError struct {
	Code       OperationErrorCode
	Operation  string
	StatusCode int
	Message    string
	Cause      error
}

func (e *OperationError) Error() string {
	if e == nil {
		return "wordnet lookup failed"
	}
	if e.Message != "" {
		return fmt.Sprintf(
			"wordnet lookup failed (op=%s code=%s status=%d): %s",
			e.Operation, e.Code, e.StatusCode, e.Message,
		)
	}
	if e.Cause != nil {
		return fmt.Sprintf(
			"wordnet lookup failed (op=%s code=%s status=%d): %v",
			e.Operation, e.Code, e.StatusCode, e.Cause,
		)
	}
	return fmt.Sprintf(
		"wordnet lookup failed (op=%s code=%s status=%d)",
		e.Operation, e.Code, e.StatusCode,
	)
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// IsUnavailable reports whether err means the lookup service could not be
// reached at all, as opposed to answering with an error or an empty result.
func IsUnavailable(err error) bool {
	var opErr *OperationError
	return errors.As(err, &opErr) && opErr.Code == OperationErrorUnavailable
}
