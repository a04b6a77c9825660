package usecase

import "kiosk-sales-api/internal/pkg/errs"

type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a client-side failure: either the payload does not match
// the expected shape (Issues set) or a business rule rejected it.
type ValidationError struct {
	kind   error
	msg    string
	Issues []Issue
}

func NewPayloadError(msg string, issues []Issue) *ValidationError {
	return &ValidationError{kind: errs.ErrInvalidPayload, msg: msg, Issues: issues}
}

func NewBusinessError(msg string) *ValidationError {
	return &ValidationError{kind: errs.ErrBusinessRule, msg: msg}
}

func (e *ValidationError) Error() string {
	return e.msg
}

func (e *ValidationError) Message() string {
	return e.msg
}

func (e *ValidationError) Is(target error) bool {
	return target == e.kind
}
