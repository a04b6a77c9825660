package errs

import "net/http"

// StatusError is an error that already knows the HTTP status it should surface as.
type StatusError struct {
	Status  int
	Code    string
	Message string
	err     error
}

func NewStatusError(status int, code, message string, cause error) *StatusError {
	return &StatusError{Status: status, Code: code, Message: message, err: cause}
}

func (e *StatusError) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *StatusError) Unwrap() error {
	return e.err
}

func (e *StatusError) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}
