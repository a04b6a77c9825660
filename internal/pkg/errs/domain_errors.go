package errs

import "errors"

// Sentinels shared by the usecase and handler layers.
var (
	// Request payload does not match the expected shape
	ErrInvalidPayload = errors.New("invalid payload")

	// A computed business rule rejected the request (payment, totals, settlement outcome)
	ErrBusinessRule = errors.New("business rule violated")

	// The stored procedure ran but its effect could not be read back
	ErrWriteNotConfirmed = errors.New("write not confirmed")
)
