package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The menu layer maps these to user-facing messages and keeps prompting.
var (
	ErrInsufficientFunds  = errors.New("insufficient_funds")
	ErrInsufficientShares = errors.New("insufficient_shares")
	ErrSymbolNotFound     = errors.New("symbol_not_found")
	ErrAlertNotSupported  = errors.New("alert_not_supported")
)

// ValidationError represents a precondition failure on a trade request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
