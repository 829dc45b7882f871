// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrAlreadyRun         = errors.New("settlement already completed for this date")
	ErrForcedRunThrottled = errors.New("forced settlement attempted before the minimum interval elapsed")
	ErrUserNotFound       = errors.New("user not found")
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrPositionNotFound   = errors.New("position not found")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	// Add more specific errors as needed
)

// IsError reports whether err wraps or equals the given sentinel error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
