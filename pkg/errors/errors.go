// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Input validation errors
var (
	ErrInvalidAmount          = errors.New("amount is not a valid number")
	ErrNonPositiveAmount      = errors.New("amount must be greater than zero")
	ErrInvalidRate            = errors.New("conversion rate must be greater than zero")
	ErrRateNotEditable        = errors.New("conversion rate is fixed")
	ErrInvalidCurrency        = errors.New("unknown currency")
	ErrQuickAmountUnavailable = errors.New("quick amount not available")
	ErrPaymentNotFound        = errors.New("payment not found")

	// Console errors
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
