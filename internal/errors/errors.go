// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMarketNotFound    = errors.New("market not found")
	ErrTradeNotFound     = errors.New("trade not found")
	ErrAlreadyResolved   = errors.New("trade already resolved")
	ErrNetworkFailure    = errors.New("network failure")
	ErrMalformedPrices   = errors.New("malformed price data")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDatabaseError     = errors.New("database error")
)

// FeedError represents an error from the market data feed.
type FeedError struct {
	Endpoint string
	Slug     string
	Status   int
	Err      error
}

func (e *FeedError) Error() string {
	if e.Slug != "" {
		return fmt.Sprintf("feed error [%s] slug=%s: %v", e.Endpoint, e.Slug, e.Err)
	}
	return fmt.Sprintf("feed error [%s]: %v", e.Endpoint, e.Err)
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

// NewFeedError creates a new FeedError.
func NewFeedError(endpoint, slug string, status int, err error) *FeedError {
	return &FeedError{
		Endpoint: endpoint,
		Slug:     slug,
		Status:   status,
		Err:      err,
	}
}

// LedgerError represents an error from a ledger operation.
type LedgerError struct {
	Operation string
	TradeID   int64
	Err       error
}

func (e *LedgerError) Error() string {
	if e.TradeID > 0 {
		return fmt.Sprintf("ledger error [%s] trade #%d: %v", e.Operation, e.TradeID, e.Err)
	}
	return fmt.Sprintf("ledger error [%s]: %v", e.Operation, e.Err)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError.
func NewLedgerError(operation string, tradeID int64, err error) *LedgerError {
	return &LedgerError{
		Operation: operation,
		TradeID:   tradeID,
		Err:       err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
