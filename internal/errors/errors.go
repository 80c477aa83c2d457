// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrMarketNotFound      = errors.New("market not found")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidTime         = errors.New("invalid time")
	ErrUnknownTimezone     = errors.New("unknown timezone")
	ErrCalendarUnavailable = errors.New("calendar source unavailable")
	ErrOverrideNotFound    = errors.New("override not found")
	ErrIterationLimit      = errors.New("date iteration limit exceeded")
	ErrConfigInvalid       = errors.New("invalid configuration")
	ErrDataNotFound        = errors.New("data not found")
	ErrDatabaseError       = errors.New("database error")
)

// MarketError represents an error scoped to a single market.
type MarketError struct {
	MarketCode string
	Operation  string
	Err        error
}

func (e *MarketError) Error() string {
	return fmt.Sprintf("market error [%s] %s: %v", e.MarketCode, e.Operation, e.Err)
}

func (e *MarketError) Unwrap() error {
	return e.Err
}

// NewMarketError creates a new MarketError.
func NewMarketError(marketCode, operation string, err error) *MarketError {
	return &MarketError{
		MarketCode: marketCode,
		Operation:  operation,
		Err:        err,
	}
}

// CalendarError represents an error from a holiday or calendar source.
type CalendarError struct {
	Source     string
	MarketCode string
	Message    string
	Err        error
}

func (e *CalendarError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("calendar error [%s] %s: %s: %v", e.Source, e.MarketCode, e.Message, e.Err)
	}
	return fmt.Sprintf("calendar error [%s] %s: %s", e.Source, e.MarketCode, e.Message)
}

func (e *CalendarError) Unwrap() error {
	return e.Err
}

// NewCalendarError creates a new CalendarError.
func NewCalendarError(source, marketCode, message string, err error) *CalendarError {
	return &CalendarError{
		Source:     source,
		MarketCode: marketCode,
		Message:    message,
		Err:        err,
	}
}

// OverrideError represents a failure mutating the manual override store.
type OverrideError struct {
	MarketCode string
	Date       string
	Action     string
	Err        error
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("override error [%s %s] %s: %v", e.MarketCode, e.Date, e.Action, e.Err)
}

func (e *OverrideError) Unwrap() error {
	return e.Err
}

// NewOverrideError creates a new OverrideError.
func NewOverrideError(marketCode, date, action string, err error) *OverrideError {
	return &OverrideError{
		MarketCode: marketCode,
		Date:       date,
		Action:     action,
		Err:        err,
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
