package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents fetch/network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeExtraction represents price extraction failures
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeParse represents numeric parsing errors, including ambiguous separators
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeState represents state store errors
	ErrorTypeState ErrorType = "state"
	// ErrorTypeNotifier represents notifier-related errors
	ErrorTypeNotifier ErrorType = "notifier"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// TrackerError represents a tracker-specific error
type TrackerError struct {
	Type    ErrorType
	Target  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *TrackerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Target, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Target, e.Message)
}

// Unwrap returns the underlying error
func (e *TrackerError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *TrackerError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNetwork:
		return true
	case ErrorTypeRateLimit:
		return false
	case ErrorTypeExtraction, ErrorTypeParse:
		return false
	default:
		return false
	}
}

// New creates a new TrackerError
func New(errType ErrorType, target, message string, err error) *TrackerError {
	return &TrackerError{
		Type:    errType,
		Target:  target,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(target, message string, err error) *TrackerError {
	return New(ErrorTypeNetwork, target, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(target string, duration time.Duration) *TrackerError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, target, message, nil)
}

// NewExtraction creates a new extraction error
func NewExtraction(target, message string, err error) *TrackerError {
	return New(ErrorTypeExtraction, target, message, err)
}

// NewParse creates a new parse error
func NewParse(target, message string, err error) *TrackerError {
	return New(ErrorTypeParse, target, message, err)
}

// NewState creates a new state store error
func NewState(target, message string, err error) *TrackerError {
	return New(ErrorTypeState, target, message, err)
}

// NewNotifier creates a new notifier error
func NewNotifier(target, message string, err error) *TrackerError {
	return New(ErrorTypeNotifier, target, message, err)
}

// NewValidation creates a new validation error
func NewValidation(target, message string) *TrackerError {
	return New(ErrorTypeValidation, target, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *TrackerError {
	return New(ErrorTypeConfiguration, "", message, err)
}
