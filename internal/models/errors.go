package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrInvalidConfig ErrorType = iota
	ErrInputSource
	ErrReportWrite
	ErrDelivery
	ErrSigning
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrInputSource:
		return "InputSource"
	case ErrReportWrite:
		return "ReportWrite"
	case ErrDelivery:
		return "Delivery"
	case ErrSigning:
		return "Signing"
	default:
		return "Unknown"
	}
}

// AuditError represents an error during an upgrade audit run
type AuditError struct {
	Type    ErrorType
	Package string
	Err     error
}

// Error implements the error interface
func (e *AuditError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Package, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *AuditError) Unwrap() error {
	return e.Err
}
