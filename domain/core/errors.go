package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Contract violations (fail fast)
	ErrInvalidSelection = errors.New("invalid selection")
	ErrUnknownField     = fmt.Errorf("%w: unknown field", ErrInvalidSelection)
	ErrRoleMismatch     = fmt.Errorf("%w: field not allowed in role", ErrInvalidSelection)
	ErrSlotOutOfRange   = fmt.Errorf("%w: slot index out of range", ErrInvalidSelection)
	ErrUnknownSection   = errors.New("unknown section")
	ErrUnknownRole      = errors.New("unknown role")

	// Business-rule conditions (recovered into undefined results)
	ErrInsufficientData   = errors.New("insufficient data for analysis")
	ErrUndefinedStatistic = errors.New("statistic undefined")
	ErrDegenerateRange    = errors.New("degenerate value range")

	// Ingestion errors
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidRecord = errors.New("invalid record")
)

// Error constructors with context
func NewSelectionError(cause error, detail string) error {
	return fmt.Errorf("%w: %s", cause, detail)
}

func NewRecordError(field string, reason string) error {
	return fmt.Errorf("%w: field %s: %s", ErrInvalidRecord, field, reason)
}

// Error checking helpers
func IsSelectionError(err error) bool {
	return errors.Is(err, ErrInvalidSelection)
}
