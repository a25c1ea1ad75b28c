package entity

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownGrade is returned when a grade is outside the rate table
	ErrUnknownGrade = errors.New("unknown grade")

	// ErrInvalidDistance is returned for negative trip distances
	ErrInvalidDistance = errors.New("invalid distance")

	// ErrEmptyClaim is returned when a claim has no reimbursable line items
	ErrEmptyClaim = errors.New("claim has nothing to reimburse")

	// ErrInvalidSchedule is returned when a trip ends before it starts
	ErrInvalidSchedule = errors.New("trip end precedes trip start")

	// ErrNegativeAmount is returned for negative claimed amounts or counts
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrInvalidNights is returned for negative night counts
	ErrInvalidNights = errors.New("night count must not be negative")

	// ErrInvalidValue is returned when an enumerated value cannot be parsed
	ErrInvalidValue = errors.New("invalid value")
)

// UnknownGradeError identifies the grade that could not be resolved.
type UnknownGradeError struct {
	Grade string
}

func (e *UnknownGradeError) Error() string {
	return fmt.Sprintf("unknown grade %q", e.Grade)
}

func (e *UnknownGradeError) Unwrap() error {
	return ErrUnknownGrade
}

// InvalidDistanceError identifies the transport leg carrying a negative distance.
// Index is zero-based within the submitted transport list.
type InvalidDistanceError struct {
	Index       int
	Kind        string
	Description string
	DistanceKm  decimal.Decimal
}

func (e *InvalidDistanceError) Error() string {
	return fmt.Sprintf("transport leg %d (%s %q): distance %s km must not be negative",
		e.Index+1, e.Kind, e.Description, e.DistanceKm.String())
}

func (e *InvalidDistanceError) Unwrap() error {
	return ErrInvalidDistance
}
