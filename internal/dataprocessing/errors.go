package dataprocessing

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingDateColumn is returned when a monthly source has no date column
var ErrMissingDateColumn = errors.New("no date column")

// DateFormatError reports a date value that no candidate layout accepts
type DateFormatError struct {
	Value string
	Hint  DateHint
}

// Error implements the error interface
func (e *DateFormatError) Error() string {
	return fmt.Sprintf("date %q matches no %s layout", e.Value, e.Hint)
}

// ValueFormatError reports a cell that is neither numeric nor a missing marker
type ValueFormatError struct {
	Column string
	Value  string
}

// Error implements the error interface
func (e *ValueFormatError) Error() string {
	return fmt.Sprintf("column %s: value %q is not numeric", e.Column, e.Value)
}

// DuplicateDateError reports two rows of one source giving different values for a date
type DuplicateDateError struct {
	Source   string
	Variable string
	Date     time.Time
}

// Error implements the error interface
func (e *DuplicateDateError) Error() string {
	return fmt.Sprintf("%s: conflicting values for %s on %s", e.Source, e.Variable, e.Date.Format(DateLayout))
}

// ColumnCollisionError reports two sources claiming the same variable with
// different values for the same date. It is fatal for the group.
type ColumnCollisionError struct {
	Variable string
	Date     time.Time
	Existing string
	Incoming string
	Current  float64
	Proposed float64
}

// Error implements the error interface
func (e *ColumnCollisionError) Error() string {
	return fmt.Sprintf("variable %s on %s: %s has %v, %s has %v",
		e.Variable, e.Date.Format(DateLayout), e.Existing, e.Current, e.Incoming, e.Proposed)
}

// IsCollision reports whether err is or wraps a ColumnCollisionError
func IsCollision(err error) bool {
	var collision *ColumnCollisionError
	return errors.As(err, &collision)
}
