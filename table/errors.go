package table

import (
	"errors"
	"fmt"
)

var (
	// ErrNoColumn is returned when a named column does not exist.
	ErrNoColumn = errors.New("table: no such column")
	// ErrNotNumeric is returned when arithmetic is requested on a
	// column that is not numeric, identifiers included.
	ErrNotNumeric = errors.New("table: column is not numeric")
	// ErrLength is returned when columns of different lengths are combined.
	ErrLength = errors.New("table: column length mismatch")
)

// KindError reports a column whose kind does not allow the operation.
type KindError struct {
	Column string
	Kind   Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("table: column %q is %s, not numeric", e.Column, e.Kind)
}

func (e *KindError) Is(target error) bool { return target == ErrNotNumeric }
