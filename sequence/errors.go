package sequence

import (
	"errors"
	"fmt"

	"github.com/hupe1980/tabula/value"
)

var (
	// ErrShapeMismatch is returned when lengths that must agree do not.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrKeyNotFound is returned when a key or position cannot be resolved.
	ErrKeyNotFound = errors.New("key not found")

	// ErrAmbiguousIndex is returned when a list of selectors mixes keys and positions.
	ErrAmbiguousIndex = errors.New("ambiguous index")

	// ErrImmutable is returned by every attempt to assign into an existing sequence.
	ErrImmutable = errors.New("immutable")

	// ErrReindexUnsupported is returned when reindexing non-scalar elements.
	ErrReindexUnsupported = errors.New("reindex unsupported")

	// ErrDuplicateLabel is returned when keys are not unique.
	ErrDuplicateLabel = errors.New("duplicate label")

	// ErrInvalidSlice is returned for a zero slice step.
	ErrInvalidSlice = errors.New("invalid slice")
)

// KeyError reports a key or position that could not be resolved.
type KeyError struct {
	Key      value.Value
	Position bool
}

func (e *KeyError) Error() string {
	if e.Position {
		return fmt.Sprintf("position %s out of range", e.Key)
	}
	return fmt.Sprintf("key not found: %s", e.Key)
}

func (e *KeyError) Unwrap() error { return ErrKeyNotFound }

// ShapeError reports a length mismatch.
type ShapeError struct {
	What     string
	Expected int
	Actual   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch: %s: expected %d, got %d", e.What, e.Expected, e.Actual)
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }

// MutationError reports an attempted in-place assignment.
type MutationError struct {
	Key value.Value
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("cannot assign to %s: values can not be modified directly, derive a new sequence with With", e.Key)
}

func (e *MutationError) Unwrap() error { return ErrImmutable }

// DuplicateError reports a repeated key.
type DuplicateError struct {
	Key value.Value
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate label: %s", e.Key)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicateLabel }
