package tabula

import (
	"errors"
	"fmt"

	"github.com/hupe1980/tabula/sequence"
)

// Error kinds shared with package sequence. Test them with errors.Is.
var (
	ErrShapeMismatch      = sequence.ErrShapeMismatch
	ErrKeyNotFound        = sequence.ErrKeyNotFound
	ErrAmbiguousIndex     = sequence.ErrAmbiguousIndex
	ErrImmutable          = sequence.ErrImmutable
	ErrReindexUnsupported = sequence.ErrReindexUnsupported
	ErrDuplicateLabel     = sequence.ErrDuplicateLabel
	ErrInvalidSlice       = sequence.ErrInvalidSlice
)

var (
	// ErrInvalidJoinSpec is returned when merge arguments do not describe a
	// valid join.
	ErrInvalidJoinSpec = errors.New("invalid join spec")

	// ErrInvalidSelector is returned for a selector the operation cannot use.
	ErrInvalidSelector = errors.New("invalid selector")
)

// JoinSpecError describes why merge arguments were rejected.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type JoinSpecError struct {
	Reason string
	cause  error
}

func (e *JoinSpecError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid join spec: %s: %v", e.Reason, e.cause)
	}
	return "invalid join spec: " + e.Reason
}

func (e *JoinSpecError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrInvalidJoinSpec, e.cause}
	}
	return []error{ErrInvalidJoinSpec}
}

func joinSpecErrorf(cause error, format string, args ...any) error {
	return &JoinSpecError{Reason: fmt.Sprintf(format, args...), cause: cause}
}
