package playfield

import (
	"errors"
	"fmt"
)

// MapErrorKind enumerates the validation failures reported by New.
type MapErrorKind int

const (
	// TooBig: width or height exceed the configured limits.
	TooBig MapErrorKind = iota + 1
	// SizeMismatch: width*height differs from the penalty map length.
	SizeMismatch
	// StartEqEnd: start and destination are the same cell.
	StartEqEnd
	// StartOutOfBounds: start lies outside the grid.
	StartOutOfBounds
	// DestinationOutOfBounds: destination lies outside the grid.
	DestinationOutOfBounds
	// InvalidPenalty: a penalty is negative, NaN or infinite.
	InvalidPenalty
)

var kindNames = map[MapErrorKind]string{
	TooBig:                 "TooBig",
	SizeMismatch:           "SizeMismatch",
	StartEqEnd:             "StartEqEnd",
	StartOutOfBounds:       "StartOutOfBounds",
	DestinationOutOfBounds: "DestinationOutOfBounds",
	InvalidPenalty:         "InvalidPenalty",
}

// String returns the bare kind name, e.g. "StartEqEnd".
func (k MapErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("MapErrorKind(%d)", int(k))
}

// MapError is the construction-time validation error returned by New.
// Two MapErrors match under errors.Is when their Kind is equal, so callers
// compare against the Err* sentinels regardless of Detail.
type MapError struct {
	Kind   MapErrorKind
	Detail string // optional context, e.g. the offending penalty index
}

// Error implements the error interface.
func (e *MapError) Error() string {
	if e.Detail == "" {
		return "playfield: " + e.Kind.String()
	}
	return "playfield: " + e.Kind.String() + ": " + e.Detail
}

// Is reports whether target is a *MapError of the same Kind.
func (e *MapError) Is(target error) bool {
	t, ok := target.(*MapError)
	return ok && t.Kind == e.Kind
}

// Sentinel validation errors, one per MapErrorKind.
var (
	ErrTooBig                 = &MapError{Kind: TooBig}
	ErrSizeMismatch           = &MapError{Kind: SizeMismatch}
	ErrStartEqEnd             = &MapError{Kind: StartEqEnd}
	ErrStartOutOfBounds       = &MapError{Kind: StartOutOfBounds}
	ErrDestinationOutOfBounds = &MapError{Kind: DestinationOutOfBounds}
	ErrInvalidPenalty         = &MapError{Kind: InvalidPenalty}
)

var (
	// ErrOutOfMap indicates that applying an offset left the grid.
	ErrOutOfMap = errors.New("playfield: offset leads out of map")

	// ErrEmptyGrid indicates a 2D penalty map with no rows or no columns.
	ErrEmptyGrid = errors.New("playfield: penalty rows must have at least one row and one column")

	// ErrNonRectangular indicates 2D penalty rows of differing lengths.
	ErrNonRectangular = errors.New("playfield: all penalty rows must have the same length")

	// ErrBadLimits indicates non-positive Limits passed to WithLimits.
	ErrBadLimits = errors.New("playfield: limits must be positive")
)
