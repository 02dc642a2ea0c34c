package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/pathgrid/playfield"
)

// Sentinel errors returned by Distances and PathTo.
var (
	// ErrNilPlayfield indicates that a nil *playfield.Playfield was passed to Distances.
	ErrNilPlayfield = errors.New("dijkstra: playfield is nil")

	// ErrSourceOutOfBounds indicates that WithSource named a cell outside the grid.
	ErrSourceOutOfBounds = errors.New("dijkstra: source lies outside the playfield")

	// ErrNoPath indicates that the requested target was not reached from the source.
	ErrNoPath = errors.New("dijkstra: target not reachable from source")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative or NaN value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")
)

// NoPredecessor marks prev entries of the source and of unreached cells.
const NoPredecessor = -1

// Options configures Distances.
//
// Source      – cell to measure from; defaults to the playfield's start.
// MaxDistance – cells farther than this are left unreached. Default +Inf.
type Options struct {
	Source      *playfield.Point
	MaxDistance float64
}

// Option represents a functional option for Distances.
type Option func(*Options)

// WithSource measures distances from p instead of the playfield's start.
func WithSource(p playfield.Point) Option {
	return func(o *Options) {
		o.Source = &p
	}
}

// WithMaxDistance stops exploration beyond max.
// Panics with ErrBadMaxDistance for a negative or NaN max.
func WithMaxDistance(max float64) Option {
	if max < 0 || math.IsNaN(max) {
		panic(ErrBadMaxDistance.Error())
	}
	return func(o *Options) {
		o.MaxDistance = max
	}
}

// DefaultOptions returns Options with no source override and no distance cap.
func DefaultOptions() Options {
	return Options{
		MaxDistance: math.Inf(1),
	}
}
