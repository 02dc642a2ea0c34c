package pathfinder

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/pathgrid/playfield"
)

var (
	// ErrUnreachable is the panic value when the frontier runs dry before the
	// destination is found. A connected grid never triggers it.
	ErrUnreachable = errors.New("pathfinder: destination unreachable from start")

	// ErrSpent is the panic value when Calculate is called twice on one Pathfinder.
	ErrSpent = errors.New("pathfinder: engine already produced its path")

	// ErrBadRelaxation indicates an unknown relaxation mode name.
	ErrBadRelaxation = errors.New("pathfinder: unknown relaxation mode")
)

// Relaxation selects how neighbor distances are updated.
type Relaxation int

const (
	// RelaxOverwrite overwrites unvisited neighbors unconditionally and stops at
	// the first sighting of the destination.
	RelaxOverwrite Relaxation = iota
	// RelaxStrict updates only on strict improvement and stops when the
	// destination is settled.
	RelaxStrict
)

// String returns "overwrite" or "strict".
func (r Relaxation) String() string {
	switch r {
	case RelaxOverwrite:
		return "overwrite"
	case RelaxStrict:
		return "strict"
	default:
		return fmt.Sprintf("Relaxation(%d)", int(r))
	}
}

// ParseRelaxation maps "overwrite" or "strict" (case-insensitive) to a Relaxation.
func ParseRelaxation(s string) (Relaxation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overwrite", "":
		return RelaxOverwrite, nil
	case "strict":
		return RelaxStrict, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadRelaxation, s)
}

// Result is the outcome of a completed search.
type Result struct {
	Path     playfield.Path // start..destination inclusive
	Cost     float64        // destination distance as computed by the search
	Expanded int            // number of settled cells
}

// Query bundles the raw inputs of one search.
type Query struct {
	Width, Height int
	Penalties     []float64 // row-major, len Width*Height
	Start         playfield.Point
	Destination   playfield.Point
}

// Options configures a search.
type Options struct {
	Relaxation Relaxation
	Logger     logrus.FieldLogger
	Limits     *playfield.Limits // nil keeps the playfield defaults
}

// Option is a functional option for New, Compute and ComputeShortestPath.
type Option func(*Options)

// WithRelaxation selects the relaxation mode.
// Panics with ErrBadRelaxation for values other than RelaxOverwrite and RelaxStrict.
func WithRelaxation(r Relaxation) Option {
	if r != RelaxOverwrite && r != RelaxStrict {
		panic(ErrBadRelaxation.Error())
	}
	return func(o *Options) {
		o.Relaxation = r
	}
}

// WithLogger routes per-query debug logging to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithLimits overrides the grid size limits used when Compute builds the playfield.
// Panics with playfield.ErrBadLimits for non-positive values.
func WithLimits(l playfield.Limits) Option {
	if l.MaxWidth <= 0 || l.MaxHeight <= 0 {
		panic(playfield.ErrBadLimits.Error())
	}
	return func(o *Options) {
		o.Limits = &l
	}
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// DefaultOptions returns overwrite relaxation, a discarding logger and default limits.
func DefaultOptions() Options {
	return Options{
		Relaxation: RelaxOverwrite,
		Logger:     discard,
	}
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (o Options) fieldOptions() []playfield.Option {
	if o.Limits == nil {
		return nil
	}
	return []playfield.Option{playfield.WithLimits(*o.Limits)}
}
