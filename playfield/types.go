package playfield

import (
	"fmt"
	"math"
	"strings"
)

// Infinity is the distance of cells that were never relaxed. Reachability is
// tracked by Predecessor, not by this value; see Playfield.Reached.
const Infinity = math.MaxFloat64

// Default grid limits applied by New unless overridden with WithLimits.
const (
	DefaultMaxWidth  = 1024
	DefaultMaxHeight = 1024
)

// Point is an immutable grid coordinate. X grows to the right, Y grows down.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by o. The result is not bounds-checked.
func (p Point) Add(o Offset) Point {
	return Point{X: p.X + o.DX, Y: p.Y + o.DY}
}

// String renders p as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Offset is a relative step between neighboring cells.
type Offset struct {
	DX, DY int
}

// Offsets lists the four orthogonal moves in the order the search visits them:
// left, right, up, down.
var Offsets = [4]Offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Cell is the search state of a single grid position.
type Cell struct {
	Position    Point   // own coordinate
	Penalty     float64 // cost of entering this cell
	Visited     bool    // distance is settled
	Distance    float64 // tentative distance from start; Infinity if never relaxed
	Predecessor *Point  // previous cell on the best known path; nil for start and unrelaxed cells
}

// Path is an ordered sequence of coordinates from start to destination inclusive.
type Path struct {
	Steps []Point `json:"steps"`
}

// Len returns the number of steps, endpoints included.
func (p Path) Len() int { return len(p.Steps) }

// String renders the path as "(x,y)->(x,y)->...".
func (p Path) String() string {
	parts := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, "->")
}

// Limits bounds the grid dimensions accepted by New.
type Limits struct {
	MaxWidth  int
	MaxHeight int
}

// Options configures Playfield construction.
type Options struct {
	Limits Limits
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns Options with DefaultMaxWidth × DefaultMaxHeight limits.
func DefaultOptions() Options {
	return Options{
		Limits: Limits{MaxWidth: DefaultMaxWidth, MaxHeight: DefaultMaxHeight},
	}
}

// WithLimits overrides the maximum accepted width and height.
// Panics with ErrBadLimits if either value is not positive.
func WithLimits(l Limits) Option {
	if l.MaxWidth <= 0 || l.MaxHeight <= 0 {
		panic(ErrBadLimits.Error())
	}
	return func(o *Options) {
		o.Limits = l
	}
}
