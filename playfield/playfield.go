package playfield

import (
	"fmt"
	"math"
)

// Playfield is a validated W×H grid of cells plus the start and destination
// of one query. It exclusively owns its cells; no accessor exposes the backing slice.
type Playfield struct {
	width, height int
	cells         []Cell
	start         Point
	destination   Point
}

// New validates the query parameters and builds a fully initialised Playfield.
//
// Validation order (the first failing rule wins):
//  1. width > MaxWidth or height > MaxHeight  (ErrTooBig).
//  2. width*height != len(penalties)          (ErrSizeMismatch).
//  3. start == destination                    (ErrStartEqEnd).
//  4. start outside [0,width)×[0,height)      (ErrStartOutOfBounds).
//  5. destination outside the grid            (ErrDestinationOutOfBounds).
//  6. a penalty is negative, NaN or infinite  (ErrInvalidPenalty).
//
// The penalty map is copied; later changes to penalties do not affect the grid.
// Complexity: O(W×H) time and memory.
func New(width, height int, start, destination Point, penalties []float64, opts ...Option) (*Playfield, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if width > cfg.Limits.MaxWidth || height > cfg.Limits.MaxHeight {
		return nil, ErrTooBig
	}
	if width*height != len(penalties) {
		return nil, ErrSizeMismatch
	}
	if start == destination {
		return nil, ErrStartEqEnd
	}
	if !within(start, width, height) {
		return nil, ErrStartOutOfBounds
	}
	if !within(destination, width, height) {
		return nil, ErrDestinationOutOfBounds
	}
	for i, p := range penalties {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, &MapError{Kind: InvalidPenalty, Detail: fmt.Sprintf("index %d has penalty %v", i, p)}
		}
	}

	pf := &Playfield{
		width:       width,
		height:      height,
		cells:       make([]Cell, len(penalties)),
		start:       start,
		destination: destination,
	}
	for i, p := range penalties {
		pf.cells[i].Penalty = p
	}
	pf.Reset()

	return pf, nil
}

// within reports whether p lies in [0,width)×[0,height).
func within(p Point, width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Reset restores every cell to its freshly constructed search state:
// unvisited, Infinity distance, no predecessor, and distance 0 at the start.
// Penalties are untouched.
func (pf *Playfield) Reset() {
	for i := range pf.cells {
		pf.cells[i] = Cell{
			Position: pf.FromIndex(i),
			Penalty:  pf.cells[i].Penalty,
			Distance: Infinity,
		}
	}
	pf.cells[pf.ToIndex(pf.start)].Distance = 0
}

// Width returns the number of columns.
func (pf *Playfield) Width() int { return pf.width }

// Height returns the number of rows.
func (pf *Playfield) Height() int { return pf.height }

// Len returns the number of cells (Width*Height).
func (pf *Playfield) Len() int { return len(pf.cells) }

// Start returns the start coordinate.
func (pf *Playfield) Start() Point { return pf.start }

// Destination returns the destination coordinate.
func (pf *Playfield) Destination() Point { return pf.destination }

// InBounds reports whether p lies within the grid.
func (pf *Playfield) InBounds(p Point) bool {
	return within(p, pf.width, pf.height)
}

// ApplyOffset returns point shifted by offset, or ErrOutOfMap when the result
// leaves the grid. Row 0 and column 0 are regular in-bounds positions.
func (pf *Playfield) ApplyOffset(point Point, offset Offset) (Point, error) {
	next := point.Add(offset)
	if !pf.InBounds(next) {
		return Point{}, ErrOutOfMap
	}
	return next, nil
}

// ToIndex maps p to its row-major index y*width + x.
// Panics if p is outside the grid: every caller must hold a coordinate that was
// validated by New or produced by ApplyOffset.
func (pf *Playfield) ToIndex(p Point) int {
	if p.X < 0 || p.Y < 0 {
		panic(fmt.Sprintf("playfield: referencing cell with negative coordinates %v", p))
	}
	if p.X >= pf.width || p.Y >= pf.height {
		panic(fmt.Sprintf("playfield: referencing cell %v beyond the map boundaries, maximum indices (%d,%d)",
			p, pf.width-1, pf.height-1))
	}
	return p.Y*pf.width + p.X
}

// FromIndex is the inverse of ToIndex.
func (pf *Playfield) FromIndex(i int) Point {
	y := i / pf.width
	return Point{X: i - y*pf.width, Y: y}
}

// FieldAt returns a copy of the cell at p.
func (pf *Playfield) FieldAt(p Point) Cell {
	return pf.cells[pf.ToIndex(p)]
}

// SetFieldAt replaces the cell at p.
func (pf *Playfield) SetFieldAt(p Point, c Cell) {
	pf.cells[pf.ToIndex(p)] = c
}

// SetVisited marks the cell at p as settled without touching its other fields.
func (pf *Playfield) SetVisited(p Point) {
	pf.cells[pf.ToIndex(p)].Visited = true
}

// Reached reports whether the cell at p is the start or has been relaxed at
// least once. Reachability does not depend on the distance value, so a cell
// whose distance overflowed to +Inf is still on the frontier.
func (pf *Playfield) Reached(p Point) bool {
	return p == pf.start || pf.cells[pf.ToIndex(p)].Predecessor != nil
}

// FindShortestDistance scans all cells and returns the reached, unvisited one
// with the smallest tentative distance. Ties go to the lowest row-major index.
// ok is false when no reached cell remains unvisited.
// Complexity: O(W×H).
func (pf *Playfield) FindShortestDistance() (p Point, ok bool) {
	startIdx := pf.ToIndex(pf.start)
	best := Infinity
	bestIdx := -1
	for i := range pf.cells {
		c := &pf.cells[i]
		if c.Visited || (i != startIdx && c.Predecessor == nil) {
			continue
		}
		if bestIdx < 0 || c.Distance < best {
			best = c.Distance
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return Point{}, false
	}
	return pf.FromIndex(bestIdx), true
}

// GluePathToDestination walks predecessor links back from c and prepends every
// position to path, so path.Steps ends up ordered from start to c.
// Panics if the predecessor chain is longer than the grid, which means it loops.
func (pf *Playfield) GluePathToDestination(c Cell, path *Path) {
	current := c.Position
	for n := 0; ; n++ {
		if n > len(pf.cells) {
			panic(fmt.Sprintf("playfield: predecessor chain from %v does not terminate", c.Position))
		}
		cell := pf.FieldAt(current)
		path.Steps = append([]Point{cell.Position}, path.Steps...)
		if cell.Predecessor == nil {
			return
		}
		current = *cell.Predecessor
	}
}

// PathCost sums the penalties of every step except the first: the cost of
// walking path on this grid.
func (pf *Playfield) PathCost(path Path) float64 {
	var total float64
	for i := 1; i < len(path.Steps); i++ {
		total += pf.FieldAt(path.Steps[i]).Penalty
	}
	return total
}
