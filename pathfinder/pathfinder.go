package pathfinder

import (
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/pathgrid/playfield"
)

type state int

const (
	stateSearching state = iota
	stateDone
)

type candidateStatus int

const (
	stillLooking candidateStatus = iota
	atDestination
)

// Pathfinder holds the mutable state of a single search over one Playfield.
type Pathfinder struct {
	field    *playfield.Playfield // released once the search is done
	options  Options
	state    state
	current  playfield.Cell // cell being settled
	path     playfield.Path
	cost     float64
	expanded int
}

// New prepares a search over pf. The Pathfinder takes ownership of pf's search
// state until Calculate returns; pf must not be shared with another query meanwhile.
func New(pf *playfield.Playfield, opts ...Option) *Pathfinder {
	return newPathfinder(pf, buildOptions(opts))
}

func newPathfinder(pf *playfield.Playfield, cfg Options) *Pathfinder {
	return &Pathfinder{
		field:   pf,
		options: cfg,
		state:   stateSearching,
	}
}

// Calculate runs the search to completion and returns the path.
//
// Panics with ErrUnreachable if the frontier empties before the destination is
// found, and with ErrSpent if called again after a completed search.
// Complexity: O((W×H)²) time in the worst case, O(L) extra memory for a path of L steps.
func (p *Pathfinder) Calculate() Result {
	if p.state == stateDone {
		panic(ErrSpent.Error())
	}
	log := p.options.Logger.WithFields(logrus.Fields{
		"start":       p.field.Start().String(),
		"destination": p.field.Destination().String(),
		"relaxation":  p.options.Relaxation.String(),
	})
	log.Debug("search started")

	for p.state == stateSearching {
		p.step()
	}

	log.WithFields(logrus.Fields{
		"expanded": p.expanded,
		"steps":    p.path.Len(),
		"cost":     p.cost,
	}).Debug("search finished")

	return Result{Path: p.path, Cost: p.cost, Expanded: p.expanded}
}

// step settles the nearest unvisited cell and relaxes its neighbors.
func (p *Pathfinder) step() {
	pos, ok := p.field.FindShortestDistance()
	if !ok {
		panic(ErrUnreachable.Error())
	}
	p.current = p.field.FieldAt(pos)
	p.field.SetVisited(pos)
	p.expanded++

	if p.options.Relaxation == RelaxStrict && pos == p.field.Destination() {
		p.finish(p.current)
		return
	}

	for _, offset := range playfield.Offsets {
		next, err := p.field.ApplyOffset(pos, offset)
		if err != nil {
			continue // out of map
		}
		if p.applyCandidate(next) == atDestination {
			p.finish(p.field.FieldAt(next))
			return
		}
	}
}

// applyCandidate relaxes the neighbor at point through the current cell.
func (p *Pathfinder) applyCandidate(point playfield.Point) candidateStatus {
	candidate := p.field.FieldAt(point)
	if !candidate.Visited {
		distance := p.current.Distance + candidate.Penalty
		// An unreached cell always takes the first route, even one whose
		// distance saturates at Infinity or overflows to +Inf.
		if p.options.Relaxation == RelaxOverwrite || candidate.Predecessor == nil || distance < candidate.Distance {
			from := p.current.Position
			candidate.Distance = distance
			candidate.Predecessor = &from
			p.field.SetFieldAt(point, candidate)
		}
	}
	if p.options.Relaxation == RelaxOverwrite && point == p.field.Destination() {
		return atDestination
	}
	return stillLooking
}

// finish reconstructs the path ending at destination and releases the grid.
func (p *Pathfinder) finish(destination playfield.Cell) {
	p.field.GluePathToDestination(destination, &p.path)
	p.cost = destination.Distance
	p.field = nil
	p.state = stateDone
}
