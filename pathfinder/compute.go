package pathfinder

import (
	"github.com/katalvlaran/pathgrid/playfield"
)

// Compute validates q into a fresh Playfield and runs a search over it.
// Validation failures are returned as *playfield.MapError; the search itself
// never fails.
func Compute(q Query, opts ...Option) (Result, error) {
	cfg := buildOptions(opts)
	pf, err := playfield.New(q.Width, q.Height, q.Start, q.Destination, q.Penalties, cfg.fieldOptions()...)
	if err != nil {
		cfg.Logger.WithError(err).Debug("query rejected")
		return Result{}, err
	}
	return newPathfinder(pf, cfg).Calculate(), nil
}

// ComputeShortestPath returns the cheapest orthogonal path from start to
// destination across a width×height grid whose row-major penalties are given
// in penaltyMap. Coordinates are (x, y) pairs.
func ComputeShortestPath(width, height int, penaltyMap []float64, start, destination [2]int, opts ...Option) (playfield.Path, error) {
	res, err := Compute(Query{
		Width:       width,
		Height:      height,
		Penalties:   penaltyMap,
		Start:       playfield.Point{X: start[0], Y: start[1]},
		Destination: playfield.Point{X: destination[0], Y: destination[1]},
	}, opts...)
	if err != nil {
		return playfield.Path{}, err
	}
	return res.Path, nil
}
