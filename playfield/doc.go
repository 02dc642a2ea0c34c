// Package playfield models a rectangular grid of weighted cells together with
// the per-cell search state used by a single shortest-path query.
//
// What:
//
//   - Playfield owns a row-major slice of Cell values (index = y*width + x).
//   - Each Cell carries a non-negative Penalty: the cost of stepping into it.
//   - Search state (Visited, Distance, Predecessor) lives next to the penalty and
//     is mutated in place by the pathfinder package.
//   - Construction validates dimensions, map size, start and destination in a fixed
//     order, so the reported MapError is deterministic.
//
// Why:
//
//   - Grid maps for games, robots and terrain planners are naturally dense; a flat
//     slice with index arithmetic beats a generic vertex/edge graph in memory and speed.
//   - Keeping state beside the penalty makes frontier selection a single linear scan.
//
// Complexity:
//
//   - New:                  O(W×H) time and memory.
//   - ApplyOffset, ToIndex: O(1).
//   - FindShortestDistance: O(W×H) per call (naive frontier scan).
//   - GluePathToDestination: O(L²) for a path of L steps (prepend per step).
//
// Errors:
//
//   - ErrTooBig:                 width or height exceed the configured Limits.
//   - ErrSizeMismatch:           width*height differs from the penalty map length.
//   - ErrStartEqEnd:             start and destination are the same cell.
//   - ErrStartOutOfBounds:       start lies outside [0,width)×[0,height).
//   - ErrDestinationOutOfBounds: destination lies outside the grid.
//   - ErrInvalidPenalty:         a penalty is negative, NaN or infinite.
//   - ErrOutOfMap:               internal; an offset left the grid (callers skip the neighbor).
//
// Indexed access with an out-of-bounds coordinate is a contract violation and panics.
package playfield
