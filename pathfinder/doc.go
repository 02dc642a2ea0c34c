// Package pathfinder finds the cheapest orthogonal route between the start and
// destination of a playfield.Playfield.
//
// The engine is a Dijkstra-style search with a naive frontier: every iteration
// scans the grid for the unvisited cell with the smallest tentative distance,
// settles it, and relaxes its four neighbors. Entering a cell costs that cell's
// penalty. Once the destination is reached the predecessor links are walked back
// into a playfield.Path.
//
// Relaxation modes:
//
//   - RelaxOverwrite (default): every unvisited neighbor of the settled cell is
//     overwritten with the route through it, and the search stops as soon as the
//     destination is seen as a neighbor.
//   - RelaxStrict: a neighbor is only updated when the new route is strictly
//     cheaper, and the search stops once the destination itself is settled.
//     The returned path is always a cheapest one.
//
// Each query runs synchronously to completion in at most W×H iterations. A
// Pathfinder owns its Playfield for the duration of Calculate and releases it
// afterwards; independent queries share no state and may run in parallel.
//
// Compute and ComputeShortestPath validate raw inputs into a Playfield and run
// the engine in one call; validation failures are returned as *playfield.MapError.
package pathfinder
