// Package dijkstra computes reference single-source distances over a
// playfield.Playfield with a binary-heap priority queue.
//
// Overview:
//
//   - The cost model matches the pathfinder: stepping into a cell costs that
//     cell's penalty, whatever the direction of travel.
//   - Distances explores the whole grid (or up to MaxDistance) from the grid's
//     start, or from the cell chosen with WithSource.
//   - The Playfield is only read; its search state is never touched, so the
//     oracle can run before or after a pathfinder query on the same grid.
//
// When to use:
//
//   - To verify that a path found by the pathfinder package is optimal.
//   - To precompute a full cost-to-go field (e.g. flow fields for many agents
//     heading to the same target).
//
// Performance and complexity:
//
//   - Time:  O(N log N) with N = W×H (each cell has at most 4 neighbors).
//   - Space: O(N) for distance and predecessor slices, O(4N) worst-case heap
//     entries under the lazy decrease-key strategy.
//
// Error handling (sentinel errors):
//
//   - ErrNilPlayfield:      Distances was called with a nil grid.
//   - ErrSourceOutOfBounds: WithSource named a cell outside the grid.
//   - ErrNoPath:            PathTo was asked for a cell not reached from the source.
//   - ErrBadMaxDistance:    (panic) WithMaxDistance received a negative or NaN value.
//
// Thread safety:
//
//   - Distances only reads the Playfield; concurrent calls on the same grid are
//     safe as long as nothing mutates it meanwhile.
package dijkstra
