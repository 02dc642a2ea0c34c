// Package pathgrid finds cheapest orthogonal routes across weighted 2D grids.
//
// A grid is W×H cells stored row-major. Every cell carries a non-negative
// penalty, and stepping into a cell costs that penalty whatever the direction
// of travel. The start cell itself is free. Moves go left, right, up or down.
//
// Layout:
//
//	playfield/    validated grid state: cells, bounds, offsets, frontier scan, path gluing
//	pathfinder/   the search engine (overwrite or strict relaxation) and ComputeShortestPath
//	dijkstra/     heap-based single-source distances over a playfield
//	wire/         JSON Request/Response envelope and CalculateShortestPath
//	config/       environment and flag configuration
//	server/       HTTP and websocket front end
//	cmd/          pathgrid (one-shot CLI) and pathgrid-server
//
// Quick example:
//
//	path, err := pathfinder.ComputeShortestPath(3, 2,
//	    []float64{
//	        1, 9, 1,
//	        1, 1, 1,
//	    },
//	    [2]int{0, 0}, [2]int{2, 0})
//	// path: (0,0)->(0,1)->(1,1)->(2,1)->(2,0)
//
// Invalid input never panics: it comes back as a *playfield.MapError whose Kind
// names the first rule violated (TooBig, SizeMismatch, StartEqEnd,
// StartOutOfBounds, DestinationOutOfBounds, InvalidPenalty).
package pathgrid
