// Package wire is the JSON boundary of pathgrid.
//
// A Request carries the raw query (grid size, row-major penalty map or 2D
// rows, start and destination as [x, y] pairs). A Response carries the outcome
// in a fixed envelope:
//
//	{"status":"ok","comment":"[OK] cost=0.5","path":{"steps":[{"x":1,"y":1}, ...]}}
//	{"status":"error","comment":"[ERROR] StartEqEnd","path":{"steps":[]}}
//
// Validation failures use the bare playfield.MapErrorKind name in the comment.
// Undecodable requests report "[ERROR] BadRequest"; anything else reports
// "[ERROR] Internal".
//
// CalculateShortestPath is the one-call form that takes raw arguments and
// returns the serialized Response.
package wire
