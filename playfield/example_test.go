// File: playfield/example_test.go
package playfield_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pathgrid/playfield"
)

////////////////////////////////////////////////////////////////////////////////
// Example: New
////////////////////////////////////////////////////////////////////////////////

// ExampleNew builds a 3×2 grid from rows and walks the neighbors of a corner.
// Moves leaving the grid report ErrOutOfMap and are skipped.
//
// Complexity: O(W·H) construction, O(1) per offset.
func ExampleNew() {
	w, h, penalties, _ := playfield.FromRows([][]float64{
		{1, 2, 1},
		{1, 5, 1},
	})
	pf, err := playfield.New(w, h, playfield.Point{X: 0, Y: 0}, playfield.Point{X: 2, Y: 1}, penalties)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, off := range playfield.Offsets {
		next, err := pf.ApplyOffset(pf.Start(), off)
		if errors.Is(err, playfield.ErrOutOfMap) {
			continue
		}
		fmt.Printf("%v penalty=%.0f\n", next, pf.FieldAt(next).Penalty)
	}
	// Output:
	// (1,0) penalty=2
	// (0,1) penalty=1
}

////////////////////////////////////////////////////////////////////////////////
// Example: validation order
////////////////////////////////////////////////////////////////////////////////

// ExampleNew_validation shows that the first violated rule is reported,
// even when later rules are violated too.
func ExampleNew_validation() {
	_, err := playfield.New(3, 3, playfield.Point{X: 2, Y: 2}, playfield.Point{X: 2, Y: 2}, []float64{1, 1, 1, 1})
	fmt.Println(err)

	var me *playfield.MapError
	if errors.As(err, &me) {
		fmt.Println(me.Kind)
	}
	// Output:
	// playfield: SizeMismatch
	// SizeMismatch
}
