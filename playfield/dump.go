package playfield

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a diagnostic rendering of the grid to w.
//
// For every row it prints one line of cells as "<penalty><marker><visited>",
// where marker is S (start), D (destination) or '.', and visited is 1 or 0,
// followed by one line of tentative distances ("inf" for unreached cells) and a
// blank line. The last line names the current frontier minimum.
func (pf *Playfield) Dump(w io.Writer) error {
	_, err := io.WriteString(w, pf.String())
	return err
}

// String implements fmt.Stringer with the same layout as Dump.
func (pf *Playfield) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Start: %v   End: %v\n", pf.start, pf.destination)
	for y := 0; y < pf.height; y++ {
		for x := 0; x < pf.width; x++ {
			p := Point{X: x, Y: y}
			c := pf.cells[pf.ToIndex(p)]
			marker := '.'
			switch p {
			case pf.start:
				marker = 'S'
			case pf.destination:
				marker = 'D'
			}
			visited := '0'
			if c.Visited {
				visited = '1'
			}
			fmt.Fprintf(&b, "%5.2f %c%c  ", c.Penalty, marker, visited)
		}
		b.WriteByte('\n')
		for x := 0; x < pf.width; x++ {
			p := Point{X: x, Y: y}
			c := pf.cells[pf.ToIndex(p)]
			if !pf.Reached(p) {
				fmt.Fprintf(&b, "%8s ", "inf")
			} else {
				fmt.Fprintf(&b, "%8.2f ", c.Distance)
			}
		}
		b.WriteString("\n\n")
	}
	if p, ok := pf.FindShortestDistance(); ok {
		fmt.Fprintf(&b, "Shortest distance at: %v\n", p)
	} else {
		b.WriteString("Shortest distance at: none\n")
	}

	return b.String()
}
