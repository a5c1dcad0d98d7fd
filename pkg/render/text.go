package render

import (
	"strings"

	"github.com/matzehuels/labyrinth/pkg/grid"
)

// Text renders g as ASCII art. A 1x1 grid renders as "+---+\n|   |\n+---+".
func Text(g *grid.Grid) string {
	var b strings.Builder
	for _, row := range g.Rows() {
		for _, c := range row {
			b.WriteString("+")
			if g.IsLinked(c, grid.North) {
				b.WriteString("   ")
			} else {
				b.WriteString("---")
			}
		}
		b.WriteString("+\n")

		for _, c := range row {
			if g.IsLinked(c, grid.West) {
				b.WriteString(" ")
			} else {
				b.WriteString("|")
			}
			b.WriteString("   ")
		}
		b.WriteString("|\n")
	}

	b.WriteString(strings.Repeat("+---", g.Width()))
	b.WriteString("+")
	return b.String()
}
