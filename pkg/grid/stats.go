package grid

// Stats summarises the shape of a maze by counting cells per link degree.
type Stats struct {
	Cells     int `json:"cells"`
	Links     int `json:"links"`      // Distinct passages
	DeadEnds  int `json:"dead_ends"`  // Cells with exactly one link
	Corridors int `json:"corridors"`  // Cells with exactly two links
	Junctions int `json:"junctions"`  // Cells with three or more links
	Isolated  int `json:"isolated"`   // Cells with no links
}

// Summarize computes Stats for g.
func Summarize(g *Grid) Stats {
	s := Stats{Cells: g.Size(), Links: g.LinkCount()}
	for _, adj := range g.links {
		switch len(adj) {
		case 0:
			s.Isolated++
		case 1:
			s.DeadEnds++
		case 2:
			s.Corridors++
		default:
			s.Junctions++
		}
	}
	return s
}
