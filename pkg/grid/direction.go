package grid

import "fmt"

// Direction is one of the four axis-aligned moves between neighbouring cells.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// offsets maps each Direction to its (dx, dy) coordinate delta.
var offsets = [...][2]int{
	North: {0, -1},
	East:  {1, 0},
	South: {0, 1},
	West:  {-1, 0},
}

var directionNames = [...]string{
	North: "north",
	East:  "east",
	South: "south",
	West:  "west",
}

// Directions returns all four directions in clockwise order starting at North.
func Directions() []Direction {
	return []Direction{North, East, South, West}
}

// Offset returns the coordinate delta for d.
func (d Direction) Offset() (dx, dy int) {
	o := offsets[d]
	return o[0], o[1]
}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Valid reports whether d is one of the four defined directions.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}
