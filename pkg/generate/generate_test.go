package generate

import (
	"fmt"
	"slices"
	"testing"

	errs "github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/grid"
)

// fixedSource always returns the same value, clamped to the requested range.
type fixedSource int

func (f fixedSource) IntN(n int) int {
	return min(int(f), n-1)
}

var algorithmsUnderTest = map[string]Algorithm{
	"binary tree": BinaryTree,
	"sidewinder":  Sidewinder,
}

func TestDoesNothingOnEmptyGrid(t *testing.T) {
	for name, algo := range algorithmsUnderTest {
		t.Run(name, func(t *testing.T) {
			if g := algo(grid.New(0, 0), NewSource(1)); !g.Equal(grid.New(0, 0)) {
				t.Error("empty grid was modified")
			}
		})
	}
}

func TestDoesNothingOnSingletonGrid(t *testing.T) {
	for name, algo := range algorithmsUnderTest {
		t.Run(name, func(t *testing.T) {
			if g := algo(grid.New(1, 1), NewSource(1)); !g.Equal(grid.New(1, 1)) {
				t.Error("singleton grid was modified")
			}
		})
	}
}

func TestConnectsEveryCell(t *testing.T) {
	for name, algo := range algorithmsUnderTest {
		t.Run(name, func(t *testing.T) {
			g := algo(grid.New(20, 20), NewSource(7))
			for _, c := range g.Cells() {
				if len(g.Links(c)) == 0 {
					t.Errorf("cell %s has no links", c)
				}
			}
		})
	}
}

func TestProducesSpanningTree(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 5}, {5, 1}, {2, 2}, {3, 7}, {20, 8}, {31, 17}}

	for name, algo := range algorithmsUnderTest {
		for _, size := range sizes {
			for seed := uint64(0); seed < 5; seed++ {
				t.Run(fmt.Sprintf("%s/%dx%d/seed=%d", name, size[0], size[1], seed), func(t *testing.T) {
					g := algo(grid.New(size[0], size[1]), NewSource(seed))
					if got, want := g.LinkCount(), size[0]*size[1]-1; got != want {
						t.Errorf("LinkCount() = %d, want %d", got, want)
					}
					if err := grid.Verify(g); err != nil {
						t.Errorf("Verify() = %v", err)
					}
				})
			}
		}
	}
}

func TestDeterministicForSeed(t *testing.T) {
	for name, algo := range algorithmsUnderTest {
		t.Run(name, func(t *testing.T) {
			a := algo(grid.New(15, 10), NewSource(42))
			b := algo(grid.New(15, 10), NewSource(42))
			if !a.Equal(b) {
				t.Error("same seed produced different mazes")
			}
		})
	}
}

func TestBinaryTreeCorridors(t *testing.T) {
	g := BinaryTree(grid.New(10, 6), NewSource(3))

	for x := 0; x < g.Width()-1; x++ {
		if !g.IsLinked(grid.Cell{X: x, Y: 0}, grid.East) {
			t.Errorf("top row broken at x=%d", x)
		}
	}
	right := g.Width() - 1
	for y := 1; y < g.Height(); y++ {
		if !g.IsLinked(grid.Cell{X: right, Y: y}, grid.North) {
			t.Errorf("right column broken at y=%d", y)
		}
	}
}

func TestBinaryTreeOnlyCarvesNorthOrEast(t *testing.T) {
	g := grid.New(4, 4)
	BinaryTree(g, fixedSource(0))

	// With the first candidate always chosen, every cell below the top row goes North.
	for _, c := range g.Cells() {
		if c.Y > 0 && !g.IsLinked(c, grid.North) {
			t.Errorf("cell %s not linked north", c)
		}
	}
	if err := grid.Verify(g); err != nil {
		t.Errorf("Verify() = %v", err)
	}
}

func TestSidewinderTopRowIsSingleCorridor(t *testing.T) {
	g := Sidewinder(grid.New(12, 5), NewSource(11))

	for x := 0; x < g.Width()-1; x++ {
		if !g.IsLinked(grid.Cell{X: x, Y: 0}, grid.East) {
			t.Errorf("top row broken at x=%d", x)
		}
	}
}

func TestSidewinderOneNorthPassagePerRun(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		g := Sidewinder(grid.New(16, 9), NewSource(seed))
		for _, row := range g.Rows()[1:] {
			runs, north := 0, 0
			for _, c := range row {
				if !g.IsLinked(c, grid.East) {
					runs++
				}
				if g.IsLinked(c, grid.North) {
					north++
				}
			}
			if runs != north {
				t.Errorf("seed %d row %d: %d runs, %d north passages", seed, row[0].Y, runs, north)
			}
		}
	}
}

func TestSidewinderAlwaysClosing(t *testing.T) {
	g := Sidewinder(grid.New(3, 3), fixedSource(0))

	// Rows below the top close out at every cell, so every column is a corridor.
	for _, c := range g.Cells() {
		if c.Y == 0 {
			continue
		}
		if !g.IsLinked(c, grid.North) {
			t.Errorf("cell %s not linked north", c)
		}
		if g.IsLinked(c, grid.East) {
			t.Errorf("cell %s linked east", c)
		}
	}
	if err := grid.Verify(g); err != nil {
		t.Errorf("Verify() = %v", err)
	}
}

func TestSample(t *testing.T) {
	if _, ok := sample(NewSource(1), []string{}); ok {
		t.Error("sample(empty) ok = true, want false")
	}

	vs := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	rng := NewSource(1)
	for i := 0; i < 100; i++ {
		v, ok := sample(rng, vs)
		if !ok {
			t.Fatal("sample() ok = false")
		}
		if !slices.Contains(vs, v) {
			t.Errorf("sample() = %d, not in input", v)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"binary tree", "binary-tree", NameBinaryTree, false},
		{"alias underscore", "binary_tree", NameBinaryTree, false},
		{"alias joined", "BinaryTree", NameBinaryTree, false},
		{"sidewinder", "sidewinder", NameSidewinder, false},
		{"padded", "  Sidewinder ", NameSidewinder, false},
		{"unknown", "prim", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonical(tt.input)
			if tt.wantErr {
				if !errs.Is(err, errs.ErrCodeInvalidAlgorithm) {
					t.Errorf("Canonical(%q) error = %v, want INVALID_ALGORITHM", tt.input, err)
				}
				if _, err := Lookup(tt.input); err == nil {
					t.Errorf("Lookup(%q) returned nil error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Canonical(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.input, got, tt.want)
			}
			algo, err := Lookup(tt.input)
			if err != nil || algo == nil {
				t.Errorf("Lookup(%q) = %v, %v", tt.input, algo != nil, err)
			}
		})
	}
}

func TestNames(t *testing.T) {
	if got, want := Names(), []string{NameBinaryTree, NameSidewinder}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	for _, n := range Names() {
		if Describe(n) == "" {
			t.Errorf("Describe(%q) is empty", n)
		}
	}
}

func TestRun(t *testing.T) {
	g, err := Run("sidewinder", 6, 4, 9)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g.Width() != 6 || g.Height() != 4 {
		t.Errorf("Run() size = %dx%d, want 6x4", g.Width(), g.Height())
	}
	if err := grid.Verify(g); err != nil {
		t.Errorf("Verify() = %v", err)
	}

	if _, err := Run("sidewinder", -1, 4, 9); !errs.Is(err, errs.ErrCodeInvalidDimensions) {
		t.Errorf("Run(-1x4) error = %v, want INVALID_DIMENSIONS", err)
	}
	if _, err := Run("kruskal", 4, 4, 9); !errs.Is(err, errs.ErrCodeInvalidAlgorithm) {
		t.Errorf("Run(kruskal) error = %v, want INVALID_ALGORITHM", err)
	}
}
