package generate

import (
	"slices"
	"strings"

	errs "github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/grid"
)

// Algorithm carves a maze into g using rng and returns the same grid.
type Algorithm func(g *grid.Grid, rng Source) *grid.Grid

// Canonical algorithm names.
const (
	NameBinaryTree = "binary-tree"
	NameSidewinder = "sidewinder"
)

// DefaultAlgorithm is used when no algorithm is requested.
const DefaultAlgorithm = NameBinaryTree

var algorithms = map[string]Algorithm{
	NameBinaryTree: BinaryTree,
	NameSidewinder: Sidewinder,
}

var aliases = map[string]string{
	"binarytree":  NameBinaryTree,
	"binary_tree": NameBinaryTree,
	"binary":      NameBinaryTree,
}

var descriptions = map[string]string{
	NameBinaryTree: "links each cell North or East; straight top row and right column",
	NameSidewinder: "row runs with one North passage each; straight top row only",
}

// Names returns the canonical algorithm names, sorted.
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for n := range algorithms {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Describe returns a one-line description of a canonical algorithm name.
func Describe(name string) string {
	return descriptions[name]
}

// Canonical resolves aliases and case to a canonical algorithm name.
func Canonical(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[n]; ok {
		n = alias
	}
	if _, ok := algorithms[n]; !ok {
		return "", errs.New(errs.ErrCodeInvalidAlgorithm,
			"unknown algorithm %q (must be one of: %s)", name, strings.Join(Names(), ", "))
	}
	return n, nil
}

// Lookup returns the algorithm registered under name or one of its aliases.
func Lookup(name string) (Algorithm, error) {
	n, err := Canonical(name)
	if err != nil {
		return nil, err
	}
	return algorithms[n], nil
}

// Run builds a width × height grid and carves it with the named algorithm,
// seeding the random source with seed.
func Run(name string, width, height int, seed uint64) (*grid.Grid, error) {
	algo, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if err := errs.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	return algo(grid.New(width, height), NewSource(seed)), nil
}
