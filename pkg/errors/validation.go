package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxDimension bounds the width and height accepted from user input.
// The core accepts any non-negative size; this limit only protects the CLI
// and HTTP surfaces from accidental huge allocations.
const MaxDimension = 1000

// MaxTreeCells bounds mazes laid out by Graphviz, whose layout time grows
// much faster than the cell count.
const MaxTreeCells = 1600

// ValidateDimensions checks user-supplied maze dimensions.
// Zero is valid and yields an empty maze.
func ValidateDimensions(width, height int) error {
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidDimensions, "dimensions must not be negative (got %dx%d)", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidDimensions, "dimensions too large (max %d, got %dx%d)", MaxDimension, width, height)
	}
	return nil
}

// ValidateTreeDimensions checks that a maze is small enough for a
// spanning-tree layout.
func ValidateTreeDimensions(width, height int) error {
	if width*height > MaxTreeCells {
		return New(ErrCodeInvalidDimensions, "maze too large for a tree layout (max %d cells, got %dx%d)", MaxTreeCells, width, height)
	}
	return nil
}

// ValidateCellSize checks the vector rendering scale factor.
func ValidateCellSize(size float64) error {
	if err := ValidateFinite("cell size", size); err != nil {
		return err
	}
	if size <= 0 {
		return New(ErrCodeInvalidInput, "cell size must be positive (got %g)", size)
	}
	return nil
}

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number (got %g)", name, v)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a backend connection URL against the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}
