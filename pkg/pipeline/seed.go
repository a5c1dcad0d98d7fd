package pipeline

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/google/uuid"

	errs "github.com/matzehuels/labyrinth/pkg/errors"
)

// NewSeed returns a fresh random seed for callers that were not given one.
// It is derived from a version 4 UUID so it can be logged and replayed.
func NewSeed() uint64 {
	id := uuid.New()
	return binary.BigEndian.Uint64(id[:8]) ^ binary.BigEndian.Uint64(id[8:])
}

// ParseSeed parses a decimal or 0x-prefixed hexadecimal seed. An empty
// string yields a fresh seed and reports random as true.
func ParseSeed(s string) (seed uint64, random bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NewSeed(), true, nil
	}
	digits, base := s, 10
	if hex, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		digits, base = hex, 16
	}
	seed, err = strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, false, errs.New(errs.ErrCodeInvalidInput, "invalid seed %q: must be an unsigned 64-bit integer", s)
	}
	return seed, false, nil
}

// ParseFormats splits a comma-separated format list and validates it.
func ParseFormats(s string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}
	return dedupe(formats), nil
}
