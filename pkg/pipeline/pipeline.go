// Package pipeline runs the generate → verify → render flow shared by the
// CLI, the interactive viewer and the HTTP server.
//
// A maze is fully determined by its algorithm, dimensions and seed, so the
// pipeline never stores mazes. It caches rendered artifacts instead, keyed by
// every option that changes their bytes.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Algorithm: "sidewinder",
//	    Width:     20,
//	    Height:    8,
//	    Seed:      42,
//	    Formats:   []string{"txt", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.Artifacts["txt"]))
//
// Stages can also run on their own:
//
//	g, err := runner.Generate(ctx, opts)
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"io"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labyrinth/pkg/cache"
	errs "github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/generate"
	"github.com/matzehuels/labyrinth/pkg/grid"
	"github.com/matzehuels/labyrinth/pkg/render"
)

// Defaults shared by the CLI, viewer and server.
const (
	DefaultWidth       = 20
	DefaultHeight      = 8
	DefaultAlgorithm   = generate.DefaultAlgorithm
	DefaultCellSize    = render.DefaultCellSize
	DefaultStroke      = "black"
	DefaultStrokeWidth = 2.0
	DefaultScale       = 2.0
)

// Output formats.
const (
	FormatText    = "txt"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatDOT     = "dot"
	FormatTreeSVG = "tree-svg"
	FormatTreePNG = "tree-png"
)

// Formats lists every supported format in display order.
var Formats = []string{FormatText, FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatTreeSVG, FormatTreePNG}

// Extensions maps a format to the file extension used when writing it.
var Extensions = map[string]string{
	FormatText:    ".txt",
	FormatSVG:     ".svg",
	FormatPNG:     ".png",
	FormatPDF:     ".pdf",
	FormatDOT:     ".dot",
	FormatTreeSVG: ".tree.svg",
	FormatTreePNG: ".tree.png",
}

// ContentTypes maps a format to its HTTP media type.
var ContentTypes = map[string]string{
	FormatText:    "text/plain; charset=utf-8",
	FormatSVG:     "image/svg+xml",
	FormatPNG:     "image/png",
	FormatPDF:     "application/pdf",
	FormatDOT:     "text/vnd.graphviz; charset=utf-8",
	FormatTreeSVG: "image/svg+xml",
	FormatTreePNG: "image/png",
}

// strokePattern accepts colour names, hex and functional notations, and
// nothing that could break out of an SVG attribute.
var strokePattern = regexp.MustCompile(`^[#A-Za-z0-9(),.% ]{1,64}$`)

// Options configures one pipeline run. It decodes from JSON for API use.
type Options struct {
	Algorithm string `json:"algorithm,omitempty"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Seed      uint64 `json:"seed"`

	Formats     []string `json:"formats,omitempty"`
	CellSize    float64  `json:"cell_size,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth float64  `json:"stroke_width,omitempty"`
	Margin      float64  `json:"margin,omitempty"`
	Scale       float64  `json:"scale,omitempty"` // PNG scale factor

	// Refresh bypasses cached artifacts (they are still rewritten).
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is the output of [Runner.Execute].
type Result struct {
	Grid      *grid.Grid
	MazeKey   string
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats describes the maze and the time spent on each stage.
type Stats struct {
	Maze         grid.Stats
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo reports which artifacts were served from the cache.
type CacheInfo struct {
	Hits      []string // formats found in the cache
	RenderHit bool     // every requested format came from the cache
}

func isTreeFormat(format string) bool {
	return format == FormatTreeSVG || format == FormatTreePNG
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if _, ok := Extensions[format]; !ok {
		return errs.New(errs.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks every format. An empty list is valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults normalises the algorithm name, fills zero values
// with defaults and validates the result. Calling it twice is harmless.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate checks the maze identity. Zero dimensions are allowed
// and yield an empty maze; callers wanting the 20x8 default set it themselves.
func (o *Options) ValidateForGenerate() error {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	name, err := generate.Canonical(o.Algorithm)
	if err != nil {
		return err
	}
	o.Algorithm = name

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return errs.ValidateDimensions(o.Width, o.Height)
}

// SetRenderDefaults fills zero render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.CellSize == 0 {
		o.CellSize = DefaultCellSize
	}
	if o.Stroke == "" {
		o.Stroke = DefaultStroke
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = DefaultStrokeWidth
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets render defaults and validates formats and sizes.
// Duplicate formats are dropped.
func (o *Options) ValidateForRender() error {
	o.Formats = dedupe(o.Formats)
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if slices.ContainsFunc(o.Formats, isTreeFormat) {
		if err := errs.ValidateTreeDimensions(o.Width, o.Height); err != nil {
			return err
		}
	}
	if err := errs.ValidateCellSize(o.CellSize); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"stroke width", o.StrokeWidth}, {"margin", o.Margin}, {"scale", o.Scale}} {
		if err := errs.ValidateFinite(f.name, f.v); err != nil {
			return err
		}
	}
	if !strokePattern.MatchString(o.Stroke) {
		return errs.New(errs.ErrCodeInvalidInput, "invalid stroke colour %q", o.Stroke)
	}
	if o.StrokeWidth < 0 || o.Margin < 0 || o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "stroke width, margin and scale must not be negative")
	}
	return nil
}

// MazeKeyOpts returns the cache identity of the maze.
func (o *Options) MazeKeyOpts() cache.MazeKeyOpts {
	return cache.MazeKeyOpts{
		Algorithm: o.Algorithm,
		Width:     o.Width,
		Height:    o.Height,
		Seed:      o.Seed,
	}
}

// ArtifactKeyOpts returns the cache key options for one format. Options that
// do not affect a format are left zero so they do not split its cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF, FormatPNG:
		k.CellSize = o.CellSize
		k.Stroke = o.Stroke
		k.StrokeWidth = o.StrokeWidth
		k.Margin = o.Margin
		if format == FormatPNG {
			k.Scale = o.Scale
		}
	}
	return k
}

// SVGOptions converts the render options for [render.SVG].
func (o *Options) SVGOptions() []render.SVGOption {
	return []render.SVGOption{
		render.WithCellSize(o.CellSize),
		render.WithStroke(o.Stroke),
		render.WithStrokeWidth(o.StrokeWidth),
		render.WithMargin(o.Margin),
	}
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
