package pipeline

import (
	"context"
	"fmt"

	errs "github.com/matzehuels/labyrinth/pkg/errors"
	"github.com/matzehuels/labyrinth/pkg/grid"
	"github.com/matzehuels/labyrinth/pkg/render"
)

// Render produces every format in opts.Formats from g. The SVG and DOT
// sources are built at most once and shared by the formats derived from them.
func Render(ctx context.Context, g *grid.Grid, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	r := &renderer{g: g, opts: opts}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.render(ctx, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

type renderer struct {
	g    *grid.Grid
	opts Options
	svg  []byte
	dot  string
}

func (r *renderer) render(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(render.Text(r.g) + "\n"), nil
	case FormatSVG:
		return r.vector(), nil
	case FormatPNG:
		return render.ToPNGContext(ctx, r.vector(), r.opts.Scale)
	case FormatPDF:
		return render.ToPDFContext(ctx, r.vector())
	case FormatDOT:
		return []byte(r.graph()), nil
	case FormatTreeSVG, FormatTreePNG:
		if err := errs.ValidateTreeDimensions(r.g.Width(), r.g.Height()); err != nil {
			return nil, err
		}
		if format == FormatTreePNG {
			return render.RenderTreePNG(ctx, r.graph())
		}
		return render.RenderTreeSVG(ctx, r.graph())
	default:
		return nil, ValidateFormat(format)
	}
}

func (r *renderer) vector() []byte {
	if r.svg == nil {
		r.svg = render.SVG(r.g, r.opts.SVGOptions()...)
	}
	return r.svg
}

func (r *renderer) graph() string {
	if r.dot == "" {
		r.dot = render.ToDOT(r.g)
	}
	return r.dot
}
