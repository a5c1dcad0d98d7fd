package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	errs "github.com/matzehuels/labyrinth/pkg/errors"
)

const rsvgBinary = "rsvg-convert"

// ToPDF converts SVG bytes to a PDF document.
func ToPDF(svg []byte) ([]byte, error) {
	return ToPDFContext(context.Background(), svg)
}

// ToPNG converts SVG bytes to a PNG image. A scale of 2 doubles the resolution.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return ToPNGContext(context.Background(), svg, scale)
}

func ToPDFContext(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

func ToPNGContext(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return rsvgConvert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// ConverterAvailable reports whether PDF and PNG export can run on this host.
func ConverterAvailable() bool {
	_, err := exec.LookPath(rsvgBinary)
	return err == nil
}

func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !ConverterAvailable() {
		return nil, errs.New(errs.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, rsvgBinary, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "%s: %s", rsvgBinary, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
