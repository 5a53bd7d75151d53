package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

// rsvgBinary is the librsvg converter used for raster and print output.
const rsvgBinary = "rsvg-convert"

// Available reports whether PNG and PDF conversion can run on this host.
func Available() bool {
	_, err := exec.LookPath(rsvgBinary)
	return err == nil
}

// ToPNG rasterizes an SVG document. A scale of 2 doubles the pixel size;
// non-positive scales fall back to DefaultScale.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultScale
	}
	return convert(ctx, svg, FormatPNG, "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

// ToPDF converts an SVG document to a single-page PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, FormatPDF)
}

func convert(ctx context.Context, svg []byte, to Format, args ...string) ([]byte, error) {
	path, err := exec.LookPath(rsvgBinary)
	if err != nil {
		return nil, orgerrors.New(orgerrors.ErrCodeUnsupported,
			"%s output needs %s (brew install librsvg, apt install librsvg2-bin)", to, rsvgBinary)
	}

	cmd := exec.CommandContext(ctx, path, append([]string{"--format", string(to)}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, orgerrors.Wrap(orgerrors.ErrCodeInternal, err, "%s: %s", rsvgBinary, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
