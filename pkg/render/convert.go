package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	lgerrors "github.com/matzehuels/levelgraph/pkg/errors"
)

// Converter is the external binary used for SVG conversion.
var Converter = "rsvg-convert"

const installHint = "install librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux)"

// ToPDF converts SVG bytes to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG. A scale of 2.0 doubles the resolution;
// non-positive scales are treated as 1.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func convert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	if len(svg) == 0 {
		return nil, lgerrors.New(lgerrors.ErrCodeInvalidInput, "no svg to convert to %s", format)
	}
	bin, err := exec.LookPath(Converter)
	if err != nil {
		return nil, lgerrors.Wrap(lgerrors.ErrCodeUnsupported, err, "%s output needs %s; %s", format, Converter, installHint)
	}

	cmd := exec.CommandContext(ctx, bin, append([]string{"-f", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, lgerrors.Wrap(lgerrors.ErrCodeInternal, err, "%s: %s", Converter, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
