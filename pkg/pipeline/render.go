package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/levelgraph/pkg/graph"
	graphio "github.com/matzehuels/levelgraph/pkg/io"
	"github.com/matzehuels/levelgraph/pkg/observability"
	"github.com/matzehuels/levelgraph/pkg/render/nodelink"
)

// renderFormat produces one output format and stores it in artifacts. CSV
// output stores two entries: the edge table under "csv" and the property
// table under [PropertiesArtifact].
func renderFormat(ctx context.Context, g *graph.Graph[string], dot, format string, opts Options, artifacts map[string][]byte) (err error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, format, time.Since(start), err) }()

	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := graphio.WriteJSON(g, &buf); err != nil {
			return fmt.Errorf("json: %w", err)
		}
		artifacts[format] = buf.Bytes()

	case FormatCSV:
		var edges, props bytes.Buffer
		if err := graphio.WriteCSV(g, &edges, &props); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
		artifacts[format] = edges.Bytes()
		artifacts[PropertiesArtifact] = props.Bytes()

	case FormatDOT:
		artifacts[format] = []byte(dot)

	case FormatSVG:
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("svg: %w", err)
		}
		artifacts[format] = svg

	case FormatPNG:
		png, err := nodelink.RenderPNG(ctx, dot, opts.Scale)
		if err != nil {
			return fmt.Errorf("png: %w", err)
		}
		artifacts[format] = png

	case FormatPDF:
		pdf, err := nodelink.RenderPDF(ctx, dot)
		if err != nil {
			return fmt.Errorf("pdf: %w", err)
		}
		artifacts[format] = pdf

	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(artifacts[format]))
	return nil
}
