package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/levelgraph/pkg/graph"
	"github.com/matzehuels/levelgraph/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the level number to each node label.
	// When false, only the node value is shown.
	Detailed bool

	// RankDir is the Graphviz layout direction: "TB" (default) or "LR".
	RankDir string

	// Highlight lists node values drawn with an accent fill.
	Highlight []string
}

// ToDOT converts a graph to Graphviz DOT format for node-link visualization.
// Nodes on the same level are grouped in a rank=same subgraph so Graphviz
// draws each level as one row. The resulting DOT string can be rendered
// using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// ToDOT returns [graph.ErrCyclicGraph] if levels cannot be computed.
func ToDOT[T comparable](g *graph.Graph[T], opts Options) (string, error) {
	levels, err := g.Levels()
	if err != nil {
		return "", err
	}
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}
	highlight := make(map[string]bool, len(opts.Highlight))
	for _, h := range opts.Highlight {
		highlight[h] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for level, nodes := range levels {
		fmt.Fprintf(&buf, "\n  subgraph level_%d {\n", level)
		buf.WriteString("    rank=same;\n")
		for _, n := range nodes {
			id := n.String()
			attrs := fmtAttrs(id, fmtLabel(id, level, opts.Detailed), highlight[id])
			fmt.Fprintf(&buf, "    %q [%s];\n", id, strings.Join(attrs, ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e[0].String(), e[1].String())
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func fmtLabel(id string, level int, detailed bool) string {
	if !detailed {
		return id
	}
	return fmt.Sprintf("%s\nlevel: %d", id, level)
}

func fmtAttrs(id, label string, highlighted bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if highlighted {
		attrs = append(attrs, "fillcolor=\"#FFE8A3\"", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root <svg> tag so the drawing scales from
// its viewBox instead of Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
