// Package nodelink renders levelled graphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// nodes appear as boxes connected by arrows and every level of the graph is
// drawn as one row.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot, err := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # DOT Format
//
// [ToDOT] emits one `subgraph level_N { rank=same; ... }` block per level,
// then the edge list. The output can be rendered via [RenderSVG] or saved and
// processed with external Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering (Graphviz compiled to WebAssembly), so no system Graphviz install
// is needed. PDF and PNG conversion require rsvg-convert on PATH.
package nodelink
