// Package render provides format conversion for rendered graphs.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg), named by [Converter]. When the
// tool is missing both return an UNSUPPORTED error. Diagram generation itself
// lives in the [nodelink] subpackage:
//
//	dot, err := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/levelgraph/pkg/render/nodelink
package render
