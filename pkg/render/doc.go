// Package render draws project wiring diagrams.
//
// The [nodelink] subpackage turns a project graph into Graphviz DOT and
// renders it to SVG in-process. [ToPDF] and [ToPNG] convert that SVG to
// other formats using the external rsvg-convert tool (from librsvg).
//
//	dot := nodelink.ToDOT(p, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: github.com/pinmagik/pinmagik/pkg/render/nodelink
package render
