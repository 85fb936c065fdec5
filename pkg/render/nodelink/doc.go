// Package nodelink renders project graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(p, nodelink.Options{Names: names})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Nodes are identified by their index in the graph's node list, the same
// index the command line uses. Edges run from a source to a sink and carry
// the port indexes, or GPIO numbers on the boundary nodes. Nodes whose
// output never reaches the graph output are drawn dashed, since the code
// generator skips them.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
