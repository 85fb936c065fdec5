package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pinmagik/pinmagik/pkg/graph"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds each node's configuration to its label.
	Detailed bool
	// Names maps a kind to a display name. Kinds it does not know, or
	// all kinds when nil, are shown as hex ids.
	Names func(graph.Kind) (string, bool)
}

func (o Options) name(k graph.Kind) string {
	if o.Names != nil {
		if s, ok := o.Names(k); ok {
			return s
		}
	}
	return k.String()
}

// pinned is implemented by the boundary nodes.
type pinned interface {
	Pins() []int
}

func portLabel(n graph.Node, index int) string {
	if p, ok := n.(pinned); ok {
		if pins := p.Pins(); index < len(pins) {
			return "GPIO" + strconv.Itoa(pins[index])
		}
	}
	return strconv.Itoa(index)
}

// ToDOT converts g to Graphviz DOT.
func ToDOT(g graph.Graph, opts Options) string {
	live := reachable(g)
	index := make(map[graph.ID]int)
	for i, n := range g.Nodes() {
		index[n.ID()] = i
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i, n := range g.Nodes() {
		label := fmtLabel(i, n, opts)
		attrs := fmtAttrs(n, label, live[n.ID()])
		fmt.Fprintf(&buf, "  n%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range graph.Edges(g.Nodes()) {
		from, to := e.Source.Node(), e.Sink.Node()
		fmt.Fprintf(&buf, "  n%d -> n%d [taillabel=%q, headlabel=%q];\n",
			index[from.ID()], index[to.ID()],
			portLabel(from, e.Source.Index()), portLabel(to, e.Sink.Index()))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(i int, n graph.Node, opts Options) string {
	label := fmt.Sprintf("%d: %s", i, opts.name(n.Kind()))
	if !opts.Detailed {
		return label
	}
	cfg, err := n.MarshalConfig()
	if err != nil || len(cfg) == 0 {
		return label
	}
	parts := []string{label}
	for _, k := range slices.Sorted(maps.Keys(cfg)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, cfg[k]))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n graph.Node, label string, live bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case graph.RoleOf(n) != graph.RoleInternal:
		attrs = append(attrs, "fillcolor=lightblue")
	case !live:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// reachable returns the nodes the output boundary depends on.
func reachable(g graph.Graph) map[graph.ID]bool {
	seen := make(map[graph.ID]bool)
	out := g.OutputNode()
	if out == nil {
		return seen
	}
	stack := []graph.Node{out}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n.ID()] {
			continue
		}
		seen[n.ID()] = true
		stack = append(stack, graph.Upstreams(n)...)
	}
	return seen
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
