package catalog

import (
	"github.com/pinmagik/pinmagik/pkg/graph"
	"github.com/pinmagik/pinmagik/pkg/nodes"
	"github.com/pinmagik/pinmagik/pkg/raspi"
)

// Categories used by the built-in entries.
const (
	CategoryIO     = "io"
	CategorySource = "source"
	CategoryLogic  = "logic"
	CategoryTiming = "timing"
)

func gate(op nodes.Op) func(raspi.Context) graph.Node {
	return func(raspi.Context) graph.Node { return nodes.NewGate(op) }
}

var builtin = []Entry{
	{Kind: nodes.KindConstant, Name: "constant", Category: CategorySource, Description: "Fixed high or low level",
		New: func(raspi.Context) graph.Node { return nodes.NewConstant() }},

	{Kind: nodes.KindAnd, Name: "and", Category: CategoryLogic, Description: "High when both inputs are high", New: gate(nodes.OpAnd)},
	{Kind: nodes.KindOr, Name: "or", Category: CategoryLogic, Description: "High when either input is high", New: gate(nodes.OpOr)},
	{Kind: nodes.KindNot, Name: "not", Category: CategoryLogic, Description: "Inverts its input", New: gate(nodes.OpNot)},
	{Kind: nodes.KindXor, Name: "xor", Category: CategoryLogic, Description: "High when exactly one input is high", New: gate(nodes.OpXor)},
	{Kind: nodes.KindNand, Name: "nand", Category: CategoryLogic, Description: "Low when both inputs are high", New: gate(nodes.OpNand)},
	{Kind: nodes.KindNor, Name: "nor", Category: CategoryLogic, Description: "Low when either input is high", New: gate(nodes.OpNor)},

	{Kind: nodes.KindClock, Name: "clock", Category: CategoryTiming, Description: "Square wave with a configurable half period",
		New: func(raspi.Context) graph.Node { return nodes.NewClock() }},
	{Kind: nodes.KindToggle, Name: "toggle", Category: CategoryTiming, Description: "Flips its output on each rising edge",
		New: func(raspi.Context) graph.Node { return nodes.NewToggle() }},
	{Kind: nodes.KindEdge, Name: "edge", Category: CategoryTiming, Description: "One-step pulse on each rising edge",
		New: func(raspi.Context) graph.Node { return nodes.NewEdge() }},
	{Kind: nodes.KindDelay, Name: "delay", Category: CategoryTiming, Description: "Raises its output after the input stays high",
		New: func(raspi.Context) graph.Node { return nodes.NewDelay() }},

	{Kind: raspi.KindInput, Name: "input", Category: CategoryIO, Description: "GPIO pins read as graph inputs",
		New: func(ctx raspi.Context) graph.Node { return raspi.NewInputNode(ctx) }},
	{Kind: raspi.KindOutput, Name: "output", Category: CategoryIO, Description: "GPIO pins driven by the graph",
		New: func(ctx raspi.Context) graph.Node { return raspi.NewOutputNode(ctx) }},
}

// Default returns a registry holding every built-in kind.
func Default() *Registry {
	r := New()
	for _, e := range builtin {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}

// IsBoundary reports whether kind is one of the two boundary kinds, which
// the mutation API never creates.
func IsBoundary(kind graph.Kind) bool {
	return kind == raspi.KindInput || kind == raspi.KindOutput
}
