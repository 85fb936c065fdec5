package codegen

import (
	"fmt"

	"github.com/pinmagik/pinmagik/pkg/graph"
)

// namer implements graph.Emitter with per-run ordinals.
type namer struct {
	ords map[graph.ID]int
	live map[graph.ID]bool
}

func newNamer(live map[graph.ID]bool) *namer {
	return &namer{ords: make(map[graph.ID]int), live: live}
}

func (n *namer) ord(node graph.Node) int {
	id := node.ID()
	if o, ok := n.ords[id]; ok {
		return o
	}
	o := len(n.ords)
	n.ords[id] = o
	return o
}

func (n *namer) Ref(src *graph.Source) string {
	return fmt.Sprintf("n%d_%d", n.ord(src.Node()), src.Index())
}

func (n *namer) Input(sink *graph.Sink) string {
	if src, ok := sink.Upstream(); ok {
		return n.Ref(src)
	}
	return "False"
}

func (n *namer) State(node graph.Node) string {
	return fmt.Sprintf("state[%q]", fmt.Sprintf("n%d", n.ord(node)))
}

func (n *namer) Live(sink *graph.Sink) bool {
	return n.live[sink.Node().ID()]
}

// reachable returns the ids of every node that feeds root, root included.
func reachable(root graph.Node) map[graph.ID]bool {
	seen := make(map[graph.ID]bool)
	stack := []graph.Node{root}
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
