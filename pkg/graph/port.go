package graph

import "slices"

// Sink is an input port. It holds at most one upstream [Source].
type Sink struct {
	node   Node
	index  int
	source *Source
}

// Node returns the node owning the sink.
func (s *Sink) Node() Node { return s.node }

// Index returns the sink's position in its node's sink slice.
func (s *Sink) Index() int { return s.index }

// Upstream returns the connected source, if any.
func (s *Sink) Upstream() (*Source, bool) {
	return s.source, s.source != nil
}

// Connected reports whether the sink has an upstream source.
func (s *Sink) Connected() bool { return s.source != nil }

// Source is an output port. Any number of sinks may reference it.
type Source struct {
	node  Node
	index int
	sinks []*Sink
}

// Node returns the node owning the source.
func (s *Source) Node() Node { return s.node }

// Index returns the source's position in its node's source slice.
func (s *Source) Index() int { return s.index }

// Downstreams returns the sinks fed by this source in connection order.
// The returned slice is a copy.
func (s *Source) Downstreams() []*Sink { return slices.Clone(s.sinks) }

// Used reports whether at least one sink reads this source.
func (s *Source) Used() bool { return len(s.sinks) > 0 }

// Connect links sink to source. Any previous upstream of sink is
// replaced; the last write wins.
func Connect(sink *Sink, source *Source) {
	if sink.source == source {
		return
	}
	Disconnect(sink)
	sink.source = source
	source.sinks = append(source.sinks, sink)
}

// Disconnect clears the upstream reference of sink. It is a no-op for an
// unconnected sink.
func Disconnect(sink *Sink) {
	if sink.source == nil {
		return
	}
	src := sink.source
	src.sinks = slices.DeleteFunc(src.sinks, func(s *Sink) bool { return s == sink })
	sink.source = nil
}

// Detach removes every connection touching n: its own sinks are
// disconnected and every sink fed by one of its sources is disconnected.
func Detach(n Node) {
	for _, sink := range n.Sinks() {
		Disconnect(sink)
	}
	for _, src := range n.Sources() {
		for _, sink := range src.Downstreams() {
			Disconnect(sink)
		}
	}
}

// Upstreams returns the distinct nodes feeding n, in sink order.
func Upstreams(n Node) []Node {
	var out []Node
	seen := make(map[ID]bool)
	for _, sink := range n.Sinks() {
		src, ok := sink.Upstream()
		if !ok {
			continue
		}
		up := src.Node()
		if seen[up.ID()] {
			continue
		}
		seen[up.ID()] = true
		out = append(out, up)
	}
	return out
}

// Edge is one derived connection, directed from Source to Sink.
type Edge struct {
	Source *Source
	Sink   *Sink
}

// Edges returns every connection whose sink belongs to one of nodes,
// ordered by node and then by sink index.
func Edges(nodes []Node) []Edge {
	var out []Edge
	for _, n := range nodes {
		for _, sink := range n.Sinks() {
			if src, ok := sink.Upstream(); ok {
				out = append(out, Edge{Source: src, Sink: sink})
			}
		}
	}
	return out
}
