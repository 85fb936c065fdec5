// Package graph provides the dataflow graph model behind a PinMagik project.
//
// # Overview
//
// A project is a set of nodes wired together through typed, indexed ports.
// Every node owns a fixed-length, ordered slice of [Sink] (input) ports and a
// fixed-length, ordered slice of [Source] (output) ports. Port order is part of
// the node's identity: documents and generated code refer to ports by index.
//
// A connection is not stored as a separate entity. It exists whenever a sink
// holds a reference to a source:
//
//	graph.Connect(and.Sinks()[0], input.Sources()[3])
//	src, ok := and.Sinks()[0].Upstream()
//
// A sink has at most one upstream source; connecting an already connected
// sink replaces the old link. A source may feed any number of sinks, and
// [Source.Downstreams] returns them in connection order.
//
// # Nodes
//
// [Node] is the capability interface every node kind implements. Concrete
// kinds embed [Base], which supplies identity, ports, canvas position, empty
// code fragments and an empty configuration:
//
//	type Not struct{ graph.Base }
//
//	func NewNot() *Not {
//	    n := &Not{}
//	    n.Base = graph.NewBase(n, 1, 1)
//	    return n
//	}
//
// Two node kinds are structurally privileged: the graph-input and
// graph-output boundary nodes. They report their [Role] through the optional
// [Boundary] interface.
//
// # Identity
//
// Each node receives an [ID] from a process-wide monotonically increasing
// counter when it is constructed. IDs key visited sets during code
// generation and wire connections during serialization. They carry no
// meaning beyond the current process and are never persisted as-is.
//
// # Code Generation Hooks
//
// Nodes render their init and loop fragments through an [Emitter], which
// owns variable naming. This keeps node kinds independent of the generator's
// traversal and of each other.
//
// # Concurrency
//
// Graphs are not safe for concurrent use. The editor mutates a graph only
// between generation and codec runs. Only ID allocation is synchronized.
package graph
