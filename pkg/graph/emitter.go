package graph

// Emitter is the generator-side surface a node sees while rendering code.
// Naming lives here so every reference to a source agrees.
type Emitter interface {
	// Ref returns the loop-scope variable holding src's value.
	Ref(src *Source) string
	// Input returns the expression a node should read for sink: the Ref of
	// the upstream source, or the literal False when unconnected.
	Input(sink *Sink) string
	// State returns an expression addressing n's persistent slot in the
	// script's module-level state dict.
	State(n Node) string
	// Live reports whether sink's node is emitted by the current run.
	// Nodes with no path to the output boundary are not.
	Live(sink *Sink) bool
}

// Graph is the read-only view of a project needed by the code generator,
// the codec and the renderers.
type Graph interface {
	// Nodes returns every node; index 0 is the input boundary and index 1
	// the output boundary.
	Nodes() []Node
	// InputNode returns the graph-input boundary node.
	InputNode() Node
	// OutputNode returns the graph-output boundary node.
	OutputNode() Node
}
