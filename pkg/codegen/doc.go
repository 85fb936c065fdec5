// Package codegen turns a project graph into a Python control script for
// the RPi.GPIO runtime.
//
// [Generate] walks the graph twice, once for the init pass and once for the
// loop pass. Each walk starts at the output boundary node and renders a
// node only after every node feeding its connected sinks, so values are
// computed before they are read. A node is rendered at most once per pass
// however many paths reach it. Nodes that cannot reach the output boundary
// contribute nothing.
//
// Variable names are assigned by the generator: the first node referenced
// gets ordinal 0, the next 1 and so on, and its sources become n<ord>_<idx>.
// Sequential nodes keep their memory in state["n<ord>"].
//
// The fragments are placed into a fixed script template rendered with
// text/template and the sprig function map.
package codegen
