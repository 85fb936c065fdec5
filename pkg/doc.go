// Package pkg provides the core libraries for PinMagik.
//
// # Overview
//
// PinMagik models a Raspberry Pi control program as a dataflow graph of
// GPIO pins, logic gates and timers, and compiles it into a Python script
// that drives the pins through RPi.GPIO. Every project has two boundary
// nodes: the graph input (position 0), whose sources are the board's input
// pins, and the graph output (position 1), whose sinks are its output pins.
//
// # Architecture
//
// The typical data flow:
//
//	.pimp document
//	      ↓
//	 [codec] package (validate, deserialize, rewire)
//	      ↓
//	 [project] package (ordered node list + boundary nodes)
//	      ↓
//	 [codegen] package (init and loop passes from the output node)
//	      ↓
//	 Python script
//
// # Quick Start
//
// Load a document and compile it:
//
//	reg := catalog.Default()
//	p, err := project.Open("blink.pimp", reg)
//	if err != nil {
//	    return err
//	}
//	script, err := p.Compile(codegen.Options{})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("blink.py", []byte(script.Text), 0o755)
//
// Build a project in code:
//
//	p, _ := project.New(raspi.TypeRaspi, reg)
//	not, _ := reg.NewNode(nodes.KindNot, raspi.TypeRaspi)
//	p.AddNode(not)
//	in, _ := p.InputNode().(*raspi.InputNode).Source(17)
//	out, _ := p.OutputNode().(*raspi.OutputNode).Sink(18)
//	graph.Connect(not.Sinks()[0], in)
//	graph.Connect(out, not.Sources()[0])
//
// # Main Packages
//
// [graph] - Node, port and connection model shared by every other package.
//
// [raspi] - Project types, board revisions and the boundary nodes.
//
// [nodes] - Constants, logic gates, clocks, toggles, edge detectors and
// delays.
//
// [catalog] - The kind-id registry used to create nodes by kind.
//
// [codec] - The JSON document format, its schema and the serializer and
// deserializer.
//
// [codegen] - The script generator.
//
// [project] - Projects and their file I/O.
//
// [render] - Wiring diagrams through Graphviz.
//
// [config] - TOML user configuration.
//
// [observability] - Hooks for load, save, compile and render events.
//
// [errors] - Coded errors shared by all packages.
//
// [graph]: https://pkg.go.dev/github.com/pinmagik/pinmagik/pkg/graph
// [raspi]: https://pkg.go.dev/github.com/pinmagik/pinmagik/pkg/raspi
// [nodes]: https://pkg.go.dev/github.com/pinmagik/pinmagik/pkg/nodes
// [catalog]: https://pkg.go.dev/github.com/pinmagik/pinmagik/pkg/catalog
// [codec]: https://pkg.go.dev/github.com/pinmagik/pinmagik/pkg/codec
// [codegen]: https://pkg.go.dev/github.com/pinmagik/pinmagik/pkg/codegen
// [project]: https://pkg.go.dev/github.com/pinmagik/pinmagik/pkg/project
// [render]: https://pkg.go.dev/github.com/pinmagik/pinmagik/pkg/render
// [config]: https://pkg.go.dev/github.com/pinmagik/pinmagik/pkg/config
// [observability]: https://pkg.go.dev/github.com/pinmagik/pinmagik/pkg/observability
// [errors]: https://pkg.go.dev/github.com/pinmagik/pinmagik/pkg/errors
package pkg
