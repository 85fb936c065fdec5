package codegen

import (
	"strings"
	"time"

	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/graph"
)

// Defaults applied to zero [Options] fields.
const (
	DefaultPeriod = 10 * time.Millisecond
	DefaultTarget = "raspi"
)

// Options controls script rendering.
type Options struct {
	Target string        // Project type named in the script banner
	Period time.Duration // Delay between loop steps
}

// WithDefaults returns a copy of o with zero fields filled in.
func (o Options) WithDefaults() Options {
	if o.Target == "" {
		o.Target = DefaultTarget
	}
	if o.Period <= 0 {
		o.Period = DefaultPeriod
	}
	return o
}

// Script is the result of [Generate].
type Script struct {
	Init string // Concatenated init fragments in emission order
	Loop string // Concatenated loop fragments in emission order
	Text string // Complete script
}

// pass renders one fragment kind over the graph.
type pass struct {
	fragment func(graph.Node, graph.Emitter) string
	emitter  graph.Emitter
	rendered map[graph.ID]bool
	visiting map[graph.ID]bool
	buf      strings.Builder
}

func newPass(e graph.Emitter, fragment func(graph.Node, graph.Emitter) string) *pass {
	return &pass{
		fragment: fragment,
		emitter:  e,
		rendered: make(map[graph.ID]bool),
		visiting: make(map[graph.ID]bool),
	}
}

func (p *pass) visit(n graph.Node) error {
	id := n.ID()
	if p.rendered[id] {
		return nil
	}
	if p.visiting[id] {
		return errors.New(errors.ErrCodeDependencyCycle, "dependency cycle through node %s", n.Kind())
	}
	p.visiting[id] = true
	for _, sink := range n.Sinks() {
		src, ok := sink.Upstream()
		if !ok {
			continue
		}
		if err := p.visit(src.Node()); err != nil {
			return err
		}
	}
	delete(p.visiting, id)

	p.buf.WriteString(p.fragment(n, p.emitter))
	p.rendered[id] = true
	return nil
}

// Generate renders the script for g.
//
// The init and loop passes each emit every node reachable from the output
// boundary exactly once, dependencies first. A cycle reachable from the
// output boundary yields a DEPENDENCY_CYCLE error.
func Generate(g graph.Graph, opts Options) (*Script, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidProject, "nil graph")
	}
	out := g.OutputNode()
	if out == nil {
		return nil, errors.New(errors.ErrCodeInvalidProject, "graph has no output node")
	}
	opts = opts.WithDefaults()

	names := newNamer(reachable(out))
	initPass := newPass(names, graph.Node.Init)
	if err := initPass.visit(out); err != nil {
		return nil, err
	}
	loopPass := newPass(names, graph.Node.Loop)
	if err := loopPass.visit(out); err != nil {
		return nil, err
	}

	s := &Script{
		Init: initPass.buf.String(),
		Loop: loopPass.buf.String(),
	}
	text, err := render(s, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render script")
	}
	s.Text = text
	return s, nil
}
