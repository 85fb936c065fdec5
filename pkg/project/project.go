package project

import (
	"slices"

	"github.com/pinmagik/pinmagik/pkg/codec"
	"github.com/pinmagik/pinmagik/pkg/codegen"
	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/graph"
	"github.com/pinmagik/pinmagik/pkg/raspi"
)

// Project is an ordered node graph for one project type.
type Project struct {
	typ      raspi.ProjectType
	nodes    []graph.Node
	filename string
}

// New creates an empty project of the named type. The boundary nodes are
// built through f and placed at their default positions.
func New(projectType string, f codec.Factory) (*Project, error) {
	t, err := raspi.LookupType(projectType)
	if err != nil {
		return nil, err
	}
	in, err := f.NewNode(raspi.KindInput, t.Name)
	if err != nil {
		return nil, err
	}
	out, err := f.NewNode(raspi.KindOutput, t.Name)
	if err != nil {
		return nil, err
	}
	in.SetPosition(raspi.InputPosition)
	out.SetPosition(raspi.OutputPosition)
	return &Project{typ: t, nodes: []graph.Node{in, out}}, nil
}

// Nodes returns the node list. Index 0 is the input boundary and index 1
// the output boundary. The slice must not be modified.
func (p *Project) Nodes() []graph.Node { return p.nodes }

func (p *Project) InputNode() graph.Node  { return p.nodes[0] }
func (p *Project) OutputNode() graph.Node { return p.nodes[1] }

// Node returns the node at index i.
func (p *Project) Node(i int) (graph.Node, error) {
	if i < 0 || i >= len(p.nodes) {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node at index %d (project has %d)", i, len(p.nodes))
	}
	return p.nodes[i], nil
}

// Index returns the position of n in the node list, or -1.
func (p *Project) Index(n graph.Node) int {
	return slices.IndexFunc(p.nodes, func(m graph.Node) bool { return m.ID() == n.ID() })
}

// Type returns the project type.
func (p *Project) Type() raspi.ProjectType { return p.typ }

// Filename returns the path the project was loaded from or saved to.
func (p *Project) Filename() string { return p.filename }

// SetFilename sets the path used by [Project.Save] when called with "".
func (p *Project) SetFilename(path string) { p.filename = path }

// AddNode appends n. Boundary nodes and nodes already in the project are
// rejected.
func (p *Project) AddNode(n graph.Node) error {
	if n == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil node")
	}
	if graph.RoleOf(n) != graph.RoleInternal {
		return errors.New(errors.ErrCodeBoundaryNode, "cannot add a %s boundary node", graph.RoleOf(n))
	}
	if p.Index(n) >= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "node %s is already in the project", n.Kind())
	}
	p.nodes = append(p.nodes, n)
	return nil
}

// RemoveNode disconnects n from every neighbour and drops it from the
// project.
func (p *Project) RemoveNode(n graph.Node) error {
	i := p.Index(n)
	if i < 0 {
		return errors.New(errors.ErrCodeNodeNotFound, "node %s is not in the project", n.Kind())
	}
	if graph.RoleOf(n) != graph.RoleInternal {
		return errors.New(errors.ErrCodeBoundaryNode, "cannot remove the %s boundary node", graph.RoleOf(n))
	}
	graph.Detach(n)
	p.nodes = slices.Delete(p.nodes, i, i+1)
	return nil
}

// Compile generates the control script. An empty opts.Target defaults to
// the project type.
func (p *Project) Compile(opts codegen.Options) (*codegen.Script, error) {
	if opts.Target == "" {
		opts.Target = p.typ.Name
	}
	return codegen.Generate(p, opts)
}
