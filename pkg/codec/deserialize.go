package codec

import (
	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/graph"
	"github.com/pinmagik/pinmagik/pkg/raspi"
)

// Factory builds a fresh node of a registered kind.
type Factory interface {
	NewNode(kind graph.Kind, projectType string) (graph.Node, error)
}

// Result is a graph restored by [Deserialize]. Nodes()[0] is the input
// boundary and Nodes()[1] the output boundary.
type Result struct {
	Type  string
	nodes []graph.Node
}

func (r *Result) Nodes() []graph.Node    { return r.nodes }
func (r *Result) InputNode() graph.Node  { return r.nodes[0] }
func (r *Result) OutputNode() graph.Node { return r.nodes[1] }

// Deserialize rebuilds the graph described by doc.
//
// All nodes are created before any connection is made. On failure no
// result is returned; the error carries UNKNOWN_PROJECT_TYPE,
// UNKNOWN_NODE_KIND, MALFORMED_DOCUMENT or DANGLING_CONNECTION.
func Deserialize(doc *Document, f Factory) (*Result, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeMalformedDocument, "empty document")
	}
	t, err := raspi.LookupType(string(doc.Type))
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]graph.Node, len(doc.Nodes))
	built := make([]graph.Node, len(doc.Nodes))
	var in, out graph.Node
	var rest []graph.Node

	for i, rec := range doc.Nodes {
		n, err := f.NewNode(rec.Kind, t.Name)
		if err != nil {
			if errors.Is(err, errors.ErrCodeUnknownNodeKind) {
				return nil, errors.Wrap(errors.ErrCodeUnknownNodeKind, err, "record %d", i)
			}
			return nil, err
		}
		cfg := rec.Config
		if cfg == nil {
			cfg = graph.Config{}
		}
		if err := n.UnmarshalConfig(cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "record %d (%s): node_info", i, rec.Kind)
		}
		n.SetPosition(graph.Position{X: rec.X, Y: rec.Y})

		if _, dup := byID[rec.ID]; dup {
			return nil, errors.New(errors.ErrCodeMalformedDocument, "record %d: duplicate id %d", i, rec.ID)
		}
		byID[rec.ID] = n
		built[i] = n

		switch graph.RoleOf(n) {
		case graph.RoleInput:
			if in != nil {
				return nil, errors.New(errors.ErrCodeMalformedDocument, "record %d: second input node", i)
			}
			in = n
		case graph.RoleOutput:
			if out != nil {
				return nil, errors.New(errors.ErrCodeMalformedDocument, "record %d: second output node", i)
			}
			out = n
		default:
			rest = append(rest, n)
		}
	}
	if in == nil {
		return nil, errors.New(errors.ErrCodeMalformedDocument, "document has no input node")
	}
	if out == nil {
		return nil, errors.New(errors.ErrCodeMalformedDocument, "document has no output node")
	}

	for i, rec := range doc.Nodes {
		n := built[i]
		for _, c := range rec.Connections {
			up, ok := byID[c.Upstream]
			if !ok {
				return nil, errors.New(errors.ErrCodeDanglingConnection,
					"record %d: connection to unknown id %d", i, c.Upstream)
			}
			if c.Sink < 0 || c.Sink >= len(n.Sinks()) {
				return nil, errors.New(errors.ErrCodeDanglingConnection,
					"record %d: sink %d out of range (node %s has %d)", i, c.Sink, n.Kind(), len(n.Sinks()))
			}
			if c.Source < 0 || c.Source >= len(up.Sources()) {
				return nil, errors.New(errors.ErrCodeDanglingConnection,
					"record %d: source %d of id %d out of range (node %s has %d)", i, c.Source, c.Upstream, up.Kind(), len(up.Sources()))
			}
			graph.Connect(n.Sinks()[c.Sink], up.Sources()[c.Source])
		}
	}

	return &Result{Type: t.Name, nodes: append([]graph.Node{in, out}, rest...)}, nil
}
