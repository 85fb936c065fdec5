package codec

import (
	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/graph"
)

type serializer struct {
	done    map[graph.ID]bool
	records []Record
}

func (s *serializer) visit(n graph.Node) error {
	if s.done[n.ID()] {
		return nil
	}
	s.done[n.ID()] = true

	var conns []Connection
	for _, sink := range n.Sinks() {
		src, ok := sink.Upstream()
		if !ok {
			continue
		}
		if err := s.visit(src.Node()); err != nil {
			return err
		}
		conns = append(conns, Connection{
			Sink:     sink.Index(),
			Upstream: uint64(src.Node().ID()),
			Source:   src.Index(),
		})
	}

	cfg, err := n.MarshalConfig()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal config of node %s", n.Kind())
	}
	if cfg == nil {
		cfg = graph.Config{}
	}
	if conns == nil {
		conns = []Connection{}
	}
	pos := n.Position()
	s.records = append(s.records, Record{
		Kind:        n.Kind(),
		X:           pos.X,
		Y:           pos.Y,
		Config:      cfg,
		ID:          uint64(n.ID()),
		Connections: conns,
	})
	return nil
}

// Serialize captures g as a document of the given project type.
//
// Every node appears exactly once. Nodes reachable from the output boundary
// come first, each after the nodes feeding it; the rest follow in graph
// order, again dependency-first.
func Serialize(g graph.Graph, projectType string) (*Document, error) {
	if g == nil || g.OutputNode() == nil {
		return nil, errors.New(errors.ErrCodeInvalidProject, "graph has no output node")
	}
	s := &serializer{done: make(map[graph.ID]bool)}
	if err := s.visit(g.OutputNode()); err != nil {
		return nil, err
	}
	for _, n := range g.Nodes() {
		if err := s.visit(n); err != nil {
			return nil, err
		}
	}
	return &Document{Type: TypeTag(projectType), Nodes: s.records}, nil
}
