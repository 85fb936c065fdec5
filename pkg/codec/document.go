package codec

import (
	"encoding/json"
	"fmt"

	"github.com/pinmagik/pinmagik/pkg/graph"
)

// Document is the persisted form of a project.
type Document struct {
	Type  TypeTag  `json:"type"`
	Nodes []Record `json:"nodes"`
}

// Record is the persisted form of one node.
type Record struct {
	Kind        graph.Kind   `json:"clsid"`
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Config      graph.Config `json:"node_info"`
	ID          uint64       `json:"id"`
	Connections []Connection `json:"connections"`
}

// Connection wires sink Sink of the owning record to source Source of the
// record whose id is Upstream.
type Connection struct {
	Sink     int
	Upstream uint64
	Source   int
}

func (c Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{c.Sink, c.Upstream, c.Source})
}

func (c *Connection) UnmarshalJSON(data []byte) error {
	var raw []json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("connection must have 3 elements, got %d", len(raw))
	}
	sink, err := raw[0].Int64()
	if err != nil {
		return fmt.Errorf("sink index: %w", err)
	}
	up, err := raw[1].Int64()
	if err != nil {
		return fmt.Errorf("upstream id: %w", err)
	}
	src, err := raw[2].Int64()
	if err != nil {
		return fmt.Errorf("source index: %w", err)
	}
	if sink < 0 || up < 0 || src < 0 {
		return fmt.Errorf("negative value in connection %s", data)
	}
	*c = Connection{Sink: int(sink), Upstream: uint64(up), Source: int(src)}
	return nil
}

// TypeTag is the project type name. It decodes from either a plain string
// or the legacy [id, name, title] array.
type TypeTag string

func (t TypeTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *TypeTag) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*t = TypeTag(name)
		return nil
	}
	var legacy []any
	if err := json.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("type must be a string or array: %w", err)
	}
	if len(legacy) < 2 {
		return fmt.Errorf("legacy type array needs at least 2 elements, got %d", len(legacy))
	}
	name, ok := legacy[1].(string)
	if !ok {
		return fmt.Errorf("legacy type name must be a string, got %T", legacy[1])
	}
	*t = TypeTag(name)
	return nil
}
