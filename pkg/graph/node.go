package graph

import (
	"fmt"
	"sync/atomic"
)

// ID is a process-lifetime-unique node identity token.
type ID uint64

var lastID atomic.Uint64

// NextID returns a fresh identity token. Tokens start at 1.
func NextID() ID { return ID(lastID.Add(1)) }

// Kind identifies a node kind in the catalog and in persisted documents.
type Kind uint16

// String formats the kind as a four digit hex literal, e.g. "0x8001".
func (k Kind) String() string { return fmt.Sprintf("0x%04x", uint16(k)) }

// Position is the node's location on the editor canvas.
type Position struct {
	X float64
	Y float64
}

// Config is the node-defined configuration sub-document.
// It must survive a JSON round trip.
type Config map[string]any

// Node is the capability contract of every node kind.
type Node interface {
	// ID returns the node's identity token.
	ID() ID
	// Kind returns the stable kind identifier.
	Kind() Kind
	// Sinks returns the node's input ports in index order.
	Sinks() []*Sink
	// Sources returns the node's output ports in index order.
	Sources() []*Source
	// Position returns the canvas position.
	Position() Position
	// SetPosition moves the node on the canvas.
	SetPosition(Position)
	// Init returns the node's fragment for the init pass.
	Init(e Emitter) string
	// Loop returns the node's fragment for the loop pass.
	Loop(e Emitter) string
	// MarshalConfig returns the node's configuration.
	MarshalConfig() (Config, error)
	// UnmarshalConfig restores configuration produced by MarshalConfig.
	UnmarshalConfig(Config) error
}

// Role distinguishes the two boundary nodes from ordinary nodes.
type Role int

const (
	// RoleInternal is an ordinary node.
	RoleInternal Role = iota
	// RoleInput is the graph-input boundary node.
	RoleInput
	// RoleOutput is the graph-output boundary node.
	RoleOutput
)

// String returns "internal", "input" or "output".
func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	default:
		return "internal"
	}
}

// Boundary is implemented by the graph-input and graph-output nodes.
type Boundary interface {
	Role() Role
}

// RoleOf returns the role of n. Nodes that do not implement [Boundary]
// are internal.
func RoleOf(n Node) Role {
	if b, ok := n.(Boundary); ok {
		return b.Role()
	}
	return RoleInternal
}

// Base implements the kind-independent parts of [Node].
// Concrete kinds embed it and provide Kind plus whatever fragments and
// configuration they need.
type Base struct {
	id      ID
	sinks   []*Sink
	sources []*Source
	pos     Position
}

// NewBase allocates an identity and the fixed port slices for owner.
// It must be called exactly once, while constructing owner.
func NewBase(owner Node, sinks, sources int) Base {
	b := Base{
		id:      NextID(),
		sinks:   make([]*Sink, sinks),
		sources: make([]*Source, sources),
	}
	for i := range b.sinks {
		b.sinks[i] = &Sink{node: owner, index: i}
	}
	for i := range b.sources {
		b.sources[i] = &Source{node: owner, index: i}
	}
	return b
}

func (b *Base) ID() ID                 { return b.id }
func (b *Base) Sinks() []*Sink         { return b.sinks }
func (b *Base) Sources() []*Source     { return b.sources }
func (b *Base) Position() Position     { return b.pos }
func (b *Base) SetPosition(p Position) { b.pos = p }

// Init emits nothing.
func (b *Base) Init(Emitter) string { return "" }

// Loop emits nothing.
func (b *Base) Loop(Emitter) string { return "" }

// MarshalConfig returns an empty configuration.
func (b *Base) MarshalConfig() (Config, error) { return Config{}, nil }

// UnmarshalConfig accepts any configuration and ignores it.
func (b *Base) UnmarshalConfig(Config) error { return nil }
