package catalog

import (
	"slices"

	"github.com/samber/lo"

	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/graph"
	"github.com/pinmagik/pinmagik/pkg/raspi"
)

// Entry describes one node kind.
type Entry struct {
	Kind        graph.Kind
	Name        string   // Short name used on the command line
	Category    string   // Menu grouping
	Description string   // One line help text
	Types       []string // Project types the kind supports; empty means all
	New         func(ctx raspi.Context) graph.Node
}

// Supports reports whether the kind may be placed in a project of the
// given type.
func (e Entry) Supports(projectType string) bool {
	return len(e.Types) == 0 || slices.Contains(e.Types, projectType)
}

// Registry is a kind-indexed table of entries.
type Registry struct {
	entries map[graph.Kind]Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[graph.Kind]Entry)}
}

// Register adds e. Registering a kind twice is an error.
func (r *Registry) Register(e Entry) error {
	if e.New == nil {
		return errors.New(errors.ErrCodeInvalidInput, "entry %s (%s) has no constructor", e.Kind, e.Name)
	}
	if prev, ok := r.entries[e.Kind]; ok {
		return errors.New(errors.ErrCodeInvalidInput, "kind %s already registered as %q", e.Kind, prev.Name)
	}
	r.entries[e.Kind] = e
	return nil
}

// Lookup returns the entry for kind.
func (r *Registry) Lookup(kind graph.Kind) (Entry, bool) {
	e, ok := r.entries[kind]
	return e, ok
}

// LookupName returns the entry whose Name is name.
func (r *Registry) LookupName(name string) (Entry, bool) {
	return lo.Find(lo.Values(r.entries), func(e Entry) bool { return e.Name == name })
}

// Entries returns every entry ordered by kind.
func (r *Registry) Entries() []Entry {
	entries := lo.Values(r.entries)
	slices.SortFunc(entries, func(a, b Entry) int { return int(a.Kind) - int(b.Kind) })
	return entries
}

// For returns the entries usable in projects of projectType, ordered by kind.
func (r *Registry) For(projectType string) []Entry {
	return lo.Filter(r.Entries(), func(e Entry, _ int) bool { return e.Supports(projectType) })
}

// NewNode builds a fresh node of kind for a project of projectType.
func (r *Registry) NewNode(kind graph.Kind, projectType string) (graph.Node, error) {
	t, err := raspi.LookupType(projectType)
	if err != nil {
		return nil, err
	}
	e, ok := r.entries[kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownNodeKind, "unknown node kind %s", kind)
	}
	if !e.Supports(projectType) {
		return nil, errors.New(errors.ErrCodeUnknownNodeKind, "node kind %s (%s) is not available for %s projects", kind, e.Name, projectType)
	}
	return e.New(t.Context()), nil
}
