package cli

import (
	"strconv"
	"strings"

	"github.com/pinmagik/pinmagik/pkg/catalog"
	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/graph"
	"github.com/pinmagik/pinmagik/pkg/project"
)

// pinned is implemented by the boundary nodes.
type pinned interface {
	Pins() []int
}

// nodeAt resolves a node reference: an index, "in" or "out".
func nodeAt(p *project.Project, ref string) (graph.Node, int, error) {
	switch strings.ToLower(ref) {
	case "in", "input":
		return p.InputNode(), 0, nil
	case "out", "output":
		return p.OutputNode(), 1, nil
	}
	i, err := strconv.Atoi(ref)
	if err != nil {
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "invalid node reference %q (want an index, in or out)", ref)
	}
	n, err := p.Node(i)
	if err != nil {
		return nil, 0, err
	}
	return n, i, nil
}

// portAt resolves NODE:PORT. PORT is an index, or gpioN on boundary nodes.
func portAt(p *project.Project, addr string) (graph.Node, int, error) {
	ref, port, ok := strings.Cut(addr, ":")
	if !ok {
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "invalid port %q (want NODE:PORT)", addr)
	}
	n, _, err := nodeAt(p, ref)
	if err != nil {
		return nil, 0, err
	}

	if gpio, ok := strings.CutPrefix(strings.ToLower(port), "gpio"); ok {
		pin, err := strconv.Atoi(gpio)
		pn, isPinned := n.(pinned)
		if err != nil || !isPinned {
			return nil, 0, errors.New(errors.ErrCodeInvalidInput, "invalid port %q", addr)
		}
		for i, got := range pn.Pins() {
			if got == pin {
				return n, i, nil
			}
		}
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "GPIO %d is not on this board", pin)
	}

	i, err := strconv.Atoi(port)
	if err != nil || i < 0 {
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "invalid port %q", addr)
	}
	return n, i, nil
}

func sinkAt(p *project.Project, addr string) (*graph.Sink, error) {
	n, i, err := portAt(p, addr)
	if err != nil {
		return nil, err
	}
	if i >= len(n.Sinks()) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: node has %d sinks", addr, len(n.Sinks()))
	}
	return n.Sinks()[i], nil
}

func sourceAt(p *project.Project, addr string) (*graph.Source, error) {
	n, i, err := portAt(p, addr)
	if err != nil {
		return nil, err
	}
	if i >= len(n.Sources()) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: node has %d sources", addr, len(n.Sources()))
	}
	return n.Sources()[i], nil
}

// entryFor resolves a kind given by name ("and"), hex id ("0x0101") or
// decimal id.
func entryFor(reg *catalog.Registry, s string) (catalog.Entry, error) {
	if e, ok := reg.LookupName(strings.ToLower(s)); ok {
		return e, nil
	}
	if v, err := strconv.ParseUint(s, 0, 16); err == nil {
		if e, ok := reg.Lookup(graph.Kind(v)); ok {
			return e, nil
		}
	}
	return catalog.Entry{}, errors.New(errors.ErrCodeUnknownNodeKind, "unknown node kind %q", s)
}

// parseAssignments turns key=value arguments into a config patch.
func parseAssignments(args []string) (graph.Config, error) {
	cfg := graph.Config{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid assignment %q (want key=value)", arg)
		}
		cfg[key] = parseValue(value)
	}
	return cfg, nil
}

// parseValue guesses the type of a command-line value. Comma separated
// values become lists and an empty value an empty list.
func parseValue(s string) any {
	if s == "" {
		return []any{}
	}
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = parseValue(strings.TrimSpace(p))
		}
		return out
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
