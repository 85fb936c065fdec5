package nodes

import (
	"fmt"
	"strings"

	"github.com/pinmagik/pinmagik/pkg/graph"
)

// Toggle flips its output on every rising edge of its input.
type Toggle struct {
	graph.Base
	Initial bool
}

// NewToggle returns a toggle starting low.
func NewToggle() *Toggle {
	n := &Toggle{}
	n.Base = graph.NewBase(n, 1, 1)
	return n
}

func (n *Toggle) Kind() graph.Kind { return KindToggle }

func (n *Toggle) Init(e graph.Emitter) string {
	return fmt.Sprintf("%s = {\"last\": False, \"out\": %s}\n", e.State(n), pyBool(n.Initial))
}

func (n *Toggle) Loop(e graph.Emitter) string {
	s := e.State(n)
	in := e.Input(n.Sinks()[0])
	var b strings.Builder
	fmt.Fprintf(&b, "if %s and not %s[\"last\"]:\n", in, s)
	fmt.Fprintf(&b, "    %s[\"out\"] = not %s[\"out\"]\n", s, s)
	fmt.Fprintf(&b, "%s[\"last\"] = %s\n", s, in)
	fmt.Fprintf(&b, "%s = %s[\"out\"]\n", e.Ref(n.Sources()[0]), s)
	return b.String()
}

type toggleConfig struct {
	Initial bool `mapstructure:"initial"`
}

func (n *Toggle) MarshalConfig() (graph.Config, error) {
	return graph.EncodeConfig(toggleConfig{Initial: n.Initial})
}

func (n *Toggle) UnmarshalConfig(cfg graph.Config) error {
	var c toggleConfig
	if err := graph.DecodeConfig(cfg, &c); err != nil {
		return err
	}
	n.Initial = c.Initial
	return nil
}

// Edge emits a one-step pulse on every rising edge of its input.
type Edge struct {
	graph.Base
}

// NewEdge returns a rising edge detector.
func NewEdge() *Edge {
	n := &Edge{}
	n.Base = graph.NewBase(n, 1, 1)
	return n
}

func (n *Edge) Kind() graph.Kind { return KindEdge }

func (n *Edge) Init(e graph.Emitter) string {
	return fmt.Sprintf("%s = False\n", e.State(n))
}

func (n *Edge) Loop(e graph.Emitter) string {
	s := e.State(n)
	in := e.Input(n.Sinks()[0])
	return fmt.Sprintf("%s = %s and not %s\n%s = %s\n", e.Ref(n.Sources()[0]), in, s, s, in)
}
