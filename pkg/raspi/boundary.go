package raspi

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pinmagik/pinmagik/pkg/graph"
)

// Boundary node kinds.
const (
	KindInput  graph.Kind = 0x8001
	KindOutput graph.Kind = 0x8002
)

// Default canvas positions for the boundary nodes of a new project.
var (
	InputPosition  = graph.Position{X: 1, Y: 1}
	OutputPosition = graph.Position{X: 600, Y: 1}
)

// InputNode is the graph-input boundary. Source i carries the level of
// GPIO pin Pins()[i].
type InputNode struct {
	graph.Base
	ctx      Context
	pins     []int
	pullUp   []int
	pullDown []int
}

// NewInputNode creates the input boundary for ctx.
func NewInputNode(ctx Context) *InputNode {
	n := &InputNode{ctx: ctx, pins: ctx.Pins()}
	n.Base = graph.NewBase(n, 0, len(n.pins))
	return n
}

func (n *InputNode) Kind() graph.Kind { return KindInput }
func (n *InputNode) Role() graph.Role { return graph.RoleInput }

// Context returns the hardware context the node was built for.
func (n *InputNode) Context() Context { return n.ctx }

// Pins returns the GPIO number behind each source.
func (n *InputNode) Pins() []int { return slices.Clone(n.pins) }

// Source returns the source reading pin, or false if the header lacks it.
func (n *InputNode) Source(pin int) (*graph.Source, bool) {
	i := slices.Index(n.pins, pin)
	if i < 0 {
		return nil, false
	}
	return n.Sources()[i], true
}

// SetPull configures the internal resistor of pin: "up", "down" or "off".
func (n *InputNode) SetPull(pin int, mode string) error {
	if !slices.Contains(n.pins, pin) {
		return fmt.Errorf("pin %d not available on %s header", pin, n.ctx.Revision)
	}
	n.pullUp = slices.DeleteFunc(n.pullUp, func(p int) bool { return p == pin })
	n.pullDown = slices.DeleteFunc(n.pullDown, func(p int) bool { return p == pin })
	switch mode {
	case "up":
		n.pullUp = append(n.pullUp, pin)
		slices.Sort(n.pullUp)
	case "down":
		n.pullDown = append(n.pullDown, pin)
		slices.Sort(n.pullDown)
	case "off", "":
	default:
		return fmt.Errorf("invalid pull mode %q", mode)
	}
	return nil
}

func (n *InputNode) pull(pin int) string {
	switch {
	case slices.Contains(n.pullUp, pin):
		return ", pull_up_down=GPIO.PUD_UP"
	case slices.Contains(n.pullDown, pin):
		return ", pull_up_down=GPIO.PUD_DOWN"
	}
	return ""
}

// live reports whether a node the generator emits reads src.
func live(e graph.Emitter, src *graph.Source) bool {
	return slices.ContainsFunc(src.Downstreams(), e.Live)
}

// Init sets up every pin read by a live node as an input.
func (n *InputNode) Init(e graph.Emitter) string {
	var b strings.Builder
	for i, src := range n.Sources() {
		if live(e, src) {
			fmt.Fprintf(&b, "GPIO.setup(%d, GPIO.IN%s)\n", n.pins[i], n.pull(n.pins[i]))
		}
	}
	return b.String()
}

// Loop samples every live pin once per step.
func (n *InputNode) Loop(e graph.Emitter) string {
	var b strings.Builder
	for i, src := range n.Sources() {
		if live(e, src) {
			fmt.Fprintf(&b, "%s = bool(GPIO.input(%d))\n", e.Ref(src), n.pins[i])
		}
	}
	return b.String()
}

type inputConfig struct {
	PullUp   []int `mapstructure:"pull_up,omitempty"`
	PullDown []int `mapstructure:"pull_down,omitempty"`
}

func (n *InputNode) MarshalConfig() (graph.Config, error) {
	return graph.EncodeConfig(inputConfig{PullUp: n.pullUp, PullDown: n.pullDown})
}

func (n *InputNode) UnmarshalConfig(cfg graph.Config) error {
	var c inputConfig
	if err := graph.DecodeConfig(cfg, &c); err != nil {
		return err
	}
	n.pullUp, n.pullDown = nil, nil
	for _, p := range c.PullUp {
		if err := n.SetPull(p, "up"); err != nil {
			return err
		}
	}
	for _, p := range c.PullDown {
		if err := n.SetPull(p, "down"); err != nil {
			return err
		}
	}
	return nil
}

// OutputNode is the graph-output boundary and the root of code generation.
// Sink i drives GPIO pin Pins()[i].
type OutputNode struct {
	graph.Base
	ctx       Context
	pins      []int
	activeLow []int
}

// NewOutputNode creates the output boundary for ctx.
func NewOutputNode(ctx Context) *OutputNode {
	n := &OutputNode{ctx: ctx, pins: ctx.Pins()}
	n.Base = graph.NewBase(n, len(n.pins), 0)
	return n
}

func (n *OutputNode) Kind() graph.Kind { return KindOutput }
func (n *OutputNode) Role() graph.Role { return graph.RoleOutput }

// Context returns the hardware context the node was built for.
func (n *OutputNode) Context() Context { return n.ctx }

// Pins returns the GPIO number behind each sink.
func (n *OutputNode) Pins() []int { return slices.Clone(n.pins) }

// Sink returns the sink driving pin, or false if the header lacks it.
func (n *OutputNode) Sink(pin int) (*graph.Sink, bool) {
	i := slices.Index(n.pins, pin)
	if i < 0 {
		return nil, false
	}
	return n.Sinks()[i], true
}

// SetActiveLow inverts the level written to pin.
func (n *OutputNode) SetActiveLow(pin int, on bool) error {
	if !slices.Contains(n.pins, pin) {
		return fmt.Errorf("pin %d not available on %s header", pin, n.ctx.Revision)
	}
	n.activeLow = slices.DeleteFunc(n.activeLow, func(p int) bool { return p == pin })
	if on {
		n.activeLow = append(n.activeLow, pin)
		slices.Sort(n.activeLow)
	}
	return nil
}

// Init sets up every wired pin as an output in its inactive state.
func (n *OutputNode) Init(graph.Emitter) string {
	var b strings.Builder
	for i, sink := range n.Sinks() {
		if !sink.Connected() {
			continue
		}
		initial := "GPIO.LOW"
		if slices.Contains(n.activeLow, n.pins[i]) {
			initial = "GPIO.HIGH"
		}
		fmt.Fprintf(&b, "GPIO.setup(%d, GPIO.OUT, initial=%s)\n", n.pins[i], initial)
	}
	return b.String()
}

// Loop writes every wired pin once per step.
func (n *OutputNode) Loop(e graph.Emitter) string {
	var b strings.Builder
	for i, sink := range n.Sinks() {
		if !sink.Connected() {
			continue
		}
		value := e.Input(sink)
		if slices.Contains(n.activeLow, n.pins[i]) {
			value = "not " + value
		}
		fmt.Fprintf(&b, "GPIO.output(%d, %s)\n", n.pins[i], value)
	}
	return b.String()
}

type outputConfig struct {
	ActiveLow []int `mapstructure:"active_low,omitempty"`
}

func (n *OutputNode) MarshalConfig() (graph.Config, error) {
	return graph.EncodeConfig(outputConfig{ActiveLow: n.activeLow})
}

func (n *OutputNode) UnmarshalConfig(cfg graph.Config) error {
	var c outputConfig
	if err := graph.DecodeConfig(cfg, &c); err != nil {
		return err
	}
	n.activeLow = nil
	for _, p := range c.ActiveLow {
		if err := n.SetActiveLow(p, true); err != nil {
			return err
		}
	}
	return nil
}
