package nodes

import (
	"fmt"
	"strings"

	"github.com/pinmagik/pinmagik/pkg/graph"
)

// DefaultClockPeriod is the half period of a new clock, in milliseconds.
const DefaultClockPeriod = 500

// Clock flips its output every PeriodMS milliseconds.
type Clock struct {
	graph.Base
	PeriodMS int
}

// NewClock returns a clock with [DefaultClockPeriod].
func NewClock() *Clock {
	n := &Clock{PeriodMS: DefaultClockPeriod}
	n.Base = graph.NewBase(n, 0, 1)
	return n
}

func (n *Clock) Kind() graph.Kind { return KindClock }

func (n *Clock) Init(e graph.Emitter) string {
	return fmt.Sprintf("%s = {\"next\": time() + %s, \"out\": False}\n", e.State(n), pySeconds(n.PeriodMS))
}

func (n *Clock) Loop(e graph.Emitter) string {
	s := e.State(n)
	var b strings.Builder
	fmt.Fprintf(&b, "if time() >= %s[\"next\"]:\n", s)
	fmt.Fprintf(&b, "    %s[\"next\"] += %s\n", s, pySeconds(n.PeriodMS))
	fmt.Fprintf(&b, "    %s[\"out\"] = not %s[\"out\"]\n", s, s)
	fmt.Fprintf(&b, "%s = %s[\"out\"]\n", e.Ref(n.Sources()[0]), s)
	return b.String()
}

type clockConfig struct {
	PeriodMS int `mapstructure:"period_ms"`
}

func (n *Clock) MarshalConfig() (graph.Config, error) {
	return graph.EncodeConfig(clockConfig{PeriodMS: n.PeriodMS})
}

func (n *Clock) UnmarshalConfig(cfg graph.Config) error {
	c := clockConfig{PeriodMS: DefaultClockPeriod}
	if err := graph.DecodeConfig(cfg, &c); err != nil {
		return err
	}
	if c.PeriodMS <= 0 {
		return fmt.Errorf("period_ms must be positive, got %d", c.PeriodMS)
	}
	n.PeriodMS = c.PeriodMS
	return nil
}

// DefaultDelay is the on-delay of a new delay node, in milliseconds.
const DefaultDelay = 1000

// Delay raises its output once its input has been high for DelayMS
// milliseconds and drops it as soon as the input falls.
type Delay struct {
	graph.Base
	DelayMS int
}

// NewDelay returns a delay node with [DefaultDelay].
func NewDelay() *Delay {
	n := &Delay{DelayMS: DefaultDelay}
	n.Base = graph.NewBase(n, 1, 1)
	return n
}

func (n *Delay) Kind() graph.Kind { return KindDelay }

func (n *Delay) Init(e graph.Emitter) string {
	return fmt.Sprintf("%s = None\n", e.State(n))
}

func (n *Delay) Loop(e graph.Emitter) string {
	s := e.State(n)
	var b strings.Builder
	fmt.Fprintf(&b, "if %s:\n", e.Input(n.Sinks()[0]))
	fmt.Fprintf(&b, "    if %s is None:\n", s)
	fmt.Fprintf(&b, "        %s = time()\n", s)
	b.WriteString("else:\n")
	fmt.Fprintf(&b, "    %s = None\n", s)
	fmt.Fprintf(&b, "%s = %s is not None and time() - %s >= %s\n", e.Ref(n.Sources()[0]), s, s, pySeconds(n.DelayMS))
	return b.String()
}

type delayConfig struct {
	DelayMS int `mapstructure:"delay_ms"`
}

func (n *Delay) MarshalConfig() (graph.Config, error) {
	return graph.EncodeConfig(delayConfig{DelayMS: n.DelayMS})
}

func (n *Delay) UnmarshalConfig(cfg graph.Config) error {
	c := delayConfig{DelayMS: DefaultDelay}
	if err := graph.DecodeConfig(cfg, &c); err != nil {
		return err
	}
	if c.DelayMS < 0 {
		return fmt.Errorf("delay_ms must not be negative, got %d", c.DelayMS)
	}
	n.DelayMS = c.DelayMS
	return nil
}
