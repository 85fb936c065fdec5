package nodes

import (
	"fmt"

	"github.com/pinmagik/pinmagik/pkg/graph"
)

// Constant drives its single source with a fixed level.
type Constant struct {
	graph.Base
	Value bool
}

// NewConstant returns a constant node driving false.
func NewConstant() *Constant {
	n := &Constant{}
	n.Base = graph.NewBase(n, 0, 1)
	return n
}

func (n *Constant) Kind() graph.Kind { return KindConstant }

func (n *Constant) Loop(e graph.Emitter) string {
	return fmt.Sprintf("%s = %s\n", e.Ref(n.Sources()[0]), pyBool(n.Value))
}

type constantConfig struct {
	Value bool `mapstructure:"value"`
}

func (n *Constant) MarshalConfig() (graph.Config, error) {
	return graph.EncodeConfig(constantConfig{Value: n.Value})
}

func (n *Constant) UnmarshalConfig(cfg graph.Config) error {
	var c constantConfig
	if err := graph.DecodeConfig(cfg, &c); err != nil {
		return err
	}
	n.Value = c.Value
	return nil
}
