package nodes

import (
	"fmt"

	"github.com/pinmagik/pinmagik/pkg/graph"
)

// Op is a boolean operator implemented by a [Gate].
type Op struct {
	kind   graph.Kind
	inputs int
	format string // Python expression; %[1]s and %[2]s are the inputs
}

var (
	OpAnd  = Op{KindAnd, 2, "(%[1]s and %[2]s)"}
	OpOr   = Op{KindOr, 2, "(%[1]s or %[2]s)"}
	OpNot  = Op{KindNot, 1, "(not %[1]s)"}
	OpXor  = Op{KindXor, 2, "(%[1]s != %[2]s)"}
	OpNand = Op{KindNand, 2, "(not (%[1]s and %[2]s))"}
	OpNor  = Op{KindNor, 2, "(not (%[1]s or %[2]s))"}
)

// Gate is a combinational logic gate with one output.
type Gate struct {
	graph.Base
	op Op
}

// NewGate returns a gate computing op.
func NewGate(op Op) *Gate {
	n := &Gate{op: op}
	n.Base = graph.NewBase(n, op.inputs, 1)
	return n
}

func (n *Gate) Kind() graph.Kind { return n.op.kind }

func (n *Gate) Loop(e graph.Emitter) string {
	args := make([]any, len(n.Sinks()))
	for i, sink := range n.Sinks() {
		args[i] = e.Input(sink)
	}
	return fmt.Sprintf("%s = %s\n", e.Ref(n.Sources()[0]), fmt.Sprintf(n.op.format, args...))
}
