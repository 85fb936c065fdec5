package nodes

import (
	"strconv"

	"github.com/pinmagik/pinmagik/pkg/graph"
)

// Node kinds. Boundary kinds 0x8001 and 0x8002 live in package raspi.
const (
	KindConstant graph.Kind = 0x0001

	KindAnd  graph.Kind = 0x0101
	KindOr   graph.Kind = 0x0102
	KindNot  graph.Kind = 0x0103
	KindXor  graph.Kind = 0x0104
	KindNand graph.Kind = 0x0105
	KindNor  graph.Kind = 0x0106

	KindClock  graph.Kind = 0x0201
	KindToggle graph.Kind = 0x0202
	KindEdge   graph.Kind = 0x0203
	KindDelay  graph.Kind = 0x0204
)

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// pySeconds formats a millisecond count as a Python float literal in seconds.
func pySeconds(ms int) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', -1, 64)
}
