package graph

import (
	"testing"
)

type testNode struct {
	Base
	kind Kind
	role Role
}

func newTestNode(kind Kind, sinks, sources int) *testNode {
	n := &testNode{kind: kind}
	n.Base = NewBase(n, sinks, sources)
	return n
}

func (n *testNode) Kind() Kind { return n.kind }
func (n *testNode) Role() Role { return n.role }

func TestNewBase(t *testing.T) {
	n := newTestNode(0x0101, 2, 1)

	if got := len(n.Sinks()); got != 2 {
		t.Fatalf("len(Sinks()) = %d, want 2", got)
	}
	if got := len(n.Sources()); got != 1 {
		t.Fatalf("len(Sources()) = %d, want 1", got)
	}
	for i, s := range n.Sinks() {
		if s.Index() != i {
			t.Errorf("Sinks()[%d].Index() = %d", i, s.Index())
		}
		if s.Node() != Node(n) {
			t.Errorf("Sinks()[%d].Node() is not the owner", i)
		}
		if s.Connected() {
			t.Errorf("Sinks()[%d] should start unconnected", i)
		}
	}
	if n.Sources()[0].Node() != Node(n) {
		t.Error("Sources()[0].Node() is not the owner")
	}
}

func TestNextIDUnique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		n := newTestNode(1, 0, 0)
		if n.ID() == 0 {
			t.Fatal("ID() = 0, tokens start at 1")
		}
		if seen[n.ID()] {
			t.Fatalf("duplicate ID %d", n.ID())
		}
		seen[n.ID()] = true
	}
}

func TestConnect(t *testing.T) {
	a := newTestNode(1, 0, 1)
	b := newTestNode(2, 1, 1)

	Connect(b.Sinks()[0], a.Sources()[0])

	src, ok := b.Sinks()[0].Upstream()
	if !ok || src != a.Sources()[0] {
		t.Fatalf("Upstream() = %v, %v; want a.Sources()[0]", src, ok)
	}
	downs := a.Sources()[0].Downstreams()
	if len(downs) != 1 || downs[0] != b.Sinks()[0] {
		t.Fatalf("Downstreams() = %v, want [b.Sinks()[0]]", downs)
	}
	if !a.Sources()[0].Used() {
		t.Error("Used() = false, want true")
	}
}

func TestConnectOverwrites(t *testing.T) {
	a := newTestNode(1, 0, 1)
	c := newTestNode(1, 0, 1)
	b := newTestNode(2, 1, 0)

	Connect(b.Sinks()[0], a.Sources()[0])
	Connect(b.Sinks()[0], c.Sources()[0])

	src, _ := b.Sinks()[0].Upstream()
	if src != c.Sources()[0] {
		t.Error("last Connect should win")
	}
	if a.Sources()[0].Used() {
		t.Error("previous source still lists the sink")
	}
	if got := len(c.Sources()[0].Downstreams()); got != 1 {
		t.Errorf("len(Downstreams()) = %d, want 1", got)
	}
}

func TestConnectSameSourceTwice(t *testing.T) {
	a := newTestNode(1, 0, 1)
	b := newTestNode(2, 1, 0)

	Connect(b.Sinks()[0], a.Sources()[0])
	Connect(b.Sinks()[0], a.Sources()[0])

	if got := len(a.Sources()[0].Downstreams()); got != 1 {
		t.Errorf("len(Downstreams()) = %d, want 1", got)
	}
}

func TestFanOut(t *testing.T) {
	a := newTestNode(1, 0, 1)
	b := newTestNode(2, 1, 0)
	c := newTestNode(2, 1, 0)

	Connect(b.Sinks()[0], a.Sources()[0])
	Connect(c.Sinks()[0], a.Sources()[0])

	downs := a.Sources()[0].Downstreams()
	if len(downs) != 2 {
		t.Fatalf("len(Downstreams()) = %d, want 2", len(downs))
	}
	if downs[0] != b.Sinks()[0] || downs[1] != c.Sinks()[0] {
		t.Error("Downstreams() not in connection order")
	}
}

func TestDisconnect(t *testing.T) {
	a := newTestNode(1, 0, 1)
	b := newTestNode(2, 1, 0)

	Disconnect(b.Sinks()[0]) // no-op on unconnected sink

	Connect(b.Sinks()[0], a.Sources()[0])
	Disconnect(b.Sinks()[0])

	if b.Sinks()[0].Connected() {
		t.Error("sink still connected after Disconnect")
	}
	if a.Sources()[0].Used() {
		t.Error("source still lists the sink after Disconnect")
	}
}

func TestDetach(t *testing.T) {
	a := newTestNode(1, 0, 1)
	b := newTestNode(2, 1, 1)
	c := newTestNode(3, 1, 0)

	Connect(b.Sinks()[0], a.Sources()[0])
	Connect(c.Sinks()[0], b.Sources()[0])

	Detach(b)

	if a.Sources()[0].Used() {
		t.Error("upstream source still feeds detached node")
	}
	if c.Sinks()[0].Connected() {
		t.Error("downstream sink still reads detached node")
	}
}

func TestUpstreams(t *testing.T) {
	a := newTestNode(1, 0, 2)
	b := newTestNode(1, 0, 1)
	gate := newTestNode(2, 3, 1)

	Connect(gate.Sinks()[0], b.Sources()[0])
	Connect(gate.Sinks()[1], a.Sources()[0])
	Connect(gate.Sinks()[2], a.Sources()[1])

	ups := Upstreams(gate)
	if len(ups) != 2 {
		t.Fatalf("len(Upstreams()) = %d, want 2", len(ups))
	}
	if ups[0] != Node(b) || ups[1] != Node(a) {
		t.Error("Upstreams() not in sink order")
	}
}

func TestEdges(t *testing.T) {
	a := newTestNode(1, 0, 1)
	b := newTestNode(2, 2, 0)
	Connect(b.Sinks()[1], a.Sources()[0])

	edges := Edges([]Node{a, b})
	if len(edges) != 1 {
		t.Fatalf("len(Edges()) = %d, want 1", len(edges))
	}
	if edges[0].Sink != b.Sinks()[1] || edges[0].Source != a.Sources()[0] {
		t.Errorf("Edges()[0] = %+v", edges[0])
	}
}

func TestRoleOf(t *testing.T) {
	in := newTestNode(0x8001, 0, 1)
	in.role = RoleInput

	if got := RoleOf(in); got != RoleInput {
		t.Errorf("RoleOf(in) = %v, want %v", got, RoleInput)
	}

	var plain Node = &plainNode{}
	if got := RoleOf(plain); got != RoleInternal {
		t.Errorf("RoleOf(plain) = %v, want %v", got, RoleInternal)
	}
}

type plainNode struct{ Base }

func (*plainNode) Kind() Kind { return 7 }

func TestKindString(t *testing.T) {
	if got := Kind(0x8001).String(); got != "0x8001" {
		t.Errorf("String() = %q, want %q", got, "0x8001")
	}
	if got := Kind(1).String(); got != "0x0001" {
		t.Errorf("String() = %q, want %q", got, "0x0001")
	}
}

func TestBaseDefaults(t *testing.T) {
	n := newTestNode(1, 0, 0)
	n.SetPosition(Position{X: 10, Y: 20})
	if got := n.Position(); got != (Position{X: 10, Y: 20}) {
		t.Errorf("Position() = %+v", got)
	}
	cfg, err := n.MarshalConfig()
	if err != nil || len(cfg) != 0 {
		t.Errorf("MarshalConfig() = %v, %v; want empty", cfg, err)
	}
	if err := n.UnmarshalConfig(Config{"x": 1}); err != nil {
		t.Errorf("UnmarshalConfig() error = %v", err)
	}
	if n.Init(nil) != "" || n.Loop(nil) != "" {
		t.Error("Base fragments should be empty")
	}
}

func TestDecodeConfig(t *testing.T) {
	type settings struct {
		Period int   `mapstructure:"period"`
		Pins   []int `mapstructure:"pins"`
		On     bool  `mapstructure:"on"`
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"whole json numbers", Config{"period": float64(250), "pins": []any{float64(4), float64(17)}}, false},
		{"go ints", Config{"period": 250, "pins": []any{4}, "on": true}, false},
		{"single pin", Config{"pins": 17}, false},
		{"single fractional pin", Config{"pins": 17.5}, true},
		{"fractional number", Config{"period": 2.7}, true},
		{"fractional element", Config{"pins": []any{4.9}}, true},
		{"numeric string", Config{"period": "300"}, true},
		{"string bool", Config{"on": "0"}, true},
		{"unknown key", Config{"speed": 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got settings
			err := DecodeConfig(tt.cfg, &got)
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeConfigWholeNumber(t *testing.T) {
	var got struct {
		Period int `mapstructure:"period"`
	}
	if err := DecodeConfig(Config{"period": float64(250)}, &got); err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if got.Period != 250 {
		t.Errorf("Period = %d, want 250", got.Period)
	}
}
