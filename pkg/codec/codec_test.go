package codec

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pinmagik/pinmagik/pkg/catalog"
	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/graph"
	"github.com/pinmagik/pinmagik/pkg/nodes"
	"github.com/pinmagik/pinmagik/pkg/raspi"
)

type testGraph struct {
	nodes []graph.Node
}

func (g *testGraph) Nodes() []graph.Node    { return g.nodes }
func (g *testGraph) InputNode() graph.Node  { return g.nodes[0] }
func (g *testGraph) OutputNode() graph.Node { return g.nodes[1] }

// sampleGraph wires input pin 17 through a NOT gate to output pin 18 and
// adds a configured clock and a constant that the output does not reach.
func sampleGraph(t *testing.T) *testGraph {
	t.Helper()
	ctx := raspi.NewContext(raspi.Rev1)
	in := raspi.NewInputNode(ctx)
	out := raspi.NewOutputNode(ctx)
	if err := in.SetPull(17, "up"); err != nil {
		t.Fatal(err)
	}
	if err := out.SetActiveLow(18, true); err != nil {
		t.Fatal(err)
	}
	in.SetPosition(raspi.InputPosition)
	out.SetPosition(raspi.OutputPosition)

	not := nodes.NewGate(nodes.OpNot)
	not.SetPosition(graph.Position{X: 200, Y: 40.5})
	clock := nodes.NewClock()
	clock.PeriodMS = 250
	constant := nodes.NewConstant()
	constant.Value = true

	src, _ := in.Source(17)
	sink, _ := out.Sink(18)
	graph.Connect(not.Sinks()[0], src)
	graph.Connect(sink, not.Sources()[0])
	graph.Connect(out.Sinks()[0], constant.Sources()[0])

	return &testGraph{nodes: []graph.Node{in, out, not, clock, constant}}
}

type shapeNode struct {
	Kind   graph.Kind
	Pos    graph.Position
	Config graph.Config
	Wires  [][3]int // sink, upstream kind, source
}

// shape describes g independent of node identities and of the order of
// internal nodes. Kinds must be unique within g.
func shape(t *testing.T, g graph.Graph) []shapeNode {
	t.Helper()
	var out []shapeNode
	for _, n := range g.Nodes() {
		cfg, err := n.MarshalConfig()
		if err != nil {
			t.Fatalf("MarshalConfig() error = %v", err)
		}
		s := shapeNode{Kind: n.Kind(), Pos: n.Position(), Config: cfg}
		for _, sink := range n.Sinks() {
			if src, ok := sink.Upstream(); ok {
				s.Wires = append(s.Wires, [3]int{sink.Index(), int(src.Node().Kind()), src.Index()})
			}
		}
		out = append(out, s)
	}
	slices.SortFunc(out[2:], func(a, b shapeNode) int { return int(a.Kind) - int(b.Kind) })
	return out
}

func roundTrip(t *testing.T, g graph.Graph) *Result {
	t.Helper()
	doc, err := Serialize(g, raspi.TypeRaspi)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	var buf bytes.Buffer
	if err := WriteDocument(doc, &buf); err != nil {
		t.Fatalf("WriteDocument() error = %v", err)
	}
	doc2, err := ReadDocument(&buf)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	res, err := Deserialize(doc2, catalog.Default())
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	return res
}

func TestRoundTrip(t *testing.T) {
	g := sampleGraph(t)
	res := roundTrip(t, g)

	if res.Type != raspi.TypeRaspi {
		t.Errorf("Type = %q, want %q", res.Type, raspi.TypeRaspi)
	}
	if graph.RoleOf(res.Nodes()[0]) != graph.RoleInput || graph.RoleOf(res.Nodes()[1]) != graph.RoleOutput {
		t.Fatal("boundary nodes not at positions 0 and 1")
	}

	got := shape(t, res)
	if diff := cmp.Diff(shape(t, g), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	again := shape(t, roundTrip(t, res))
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("second round trip mismatch (-first +second):\n%s", diff)
	}

	for _, n := range res.Nodes() {
		for _, orig := range g.Nodes() {
			if n.ID() == orig.ID() {
				t.Errorf("restored node reuses id %d", n.ID())
			}
		}
	}
}

func TestSerializeOrder(t *testing.T) {
	g := sampleGraph(t)
	doc, err := Serialize(g, raspi.TypeRaspi)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var kinds []graph.Kind
	for _, r := range doc.Nodes {
		kinds = append(kinds, r.Kind)
	}
	want := []graph.Kind{nodes.KindConstant, raspi.KindInput, nodes.KindNot, raspi.KindOutput, nodes.KindClock}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("record order mismatch (-want +got):\n%s", diff)
	}

	out := doc.Nodes[3]
	wantConns := []Connection{
		{Sink: 0, Upstream: uint64(g.nodes[4].ID()), Source: 0},
		{Sink: 11, Upstream: uint64(g.nodes[2].ID()), Source: 0},
	}
	if diff := cmp.Diff(wantConns, out.Connections); diff != "" {
		t.Errorf("output connections mismatch (-want +got):\n%s", diff)
	}
	if out.Config["active_low"] == nil {
		t.Errorf("output config = %v", out.Config)
	}
}

func TestSerializeVisitsEachNodeOnce(t *testing.T) {
	ctx := raspi.NewContext(raspi.Rev1)
	in, out := raspi.NewInputNode(ctx), raspi.NewOutputNode(ctx)
	c := nodes.NewConstant()
	d := nodes.NewGate(nodes.OpNot)
	e := nodes.NewGate(nodes.OpNot)
	f := nodes.NewGate(nodes.OpAnd)
	graph.Connect(d.Sinks()[0], c.Sources()[0])
	graph.Connect(e.Sinks()[0], c.Sources()[0])
	graph.Connect(f.Sinks()[0], d.Sources()[0])
	graph.Connect(f.Sinks()[1], e.Sources()[0])
	graph.Connect(out.Sinks()[0], f.Sources()[0])

	doc, err := Serialize(&testGraph{nodes: []graph.Node{in, out, c, d, e, f}}, raspi.TypeRaspi)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if len(doc.Nodes) != 6 {
		t.Errorf("got %d records, want 6", len(doc.Nodes))
	}
	seen := make(map[uint64]bool)
	for _, r := range doc.Nodes {
		if seen[r.ID] {
			t.Errorf("id %d serialized twice", r.ID)
		}
		seen[r.ID] = true
	}
}

const boundaryRecords = `
    {"clsid": 32769, "x": 1, "y": 1, "node_info": {}, "id": 1, "connections": []},
    {"clsid": 32770, "x": 600, "y": 1, "node_info": {}, "id": 2, "connections": []}`

func document(typ, records string) string {
	return `{"type": ` + typ + `, "nodes": [` + records + `]}`
}

func load(doc string) (*Result, error) {
	d, err := ReadDocument(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}
	return Deserialize(d, catalog.Default())
}

func TestDeserializeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"unknown clsid", document(`"raspi"`, boundaryRecords+`,
			{"clsid": 39321, "x": 0, "y": 0, "node_info": {}, "id": 3, "connections": []}`),
			errors.ErrCodeUnknownNodeKind},
		{"unknown project type", document(`"arduino"`, boundaryRecords), errors.ErrCodeUnknownProjectType},
		{"not json", `{"type": "raspi", "nodes": [`, errors.ErrCodeMalformedDocument},
		{"missing nodes", `{"type": "raspi"}`, errors.ErrCodeMalformedDocument},
		{"clsid string", document(`"raspi"`, `{"clsid": "and", "id": 1}`), errors.ErrCodeMalformedDocument},
		{"short connection", document(`"raspi"`, boundaryRecords+`,
			{"clsid": 259, "x": 0, "y": 0, "node_info": {}, "id": 3, "connections": [[0, 1]]}`),
			errors.ErrCodeMalformedDocument},
		{"duplicate id", document(`"raspi"`, boundaryRecords+`,
			{"clsid": 259, "x": 0, "y": 0, "node_info": {}, "id": 2, "connections": []}`),
			errors.ErrCodeMalformedDocument},
		{"missing output", document(`"raspi"`,
			`{"clsid": 32769, "x": 1, "y": 1, "node_info": {}, "id": 1, "connections": []}`),
			errors.ErrCodeMalformedDocument},
		{"second input", document(`"raspi"`, boundaryRecords+`,
			{"clsid": 32769, "x": 1, "y": 1, "node_info": {}, "id": 3, "connections": []}`),
			errors.ErrCodeMalformedDocument},
		{"bad node_info", document(`"raspi"`, boundaryRecords+`,
			{"clsid": 513, "x": 0, "y": 0, "node_info": {"period_ms": 0}, "id": 3, "connections": []}`),
			errors.ErrCodeMalformedDocument},
		{"fractional period", document(`"raspi"`, boundaryRecords+`,
			{"clsid": 513, "x": 0, "y": 0, "node_info": {"period_ms": 2.7}, "id": 3, "connections": []}`),
			errors.ErrCodeMalformedDocument},
		{"string period", document(`"raspi"`, boundaryRecords+`,
			{"clsid": 513, "x": 0, "y": 0, "node_info": {"period_ms": "300"}, "id": 3, "connections": []}`),
			errors.ErrCodeMalformedDocument},
		{"fractional pull-up pin", document(`"raspi"`, `
			{"clsid": 32769, "x": 1, "y": 1, "node_info": {"pull_up": [4.9]}, "id": 1, "connections": []},
			{"clsid": 32770, "x": 600, "y": 1, "node_info": {}, "id": 2, "connections": []}`),
			errors.ErrCodeMalformedDocument},
		{"string constant value", document(`"raspi"`, boundaryRecords+`,
			{"clsid": 1, "x": 0, "y": 0, "node_info": {"value": "0"}, "id": 3, "connections": []}`),
			errors.ErrCodeMalformedDocument},
		{"unknown upstream", document(`"raspi"`, boundaryRecords+`,
			{"clsid": 259, "x": 0, "y": 0, "node_info": {}, "id": 3, "connections": [[0, 42, 0]]}`),
			errors.ErrCodeDanglingConnection},
		{"sink out of range", document(`"raspi"`, boundaryRecords+`,
			{"clsid": 259, "x": 0, "y": 0, "node_info": {}, "id": 3, "connections": [[1, 1, 0]]}`),
			errors.ErrCodeDanglingConnection},
		{"source out of range", document(`"raspi"`, boundaryRecords+`,
			{"clsid": 259, "x": 0, "y": 0, "node_info": {}, "id": 3, "connections": [[0, 1, 17]]}`),
			errors.ErrCodeDanglingConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := load(tt.doc)
			if !errors.Is(err, tt.code) {
				t.Errorf("load() error = %v, want code %s", err, tt.code)
			}
			if res != nil {
				t.Error("load() returned a partial result")
			}
		})
	}
}

func TestDeserializeForwardReference(t *testing.T) {
	doc := document(`"raspi"`, `
		{"clsid": 32770, "x": 600, "y": 1, "node_info": {}, "id": 20, "connections": [[0, 30, 0]]},
		{"clsid": 259, "x": 10, "y": 20, "node_info": {}, "id": 30, "connections": [[0, 10, 2]]},
		{"clsid": 32769, "x": 1, "y": 1, "node_info": {"pull_down": [4]}, "id": 10, "connections": []}`)

	res, err := load(doc)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if len(res.Nodes()) != 3 {
		t.Fatalf("got %d nodes, want 3", len(res.Nodes()))
	}
	gate := res.Nodes()[2]
	if gate.Kind() != nodes.KindNot {
		t.Fatalf("Nodes()[2].Kind() = %s", gate.Kind())
	}
	if got := gate.Position(); got != (graph.Position{X: 10, Y: 20}) {
		t.Errorf("Position() = %v", got)
	}
	src, ok := gate.Sinks()[0].Upstream()
	if !ok || src.Node() != res.InputNode() || src.Index() != 2 {
		t.Error("gate input not wired to input pin index 2")
	}
	src, ok = res.OutputNode().Sinks()[0].Upstream()
	if !ok || src.Node() != gate {
		t.Error("output not wired to gate")
	}
	if !strings.Contains(res.InputNode().Init(nil), "GPIO.setup(4, GPIO.IN, pull_up_down=GPIO.PUD_DOWN)") {
		t.Errorf("input config not restored: %q", res.InputNode().Init(nil))
	}
}

func TestLegacyTypeTag(t *testing.T) {
	tests := []struct {
		typ  string
		want string
	}{
		{`"raspi"`, raspi.TypeRaspi},
		{`[1, "raspi", "Raspberry Pi Model A/B"]`, raspi.TypeRaspi},
		{`[2, "raspi_plus"]`, raspi.TypeRaspiPlus},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			res, err := load(document(tt.typ, boundaryRecords))
			if err != nil {
				t.Fatalf("load() error = %v", err)
			}
			if res.Type != tt.want {
				t.Errorf("Type = %q, want %q", res.Type, tt.want)
			}
		})
	}

	if _, err := load(document(`[1]`, boundaryRecords)); !errors.Is(err, errors.ErrCodeMalformedDocument) {
		t.Errorf("short legacy tuple error = %v", err)
	}
}

func TestDocumentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blink.pimp")
	doc, err := Serialize(sampleGraph(t), raspi.TypeRaspiPlus)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if err := ExportDocument(doc, path); err != nil {
		t.Fatalf("ExportDocument() error = %v", err)
	}
	got, err := ImportDocument(path)
	if err != nil {
		t.Fatalf("ImportDocument() error = %v", err)
	}
	if got.Type != TypeTag(raspi.TypeRaspiPlus) || len(got.Nodes) != len(doc.Nodes) {
		t.Errorf("ImportDocument() = %s with %d records", got.Type, len(got.Nodes))
	}

	_, err = ImportDocument(filepath.Join(t.TempDir(), "missing.pimp"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportDocument(missing) error = %v", err)
	}
}
