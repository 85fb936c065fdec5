package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"

	"github.com/pinmagik/pinmagik/pkg/errors"
	"github.com/pinmagik/pinmagik/pkg/graph"
	"github.com/pinmagik/pinmagik/pkg/nodes"
	"github.com/pinmagik/pinmagik/pkg/raspi"
)

func TestDefaultKinds(t *testing.T) {
	got := lo.Map(Default().Entries(), func(e Entry, _ int) graph.Kind { return e.Kind })
	want := []graph.Kind{
		0x0001,
		0x0101, 0x0102, 0x0103, 0x0104, 0x0105, 0x0106,
		0x0201, 0x0202, 0x0203, 0x0204,
		0x8001, 0x8002,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Entries() kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultRunsOnEveryType(t *testing.T) {
	reg := Default()
	all := len(reg.Entries())
	for _, pt := range raspi.ProjectTypes() {
		if got := len(reg.For(pt.Name)); got != all {
			t.Errorf("For(%q) = %d entries, want %d", pt.Name, got, all)
		}
	}
}

func TestNewNodeKinds(t *testing.T) {
	reg := Default()
	for _, e := range reg.Entries() {
		t.Run(e.Name, func(t *testing.T) {
			for _, typ := range []string{raspi.TypeRaspi, raspi.TypeRaspiPlus} {
				n, err := reg.NewNode(e.Kind, typ)
				if err != nil {
					t.Fatalf("NewNode(%s, %s) error = %v", e.Kind, typ, err)
				}
				if n.Kind() != e.Kind {
					t.Errorf("Kind() = %s, want %s", n.Kind(), e.Kind)
				}
			}
		})
	}
}

func TestNewNodeBoundaryUsesContext(t *testing.T) {
	reg := Default()
	a, _ := reg.NewNode(raspi.KindInput, raspi.TypeRaspi)
	b, _ := reg.NewNode(raspi.KindInput, raspi.TypeRaspiPlus)

	if len(a.Sources()) == len(b.Sources()) {
		t.Errorf("input node has %d sources for both revisions", len(a.Sources()))
	}
	if got, want := len(b.Sources()), len(raspi.RevPlus.Pins()); got != want {
		t.Errorf("raspi_plus input sources = %d, want %d", got, want)
	}
}

func TestNewNodeErrors(t *testing.T) {
	tests := []struct {
		name string
		kind graph.Kind
		typ  string
		code errors.Code
	}{
		{"unknown kind", 0x9999, raspi.TypeRaspi, errors.ErrCodeUnknownNodeKind},
		{"unknown type", nodes.KindAnd, "arduino", errors.ErrCodeUnknownProjectType},
		{"bad type name", nodes.KindAnd, "Raspi!", errors.ErrCodeUnknownProjectType},
	}

	reg := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.NewNode(tt.kind, tt.typ)
			if !errors.Is(err, tt.code) {
				t.Errorf("NewNode() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	reg := New()
	plusOnly := Entry{
		Kind:  0x0301,
		Name:  "plus-only",
		Types: []string{raspi.TypeRaspiPlus},
		New:   func(raspi.Context) graph.Node { return nodes.NewConstant() },
	}
	if err := reg.Register(plusOnly); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.Register(plusOnly); err == nil {
		t.Error("Register() duplicate kind succeeded")
	}
	if err := reg.Register(Entry{Kind: 0x0302, Name: "broken"}); err == nil {
		t.Error("Register() without constructor succeeded")
	}

	if got := len(reg.For(raspi.TypeRaspi)); got != 0 {
		t.Errorf("For(raspi) = %d entries, want 0", got)
	}
	if got := len(reg.For(raspi.TypeRaspiPlus)); got != 1 {
		t.Errorf("For(raspi_plus) = %d entries, want 1", got)
	}

	_, err := reg.NewNode(0x0301, raspi.TypeRaspi)
	if !errors.Is(err, errors.ErrCodeUnknownNodeKind) {
		t.Errorf("NewNode() unsupported type error = %v", err)
	}
	if _, err := reg.NewNode(0x0301, raspi.TypeRaspiPlus); err != nil {
		t.Errorf("NewNode() error = %v", err)
	}
}

func TestLookupName(t *testing.T) {
	reg := Default()
	e, ok := reg.LookupName("clock")
	if !ok || e.Kind != nodes.KindClock {
		t.Errorf("LookupName(clock) = %v, %v", e.Kind, ok)
	}
	if _, ok := reg.LookupName("pwm"); ok {
		t.Error("LookupName(pwm) found an entry")
	}
}

func TestIsBoundary(t *testing.T) {
	if !IsBoundary(raspi.KindInput) || !IsBoundary(raspi.KindOutput) || IsBoundary(nodes.KindAnd) {
		t.Error("IsBoundary mismatch")
	}
}
