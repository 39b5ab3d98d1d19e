package model

import (
	"testing"

	"github.com/matzehuels/dotkit/pkg/attr"
)

func TestGraph_FlagsReturnCopies(t *testing.T) {
	g := NewGraph("x").With("bla", "blu")
	d := g.Directed()
	s := d.Strict()

	if g.IsDirected() || g.IsStrict() {
		t.Errorf("receiver mutated: directed=%v strict=%v", g.IsDirected(), g.IsStrict())
	}
	if !d.IsDirected() || d.IsStrict() {
		t.Errorf("Directed() = directed %v strict %v, want true false", d.IsDirected(), d.IsStrict())
	}
	if !s.IsDirected() || !s.IsStrict() {
		t.Errorf("Strict() = directed %v strict %v, want true true", s.IsDirected(), s.IsStrict())
	}
	if d.Name() != g.Name() {
		t.Errorf("Directed().Name() = %v, want %v", d.Name(), g.Name())
	}

	d.With("extra", 1)
	if _, ok := g.Attrs().Get("extra"); ok {
		t.Error("attribute on copy leaked into original")
	}
}

func TestGraph_DirectedRewiresLinks(t *testing.T) {
	g := NewGraph("c").LinkTo(NewNode("x"))
	d := g.Directed()
	if got := d.Links()[0].Source().Graph(); got != d {
		t.Errorf("Source().Graph() = %p, want copy %p", got, d)
	}
}

func TestGraph_WithNodesDedup(t *testing.T) {
	g := NewGraph("g").WithNodes(
		NewNode("a").With("color", "red"),
		NewNode("a").With("color", "red"),
		NewNode("a").With("color", "blue"),
		NewNode("b"),
	)
	if got := len(g.Nodes()); got != 3 {
		t.Errorf("len(Nodes()) = %d, want 3", got)
	}
	if got := g.Nodes()[2].Name().Value(); got != "b" {
		t.Errorf("Nodes()[2] = %q, want insertion order preserved", got)
	}
}

func TestGraph_WithGraphsDedup(t *testing.T) {
	sub := func() *Graph { return NewGraph("cluster").WithNodes(NewNode("a")) }
	g := NewGraph("g").WithGraphs(sub(), sub(), NewGraph("cluster"))
	if got := len(g.Graphs()); got != 2 {
		t.Errorf("len(Graphs()) = %d, want 2", got)
	}
}

func TestGraph_LinkRewritesSource(t *testing.T) {
	x := NewNode("x")
	other := NewNode("other")
	g := NewGraph("g").Link(Between(other, x).With("bla", "blu"))

	l := g.Links()[0]
	if l.Source().Kind() != PointGraph || l.Source().Graph() != g {
		t.Errorf("Source() = %v, want graph itself", l.Source().Kind())
	}
	if l.Target().Node() != x {
		t.Error("Target() not preserved")
	}
	if v, _ := l.Attrs().Get("bla"); v.String() != "blu" {
		t.Errorf("attrs = %v, want bla=blu", v)
	}
}

func TestNode_LinkTargets(t *testing.T) {
	y := NewNode("y")
	g := NewGraph("g")
	n := NewNode("x").LinkTo(y, y.Compass(North), y.Port("r", SouthEast), g)

	kinds := []PointKind{PointNode, PointPort, PointPort, PointGraph}
	if len(n.Links()) != len(kinds) {
		t.Fatalf("len(Links()) = %d, want %d", len(n.Links()), len(kinds))
	}
	for i, l := range n.Links() {
		if got := l.Target().Kind(); got != kinds[i] {
			t.Errorf("Links()[%d].Target().Kind() = %v, want %v", i, got, kinds[i])
		}
		if l.Source().Node() != n {
			t.Errorf("Links()[%d].Source().Node() != x", i)
		}
	}
	if p := n.Links()[2].Target().Port(); p.Record() != "r" || p.Compass() != SouthEast {
		t.Errorf("port = %q:%v, want r:se", p.Record(), p.Compass())
	}
}

func TestNode_LinkAnchorsFloatingSource(t *testing.T) {
	y := NewNode("y")
	x := NewNode("x").Link(Between(AtRecord("r1").WithCompass(SouthWest), y.Record("r2")))

	src := x.Links()[0].Source()
	if src.Kind() != PointPort {
		t.Fatalf("Source().Kind() = %v, want PointPort", src.Kind())
	}
	if src.Node() != x || src.Port().Record() != "r1" || src.Port().Compass() != SouthWest {
		t.Errorf("source = %v:%q:%v, want x:r1:sw", src.Node().Name(), src.Port().Record(), src.Port().Compass())
	}
}

func TestNode_LinkToKeepsSource(t *testing.T) {
	x := NewNode("x")
	l := To(NewNode("y"))
	x.Link(l)
	if x.Links()[0].Source().Node() != x {
		t.Error("To() link not anchored at node")
	}
	if !l.Source().IsZero() {
		t.Error("Link() mutated the passed link")
	}
}

func TestNode_CopyIsDeep(t *testing.T) {
	y := NewNode("y")
	x := NewNode("x").With("a", 1).LinkTo(y)
	c := x.Copy()

	if !c.Equal(x) {
		t.Fatal("Copy() not equal to original")
	}
	c.With("a", 2)
	if v, _ := x.Attrs().Get("a"); v.String() != "1" {
		t.Errorf("original attrs changed to %v", v)
	}
	if c.Links()[0].Source().Node() != c {
		t.Error("copied link still starts at original")
	}
	if c.Links()[0].Target().Node() != y {
		t.Error("copied link target should be shared")
	}
}

func TestNode_Merge(t *testing.T) {
	a := NewNode("a").With("x", 1)
	b := NewNode("a").With("x", 2, "y", 3).LinkTo(NewNode("z"))
	a.Merge(b)

	if v, _ := a.Attrs().Get("x"); v.String() != "2" {
		t.Errorf("x = %v, want 2", v)
	}
	if len(a.Links()) != 1 || a.Links()[0].Source().Node() != a {
		t.Errorf("merged links = %d, want 1 starting at a", len(a.Links()))
	}
}

func TestNode_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"same name", NewNode("a"), NewNode("a"), true},
		{"different name", NewNode("a"), NewNode("b"), false},
		{"html vs plain", NewNode("a"), NewHTMLNode("a"), false},
		{"attrs differ", NewNode("a").With("k", 1), NewNode("a").With("k", 2), false},
		{"attrs same order-insensitive", NewNode("a").With("k", 1, "l", 2), NewNode("a").With("l", 2, "k", 1), true},
		{"links differ", NewNode("a").LinkTo(NewNode("b")), NewNode("a"), false},
		{"links same", NewNode("a").LinkTo(NewNode("b")), NewNode("a").LinkTo(NewNode("b")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNode_EqualCyclic(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")
	a.LinkTo(b)
	b.LinkTo(a)
	if !a.Equal(a.Copy()) {
		t.Error("Equal() on cyclic nodes should terminate and report true")
	}
}

func TestPort_CopyDeepCopiesNode(t *testing.T) {
	n := NewNode("n").With("k", "v")
	p := n.Port("r", East)
	c := p.Copy()

	if c.Node() == n {
		t.Fatal("Copy() aliases the original node")
	}
	if !c.Equal(p) {
		t.Error("Copy() not equal to original")
	}
	c.Node().With("k", "changed")
	if v, _ := n.Attrs().Get("k"); v.String() != "v" {
		t.Errorf("original node changed to %v", v)
	}
}

func TestPort_Builders(t *testing.T) {
	p := AtCompass(North)
	q := p.WithRecord("f0")
	if p.Record() != "" {
		t.Error("WithRecord() mutated receiver")
	}
	if q.Compass() != North || q.Record() != "f0" {
		t.Errorf("WithRecord() = %q:%v, want f0:n", q.Record(), q.Compass())
	}
	if q.Point().Kind() != PointFloating {
		t.Errorf("Kind() = %v, want PointFloating", q.Point().Kind())
	}
}

func TestCompass(t *testing.T) {
	for c := North; c <= Center; c++ {
		got, ok := ParseCompass(c.String())
		if !ok || got != c {
			t.Errorf("ParseCompass(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if c, ok := ParseCompass("_"); !ok || c != Center {
		t.Errorf("ParseCompass(_) = %v, %v, want c", c, ok)
	}
	if _, ok := ParseCompass("up"); ok {
		t.Error("ParseCompass(up) should fail")
	}
}

func TestWith_PanicsOnBadArgs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("With() with a dangling key should panic")
		}
	}()
	NewNode("a").With("dangling")
}

func TestWith_AttributeGroups(t *testing.T) {
	n := NewNode("a").With(attr.ShapeBox, attr.Red.Fill(), "label", "A")
	if got, want := n.Attrs().Keys(), []string{"shape", "fillcolor", "label"}; len(got) != len(want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}
