package dot

import (
	"bytes"
	"io"
	"strings"

	"github.com/matzehuels/dotkit/pkg/attr"
	"github.com/matzehuels/dotkit/pkg/model"
)

// Serialize returns the DOT source of g.
func Serialize(g *model.Graph) string {
	s := serializer{directed: g.IsDirected()}
	s.graph(g, true)
	return s.buf.String()
}

// Write writes the DOT source of g to w.
func Write(w io.Writer, g *model.Graph) error {
	_, err := io.WriteString(w, Serialize(g))
	return err
}

type serializer struct {
	buf      bytes.Buffer
	directed bool
}

// =============================================================================
// Graphs
// =============================================================================

func (s *serializer) graph(g *model.Graph, root bool) {
	s.header(g, root)

	if !g.Attrs().IsEmpty() {
		s.buf.WriteString("graph ")
		s.attrs(g.Attrs())
		s.buf.WriteByte('\n')
	}
	if !g.NodeDefaults().IsEmpty() {
		s.buf.WriteString("node ")
		s.attrs(g.NodeDefaults())
		s.buf.WriteByte('\n')
	}
	if !g.LinkDefaults().IsEmpty() {
		s.buf.WriteString("edge ")
		s.attrs(g.LinkDefaults())
		s.buf.WriteByte('\n')
	}

	nodes := collect(g)
	for _, n := range nodes {
		if !n.attrs.IsEmpty() {
			s.name(n.name)
			s.buf.WriteByte(' ')
			s.attrs(n.attrs)
			s.buf.WriteByte('\n')
		}
	}

	var links []*model.Link
	for _, n := range nodes {
		links = append(links, n.links...)
	}
	for _, sg := range g.Graphs() {
		links = append(links, sg.Links()...)
	}

	linked := linkedGraphs(links)
	for _, sg := range g.Graphs() {
		if !linked[sg] {
			s.graph(sg, false)
			s.buf.WriteByte('\n')
		}
	}

	for _, l := range links {
		s.link(l)
	}
	s.buf.WriteByte('}')
}

func (s *serializer) header(g *model.Graph, root bool) {
	if root {
		if g.IsStrict() {
			s.buf.WriteString("strict ")
		}
		if g.IsDirected() {
			s.buf.WriteString("digraph ")
		} else {
			s.buf.WriteString("graph ")
		}
	} else if !g.Name().IsEmpty() {
		s.buf.WriteString("subgraph ")
	}
	if !g.Name().IsEmpty() {
		s.name(g.Name())
		s.buf.WriteByte(' ')
	}
	s.buf.WriteString("{\n")
}

// linkedGraphs returns the graphs that are the source or target of a link.
func linkedGraphs(links []*model.Link) map[*model.Graph]bool {
	res := make(map[*model.Graph]bool)
	for _, l := range links {
		if g := l.Source().Graph(); g != nil {
			res[g] = true
		}
		if g := l.Target().Graph(); g != nil {
			res[g] = true
		}
	}
	return res
}

// =============================================================================
// Nodes
// =============================================================================

type node struct {
	name  model.Name
	attrs *attr.Attrs
	links []*model.Link
}

// collect walks g's nodes depth-first through their links, merging nodes
// that share a name. Nodes owned by a subgraph are left to that subgraph,
// and links never lead into a graph endpoint.
func collect(g *model.Graph) []*node {
	owned := make(map[*model.Node]bool)
	for _, sg := range g.Graphs() {
		markOwned(sg, owned)
	}

	var (
		order  []*node
		byName = make(map[model.Name]*node)
		seen   = make(map[*model.Node]bool)
	)
	var visit func(n *model.Node)
	visit = func(n *model.Node) {
		if n == nil || seen[n] || owned[n] {
			return
		}
		seen[n] = true

		e, ok := byName[n.Name()]
		if !ok {
			e = &node{name: n.Name(), attrs: attr.New()}
			byName[n.Name()] = e
			order = append(order, e)
		}
		e.attrs.Merge(n.Attrs())
		for _, l := range n.Links() {
			if !containsLink(e.links, l) {
				e.links = append(e.links, l)
			}
		}
		for _, l := range n.Links() {
			visit(l.Target().Node())
		}
	}

	for _, n := range g.Nodes() {
		visit(n)
	}
	for _, sg := range g.Graphs() {
		for _, l := range sg.Links() {
			visit(l.Target().Node())
		}
	}
	return order
}

func markOwned(g *model.Graph, owned map[*model.Node]bool) {
	for _, n := range g.Nodes() {
		owned[n] = true
	}
	for _, sg := range g.Graphs() {
		markOwned(sg, owned)
	}
}

func containsLink(links []*model.Link, l *model.Link) bool {
	for _, x := range links {
		if x == l || x.Equal(l) {
			return true
		}
	}
	return false
}

// =============================================================================
// Links
// =============================================================================

func (s *serializer) link(l *model.Link) {
	s.point(l.Source())
	if s.directed {
		s.buf.WriteString(" -> ")
	} else {
		s.buf.WriteString(" -- ")
	}
	s.point(l.Target())
	if !l.Attrs().IsEmpty() {
		s.buf.WriteByte(' ')
		s.attrs(l.Attrs())
	}
	s.buf.WriteByte('\n')
}

func (s *serializer) point(p model.NodePoint) {
	switch p.Kind() {
	case model.PointNode:
		s.name(p.Node().Name())
	case model.PointPort, model.PointFloating:
		port := p.Port()
		if n := port.Node(); n != nil {
			s.name(n.Name())
		}
		if port.Record() != "" {
			s.buf.WriteByte(':')
			s.quoted(port.Record())
		}
		if port.Compass() != model.CompassNone {
			s.buf.WriteByte(':')
			s.buf.WriteString(port.Compass().String())
		}
	case model.PointGraph:
		s.graph(p.Graph(), false)
	}
}

// =============================================================================
// Names and attributes
// =============================================================================

func (s *serializer) attrs(a *attr.Attrs) {
	s.buf.WriteByte('[')
	first := true
	for k, v := range a.All() {
		if !first {
			s.buf.WriteByte(',')
		}
		first = false
		s.quoted(k)
		s.buf.WriteByte('=')
		if v.IsHTML() {
			s.html(v.String())
		} else {
			s.quoted(v.String())
		}
	}
	s.buf.WriteByte(']')
}

func (s *serializer) name(n model.Name) {
	if n.IsHTML() {
		s.html(n.Value())
		return
	}
	s.quoted(n.Value())
}

func (s *serializer) html(text string) {
	s.buf.WriteByte('<')
	s.buf.WriteString(text)
	s.buf.WriteByte('>')
}

func (s *serializer) quoted(text string) {
	s.buf.WriteByte('"')
	s.buf.WriteString(Escape(text))
	s.buf.WriteByte('"')
}

// Escape escapes double quotes for use inside a quoted DOT string. A run of
// backslashes at the end is padded to an even length so it cannot escape
// the closing quote; other backslashes are passed through.
func Escape(text string) string {
	text = strings.ReplaceAll(text, `"`, `\"`)
	trailing := len(text) - len(strings.TrimRight(text, `\`))
	if trailing%2 == 1 {
		text += `\`
	}
	return text
}
