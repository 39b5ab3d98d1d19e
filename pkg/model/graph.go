package model

import "github.com/matzehuels/dotkit/pkg/attr"

// Graph is a root graph or a subgraph (cluster).
type Graph struct {
	strict   bool
	directed bool
	name     Name
	attrs    *attr.Attrs
	nodes    []*Node
	graphs   []*Graph
	links    []*Link

	nodeDefaults *attr.Attrs
	linkDefaults *attr.Attrs
	linkAttrs    *attr.Attrs
}

// NewGraph returns an undirected, non-strict graph. An empty name yields an
// anonymous graph.
func NewGraph(name string, opts ...Option) *Graph {
	return newGraph(PlainName(name), opts)
}

// NewHTMLGraph returns a graph whose name is emitted as raw HTML.
func NewHTMLGraph(name string, opts ...Option) *Graph {
	return newGraph(HTMLName(name), opts)
}

func newGraph(name Name, opts []Option) *Graph {
	s := resolve(opts)
	return &Graph{
		name:         name,
		attrs:        s.graphs(),
		nodeDefaults: attr.New(),
		linkDefaults: attr.New(),
		linkAttrs:    s.links(),
	}
}

// Point implements [LinkTarget].
func (g *Graph) Point() NodePoint { return NodePoint{graph: g} }

// Name returns the graph name.
func (g *Graph) Name() Name { return g.name }

// IsStrict reports whether the graph forbids multi-edges.
func (g *Graph) IsStrict() bool { return g.strict }

// IsDirected reports whether edges are directed.
func (g *Graph) IsDirected() bool { return g.directed }

// Attrs returns the graph-level attribute bag. The bag is live.
func (g *Graph) Attrs() *attr.Attrs { return g.attrs }

// NodeDefaults returns the attributes emitted as a `node [...]` statement.
func (g *Graph) NodeDefaults() *attr.Attrs { return g.nodeDefaults }

// LinkDefaults returns the attributes emitted as an `edge [...]` statement.
func (g *Graph) LinkDefaults() *attr.Attrs { return g.linkDefaults }

// Nodes returns the graph's own nodes in insertion order.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Graphs returns the subgraphs in insertion order.
func (g *Graph) Graphs() []*Graph { return g.graphs }

// Links returns the links originating at the graph itself.
func (g *Graph) Links() []*Link { return g.links }

// Strict returns a copy of g with the strict flag set. g is unchanged.
func (g *Graph) Strict() *Graph {
	c := g.copy()
	c.strict = true
	return c
}

// Directed returns a copy of g with the directed flag set. g is unchanged.
func (g *Graph) Directed() *Graph {
	c := g.copy()
	c.directed = true
	return c
}

// copy shares nodes and subgraphs with g; collections and bags are fresh so
// later mutation of either graph does not leak into the other.
func (g *Graph) copy() *Graph {
	c := &Graph{
		strict:       g.strict,
		directed:     g.directed,
		name:         g.name,
		attrs:        g.attrs.Clone(),
		nodes:        append([]*Node(nil), g.nodes...),
		graphs:       append([]*Graph(nil), g.graphs...),
		nodeDefaults: g.nodeDefaults.Clone(),
		linkDefaults: g.linkDefaults.Clone(),
	}
	if g.linkAttrs != nil {
		c.linkAttrs = g.linkAttrs.Clone()
	}
	for _, l := range g.links {
		c.links = append(c.links, &Link{from: c.Point(), to: l.to, attrs: l.attrs.Clone()})
	}
	return c
}

// With merges graph-level attributes. Arguments follow [attr.From].
func (g *Graph) With(args ...any) *Graph {
	g.attrs.Merge(attr.MustFrom(args...))
	return g
}

// WithNodeDefaults merges attributes into the graph's `node [...]` defaults.
func (g *Graph) WithNodeDefaults(args ...any) *Graph {
	g.nodeDefaults.Merge(attr.MustFrom(args...))
	return g
}

// WithLinkDefaults merges attributes into the graph's `edge [...]` defaults.
func (g *Graph) WithLinkDefaults(args ...any) *Graph {
	g.linkDefaults.Merge(attr.MustFrom(args...))
	return g
}

// WithNodes adds nodes. A node structurally equal to one already present is
// ignored.
func (g *Graph) WithNodes(nodes ...*Node) *Graph {
	for _, n := range nodes {
		if !containsAll(g.nodes, []*Node{n}, (*Node).Equal) {
			g.nodes = append(g.nodes, n)
		}
	}
	return g
}

// WithGraphs adds subgraphs. A subgraph structurally equal to one already
// present is ignored.
func (g *Graph) WithGraphs(graphs ...*Graph) *Graph {
	for _, sg := range graphs {
		if !containsAll(g.graphs, []*Graph{sg}, (*Graph).Equal) {
			g.graphs = append(g.graphs, sg)
		}
	}
	return g
}

// Link adds links originating at the graph. The source of each link is
// replaced by g; target and attributes are kept.
func (g *Graph) Link(links ...*Link) *Graph {
	for _, l := range links {
		g.links = append(g.links, &Link{from: g.Point(), to: l.to, attrs: l.attrs.Clone()})
	}
	return g
}

// LinkTo adds one link from g per target.
func (g *Graph) LinkTo(targets ...LinkTarget) *Graph {
	for _, t := range targets {
		attrs := attr.New()
		if g.linkAttrs != nil {
			attrs = g.linkAttrs.Clone()
		}
		g.links = append(g.links, &Link{from: g.Point(), to: t.Point(), attrs: attrs})
	}
	return g
}

// Equal reports structural equality: flags, name, attributes and contents.
// Collections compare as sets.
func (g *Graph) Equal(o *Graph) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g == o {
		return true
	}
	return g.strict == o.strict &&
		g.directed == o.directed &&
		g.name == o.name &&
		g.attrs.Equal(o.attrs) &&
		g.nodeDefaults.Equal(o.nodeDefaults) &&
		g.linkDefaults.Equal(o.linkDefaults) &&
		len(g.nodes) == len(o.nodes) &&
		containsAll(g.nodes, o.nodes, (*Node).Equal) &&
		len(g.graphs) == len(o.graphs) &&
		containsAll(g.graphs, o.graphs, (*Graph).Equal) &&
		linksEqual(g.links, o.links)
}
