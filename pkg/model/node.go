package model

import "github.com/matzehuels/dotkit/pkg/attr"

// Node is a named vertex with attributes and outgoing links.
type Node struct {
	name  Name
	attrs *attr.Attrs
	links []*Link

	// link defaults captured at creation, applied to links the node creates
	// implicitly through LinkTo.
	linkAttrs *attr.Attrs
}

// NewNode returns a node with a plain name.
func NewNode(name string, opts ...Option) *Node {
	return newNode(PlainName(name), opts)
}

// NewHTMLNode returns a node whose name is emitted as raw HTML.
func NewHTMLNode(name string, opts ...Option) *Node {
	return newNode(HTMLName(name), opts)
}

func newNode(name Name, opts []Option) *Node {
	s := resolve(opts)
	return &Node{name: name, attrs: s.nodes(), linkAttrs: s.links()}
}

// Point implements [LinkTarget].
func (n *Node) Point() NodePoint { return NodePoint{node: n} }

// Name returns the node name.
func (n *Node) Name() Name { return n.name }

// Attrs returns the node's attribute bag. The bag is live.
func (n *Node) Attrs() *attr.Attrs { return n.attrs }

// Links returns the outgoing links in insertion order.
func (n *Node) Links() []*Link { return n.links }

// With merges attributes into the node. Arguments follow [attr.From]; an
// invalid argument list panics.
func (n *Node) With(args ...any) *Node {
	n.attrs.Merge(attr.MustFrom(args...))
	return n
}

// LinkTo adds one link per target, originating at n.
func (n *Node) LinkTo(targets ...LinkTarget) *Node {
	for _, t := range targets {
		n.addLink(&Link{from: n.Point(), to: t.Point(), attrs: n.linkDefaults()})
	}
	return n
}

// Link adds pre-built links. A link without a source, or with a floating
// port as source, is anchored to n.
func (n *Node) Link(links ...*Link) *Node {
	for _, l := range links {
		n.addLink(&Link{from: l.from.anchored(n), to: l.to, attrs: l.attrs.Clone()})
	}
	return n
}

func (n *Node) addLink(l *Link) { n.links = append(n.links, l) }

func (n *Node) linkDefaults() *attr.Attrs {
	if n.linkAttrs == nil {
		return attr.New()
	}
	return n.linkAttrs.Clone()
}

// Port returns a port on the node with the given record field and compass.
func (n *Node) Port(record string, c Compass) *Port {
	return &Port{node: n, record: record, compass: c}
}

// Record returns a port on record field r.
func (n *Node) Record(r string) *Port { return &Port{node: n, record: r} }

// Compass returns a port anchored at c.
func (n *Node) Compass(c Compass) *Port { return &Port{node: n, compass: c} }

// Copy returns a deep copy: attributes are cloned and links are copied, with
// links that start at n rewired to start at the copy.
func (n *Node) Copy() *Node {
	c := &Node{name: n.name, attrs: n.attrs.Clone()}
	if n.linkAttrs != nil {
		c.linkAttrs = n.linkAttrs.Clone()
	}
	for _, l := range n.links {
		c.links = append(c.links, &Link{from: rewire(l.from, n, c), to: l.to, attrs: l.attrs.Clone()})
	}
	return c
}

func rewire(p NodePoint, from, to *Node) NodePoint {
	switch {
	case p.node == from:
		return to.Point()
	case p.port != nil && p.port.node == from:
		return p.port.WithNode(to).Point()
	default:
		return p
	}
}

// Merge adds the attributes and links of other to n.
func (n *Node) Merge(other *Node) *Node {
	n.attrs.Merge(other.attrs)
	for _, l := range other.links {
		n.addLink(&Link{from: rewire(l.from, other, n), to: l.to, attrs: l.attrs.Clone()})
	}
	return n
}

// Equal reports structural equality: same name, attributes and links.
func (n *Node) Equal(o *Node) bool {
	if !n.shallowEqual(o) {
		return false
	}
	if n == o {
		return true
	}
	return linksEqual(n.links, o.links)
}

func (n *Node) shallowEqual(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.name == o.name && n.attrs.Equal(o.attrs)
}
