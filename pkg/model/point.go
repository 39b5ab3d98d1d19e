package model

// LinkTarget is anything usable as a link endpoint: a [*Node], a [*Port], a
// [*Graph] or a [NodePoint].
type LinkTarget interface {
	// Point returns the endpoint wrapped as a NodePoint.
	Point() NodePoint
}

// PointKind identifies what a [NodePoint] refers to.
type PointKind int

const (
	// PointNone is the zero NodePoint.
	PointNone PointKind = iota
	// PointNode is a bare node.
	PointNode
	// PointPort is a node with a record field and/or compass anchor.
	PointPort
	// PointGraph is a whole graph (cluster-to-cluster or cluster-to-node edges).
	PointGraph
	// PointFloating is a port whose node is filled in by the linking node.
	PointFloating
)

// NodePoint unifies the three kinds of link endpoint. It holds a non-owning
// reference to the entity it points at.
type NodePoint struct {
	node  *Node
	port  *Port
	graph *Graph
}

// Point implements [LinkTarget].
func (p NodePoint) Point() NodePoint { return p }

// Kind returns what the point refers to.
func (p NodePoint) Kind() PointKind {
	switch {
	case p.node != nil:
		return PointNode
	case p.port != nil && p.port.node == nil:
		return PointFloating
	case p.port != nil:
		return PointPort
	case p.graph != nil:
		return PointGraph
	default:
		return PointNone
	}
}

// Node returns the node behind a node or port point, nil otherwise.
func (p NodePoint) Node() *Node {
	if p.node != nil {
		return p.node
	}
	if p.port != nil {
		return p.port.node
	}
	return nil
}

// Port returns the port of a port or floating point, nil otherwise.
func (p NodePoint) Port() *Port { return p.port }

// Graph returns the graph of a graph point, nil otherwise.
func (p NodePoint) Graph() *Graph { return p.graph }

// IsZero reports whether the point refers to nothing.
func (p NodePoint) IsZero() bool { return p.Kind() == PointNone }

// anchored returns p with a floating port attached to n. Other kinds are
// returned unchanged; a zero point becomes n itself.
func (p NodePoint) anchored(n *Node) NodePoint {
	switch p.Kind() {
	case PointNone:
		return n.Point()
	case PointFloating:
		return p.port.WithNode(n).Point()
	default:
		return p
	}
}

// equal compares endpoints without following links, so cyclic graphs
// compare in finite time.
func (p NodePoint) equal(o NodePoint) bool {
	if p.Kind() != o.Kind() {
		return false
	}
	switch p.Kind() {
	case PointNode:
		return p.node.shallowEqual(o.node)
	case PointPort, PointFloating:
		return p.port.Equal(o.port)
	case PointGraph:
		return p.graph == o.graph || (p.graph.name == o.graph.name &&
			p.graph.strict == o.graph.strict && p.graph.directed == o.graph.directed)
	default:
		return true
	}
}

// Port identifies a precise attachment point on a node: an optional record
// field and an optional compass anchor.
type Port struct {
	node    *Node
	record  string
	compass Compass
}

// AtCompass returns a floating port anchored at c. The node is filled in when
// a node links from it, as in n.Link(Between(AtCompass(SouthWest), other)).
func AtCompass(c Compass) *Port { return &Port{compass: c} }

// AtRecord returns a floating port on record field r.
func AtRecord(r string) *Port { return &Port{record: r} }

// Point implements [LinkTarget].
func (p *Port) Point() NodePoint { return NodePoint{port: p} }

// Node returns the referenced node, nil for a floating port.
func (p *Port) Node() *Node { return p.node }

// Record returns the record field selector, empty if none.
func (p *Port) Record() string { return p.record }

// Compass returns the compass anchor.
func (p *Port) Compass() Compass { return p.compass }

// WithNode returns a copy of the port referring to n.
func (p *Port) WithNode(n *Node) *Port { return &Port{node: n, record: p.record, compass: p.compass} }

// WithRecord returns a copy of the port on record field r.
func (p *Port) WithRecord(r string) *Port { return &Port{node: p.node, record: r, compass: p.compass} }

// WithCompass returns a copy of the port anchored at c.
func (p *Port) WithCompass(c Compass) *Port {
	return &Port{node: p.node, record: p.record, compass: c}
}

// Copy returns a port referring to a deep copy of the node, so duplicating a
// port never aliases the original node.
func (p *Port) Copy() *Port {
	var n *Node
	if p.node != nil {
		n = p.node.Copy()
	}
	return &Port{node: n, record: p.record, compass: p.compass}
}

// Equal compares node (by name and attributes), record and compass.
func (p *Port) Equal(o *Port) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.record != o.record || p.compass != o.compass {
		return false
	}
	if p.node == nil || o.node == nil {
		return p.node == o.node
	}
	return p.node.shallowEqual(o.node)
}

// LinkTo adds links from the port's node to the targets, keeping the port as
// the link source. It returns the node. Calling it on a floating port panics.
func (p *Port) LinkTo(targets ...LinkTarget) *Node {
	if p.node == nil {
		panic("model: LinkTo on a floating port")
	}
	for _, t := range targets {
		p.node.addLink(&Link{from: p.Point(), to: t.Point(), attrs: p.node.linkDefaults()})
	}
	return p.node
}
