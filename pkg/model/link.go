package model

import "github.com/matzehuels/dotkit/pkg/attr"

// Link is an edge between two endpoints. Endpoints are non-owning
// references.
type Link struct {
	from  NodePoint
	to    NodePoint
	attrs *attr.Attrs
}

// To returns a link to target whose source is filled in by the node or graph
// it is added to.
func To(target LinkTarget, opts ...Option) *Link {
	return NewLink(nil, target, opts...)
}

// Between returns a link from one endpoint to another. A floating port
// source (see [AtCompass]) is anchored when the link is added to a node.
func Between(from, to LinkTarget, opts ...Option) *Link {
	return NewLink(from, to, opts...)
}

// NewLink returns a link; from may be nil.
func NewLink(from, to LinkTarget, opts ...Option) *Link {
	l := &Link{attrs: resolve(opts).links()}
	if l.attrs == nil {
		l.attrs = attr.New()
	}
	if from != nil {
		l.from = from.Point()
	}
	if to != nil {
		l.to = to.Point()
	}
	return l
}

// Source returns the link source.
func (l *Link) Source() NodePoint { return l.from }

// Target returns the link target.
func (l *Link) Target() NodePoint { return l.to }

// Attrs returns the link's attribute bag. The bag is live.
func (l *Link) Attrs() *attr.Attrs { return l.attrs }

// With merges attributes into the link. Arguments follow [attr.From].
func (l *Link) With(args ...any) *Link {
	l.attrs.Merge(attr.MustFrom(args...))
	return l
}

// Equal compares endpoints and attributes.
func (l *Link) Equal(o *Link) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l.from.equal(o.from) && l.to.equal(o.to) && l.attrs.Equal(o.attrs)
}

// linksEqual compares link lists as sets.
func linksEqual(a, b []*Link) bool {
	if len(a) != len(b) {
		return false
	}
	return containsAll(a, b, (*Link).Equal) && containsAll(b, a, (*Link).Equal)
}

func containsAll[T any](have, want []T, eq func(T, T) bool) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if eq(h, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
