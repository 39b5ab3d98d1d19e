package model

import "github.com/matzehuels/dotkit/pkg/attr"

// Option configures an entity at creation time.
type Option func(*settings)

type settings struct {
	frame *Frame
}

// WithDefaults seeds the new entity with the defaults of the innermost frame
// of ctx. The defaults are copied once; later changes to the frame do not
// reach entities that already exist. A nil or empty context is a no-op.
func WithDefaults(ctx *Context) Option {
	return func(s *settings) {
		if ctx != nil {
			s.frame = ctx.Current()
		}
	}
}

func resolve(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) graphs() *attr.Attrs {
	if s.frame == nil {
		return attr.New()
	}
	return s.frame.graphs.Clone()
}

func (s settings) nodes() *attr.Attrs {
	if s.frame == nil {
		return attr.New()
	}
	return s.frame.nodes.Clone()
}

func (s settings) links() *attr.Attrs {
	if s.frame == nil {
		return nil
	}
	return s.frame.links.Clone()
}
