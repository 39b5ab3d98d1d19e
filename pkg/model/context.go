package model

import "github.com/matzehuels/dotkit/pkg/attr"

// Context is a stack of default-attribute frames used while building a
// graph. It is an explicit value: pass it to factories with [WithDefaults] or
// use its factory methods.
//
//	ctx := model.NewContext()
//	ctx.Begin().Nodes().Set("shape", "box")
//	defer ctx.End()
//	n := ctx.Node("a") // shape=box
type Context struct {
	frames []*Frame
}

// Frame holds the default attributes of one construction scope.
type Frame struct {
	graphs *attr.Attrs
	nodes  *attr.Attrs
	links  *attr.Attrs
}

// Graphs returns the frame's graph defaults for configuration.
func (f *Frame) Graphs() *attr.Attrs { return f.graphs }

// Nodes returns the frame's node defaults for configuration.
func (f *Frame) Nodes() *attr.Attrs { return f.nodes }

// Links returns the frame's link defaults for configuration.
func (f *Frame) Links() *attr.Attrs { return f.links }

// NewContext returns a context without frames.
func NewContext() *Context { return &Context{} }

// Begin pushes a frame that starts as a copy of the current one and returns
// it for configuration.
func (c *Context) Begin() *Frame {
	f := &Frame{graphs: attr.New(), nodes: attr.New(), links: attr.New()}
	if top := c.Current(); top != nil {
		f.graphs = top.graphs.Clone()
		f.nodes = top.nodes.Clone()
		f.links = top.links.Clone()
	}
	c.frames = append(c.frames, f)
	return f
}

// End pops the innermost frame. Calling End without a matching Begin is a
// programming error and panics.
func (c *Context) End() {
	if len(c.frames) == 0 {
		panic("model: Context.End without matching Begin")
	}
	c.frames[len(c.frames)-1] = nil
	c.frames = c.frames[:len(c.frames)-1]
}

// Current returns the innermost frame, or nil.
func (c *Context) Current() *Frame {
	if c == nil || len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

// Depth returns the number of open frames.
func (c *Context) Depth() int { return len(c.frames) }

// Graph is NewGraph with the context's defaults.
func (c *Context) Graph(name string) *Graph { return NewGraph(name, WithDefaults(c)) }

// Node is NewNode with the context's defaults.
func (c *Context) Node(name string) *Node { return NewNode(name, WithDefaults(c)) }

// To is [To] with the context's defaults.
func (c *Context) To(target LinkTarget) *Link { return To(target, WithDefaults(c)) }

// Between is [Between] with the context's defaults.
func (c *Context) Between(from, to LinkTarget) *Link { return Between(from, to, WithDefaults(c)) }
