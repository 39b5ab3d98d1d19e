package engine

import (
	"strings"

	"github.com/matzehuels/dotkit/pkg/errors"
)

// Layout is a Graphviz layout engine.
type Layout string

// Layout engines understood by every backend.
const (
	LayoutDot       Layout = "dot"
	LayoutNeato     Layout = "neato"
	LayoutCirco     Layout = "circo"
	LayoutTwopi     Layout = "twopi"
	LayoutFdp       Layout = "fdp"
	LayoutSfdp      Layout = "sfdp"
	LayoutOsage     Layout = "osage"
	LayoutPatchwork Layout = "patchwork"
)

var layouts = []Layout{
	LayoutDot, LayoutNeato, LayoutCirco, LayoutTwopi,
	LayoutFdp, LayoutSfdp, LayoutOsage, LayoutPatchwork,
}

// Layouts returns all layout engines.
func Layouts() []Layout { return append([]Layout(nil), layouts...) }

// ParseLayout resolves an engine name case-insensitively.
func ParseLayout(s string) (Layout, error) {
	l := Layout(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range layouts {
		if l == known {
			return l, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidEngine, "unknown engine %q", s)
}

func (l Layout) String() string { return string(l) }
