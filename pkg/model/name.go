package model

// Name is the name of a graph or node. HTML names are emitted unquoted
// between angle brackets; plain names are quoted and escaped.
type Name struct {
	value string
	html  bool
}

// PlainName returns a regular, quoted name.
func PlainName(s string) Name { return Name{value: s} }

// HTMLName returns a raw HTML-like name.
func HTMLName(s string) Name { return Name{value: s, html: true} }

// Value returns the name text.
func (n Name) Value() string { return n.value }

// IsHTML reports whether the name was built with [HTMLName].
func (n Name) IsHTML() bool { return n.html }

// IsEmpty reports whether the name has no text.
func (n Name) IsEmpty() bool { return n.value == "" }

func (n Name) String() string {
	if n.html {
		return "<" + n.value + ">"
	}
	return n.value
}

// Compass is a directional anchor on a node's boundary.
type Compass int

// Compass points. CompassNone means no anchor.
const (
	CompassNone Compass = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	Center
)

var compassNames = [...]string{"", "n", "ne", "e", "se", "s", "sw", "w", "nw", "c"}

// String returns the DOT keyword of the compass point.
func (c Compass) String() string {
	if c < 0 || int(c) >= len(compassNames) {
		return ""
	}
	return compassNames[c]
}

// ParseCompass returns the compass point for a DOT keyword.
// "_" is accepted as an alias for [Center].
func ParseCompass(s string) (Compass, bool) {
	if s == "_" {
		return Center, true
	}
	for i, name := range compassNames {
		if i > 0 && name == s {
			return Compass(i), true
		}
	}
	return CompassNone, false
}
