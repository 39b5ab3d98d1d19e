package attr

import (
	"fmt"
	"strings"
)

// =============================================================================
// Colors
// =============================================================================

// Color is a Graphviz color: a name from the X11 scheme or a #rrggbb[aa] literal.
// Applied directly it sets "color"; use [Color.Fill], [Color.Font] or
// [Color.Background] for the other color slots.
type Color string

// Common colors.
const (
	Black     Color = "black"
	White     Color = "white"
	Red       Color = "red"
	Green     Color = "green"
	Blue      Color = "blue"
	Yellow    Color = "yellow"
	Grey      Color = "grey"
	LightGrey Color = "lightgrey"
	Orange    Color = "orange"
	Purple    Color = "purple"
)

// RGB returns a color from its components.
func RGB(r, g, b uint8) Color { return Color(fmt.Sprintf("#%02x%02x%02x", r, g, b)) }

// RGBA returns a color with alpha from its components.
func RGBA(r, g, b, a uint8) Color { return Color(fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)) }

// Apply implements [Attribute].
func (c Color) Apply(dst *Attrs) { dst.Set("color", ColorValue(string(c))) }

// Fill returns the attribute setting "fillcolor".
func (c Color) Fill() Attribute { return Pair("fillcolor", ColorValue(string(c))) }

// Font returns the attribute setting "fontcolor".
func (c Color) Font() Attribute { return Pair("fontcolor", ColorValue(string(c))) }

// Background returns the attribute setting "bgcolor".
func (c Color) Background() Attribute { return Pair("bgcolor", ColorValue(string(c))) }

// Gradient returns a "color" attribute holding a color list.
func (c Color) Gradient(others ...Color) Attribute {
	return Pair("color", ColorList(append([]Color{c}, others...)...))
}

// =============================================================================
// Shapes and Styles
// =============================================================================

// Shape is a node shape.
type Shape string

// Node shapes.
const (
	ShapeBox       Shape = "box"
	ShapeEllipse   Shape = "ellipse"
	ShapeCircle    Shape = "circle"
	ShapeCylinder  Shape = "cylinder"
	ShapeDiamond   Shape = "diamond"
	ShapePlain     Shape = "plain"
	ShapePlainText Shape = "plaintext"
	ShapePoint     Shape = "point"
	ShapeRecord    Shape = "record"
	ShapeMRecord   Shape = "Mrecord"
	ShapeNone      Shape = "none"
)

// Apply implements [Attribute].
func (s Shape) Apply(dst *Attrs) { dst.Set("shape", string(s)) }

// Style is a node, edge or cluster style.
type Style string

// Styles.
const (
	StyleFilled  Style = "filled"
	StyleDashed  Style = "dashed"
	StyleDotted  Style = "dotted"
	StyleBold    Style = "bold"
	StyleRounded Style = "rounded"
	StyleInvis   Style = "invis"
	StyleSolid   Style = "solid"
)

// And combines styles, e.g. "rounded,filled".
func (s Style) And(others ...Style) Style {
	parts := []string{string(s)}
	for _, o := range others {
		parts = append(parts, string(o))
	}
	return Style(strings.Join(parts, ","))
}

// Apply implements [Attribute].
func (s Style) Apply(dst *Attrs) { dst.Set("style", string(s)) }

// =============================================================================
// Labels and Fonts
// =============================================================================

// Label returns the attribute setting a plain text "label".
func Label(s string) Attribute { return Pair("label", Text(s)) }

// HTMLLabel returns the attribute setting an HTML-like "label".
func HTMLLabel(s string) Attribute { return Pair("label", HTML(s)) }

// XLabel returns the attribute setting an external "xlabel".
func XLabel(s string) Attribute { return Pair("xlabel", Text(s)) }

// Font returns the attribute setting both "fontname" and "fontsize".
// A zero size leaves the size untouched.
func Font(name string, size float64) Attribute {
	return Func(func(dst *Attrs) {
		if name != "" {
			dst.Set("fontname", name)
		}
		if size > 0 {
			dst.Set("fontsize", size)
		}
	})
}

// FontSize returns the attribute setting "fontsize".
func FontSize(size float64) Attribute { return Pair("fontsize", size) }

// =============================================================================
// Ranks
// =============================================================================

// RankDir is the layout direction of a graph.
type RankDir string

// Layout directions.
const (
	TopToBottom RankDir = "TB"
	BottomToTop RankDir = "BT"
	LeftToRight RankDir = "LR"
	RightToLeft RankDir = "RL"
)

// Apply implements [Attribute].
func (r RankDir) Apply(dst *Attrs) { dst.Set("rankdir", string(r)) }

// Rank constrains the rank of the nodes in a subgraph.
type Rank string

// Rank constraints.
const (
	RankSame   Rank = "same"
	RankMin    Rank = "min"
	RankMax    Rank = "max"
	RankSource Rank = "source"
	RankSink   Rank = "sink"
)

// Apply implements [Attribute].
func (r Rank) Apply(dst *Attrs) { dst.Set("rank", string(r)) }

// =============================================================================
// Arrows
// =============================================================================

// Arrow is an edge arrow shape. Applied directly it sets "arrowhead".
type Arrow string

// Arrow shapes.
const (
	ArrowNormal  Arrow = "normal"
	ArrowNone    Arrow = "none"
	ArrowVee     Arrow = "vee"
	ArrowDot     Arrow = "dot"
	ArrowDiamond Arrow = "diamond"
	ArrowBox     Arrow = "box"
	ArrowCrow    Arrow = "crow"
	ArrowTee     Arrow = "tee"
	ArrowInv     Arrow = "inv"
)

// Open returns the hollow variant, e.g. "odiamond".
func (a Arrow) Open() Arrow { return "o" + a }

// Apply implements [Attribute].
func (a Arrow) Apply(dst *Attrs) { dst.Set("arrowhead", string(a)) }

// Tail returns the attribute setting "arrowtail".
func (a Arrow) Tail() Attribute { return Pair("arrowtail", string(a)) }

// Dir returns the attribute setting the edge "dir" ("forward", "back", "both", "none").
func Dir(dir string) Attribute { return Pair("dir", dir) }
