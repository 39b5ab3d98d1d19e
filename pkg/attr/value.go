package attr

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Kind identifies the concrete type carried by a [Value].
type Kind int

const (
	// KindText is a plain string, quoted on output.
	KindText Kind = iota
	// KindHTML is an HTML-like label, emitted inside angle brackets unescaped.
	KindHTML
	// KindInt is an integer.
	KindInt
	// KindFloat is a floating point number.
	KindFloat
	// KindBool is a boolean.
	KindBool
	// KindColor is a color name or #rrggbb[aa] literal.
	KindColor
	// KindList is a separator-joined list of values (style lists, color lists).
	KindList
	// KindRaw holds a value of a type the model does not recognize.
	// It is rendered with fmt.Sprint.
	KindRaw
)

var kindNames = [...]string{"text", "html", "int", "float", "bool", "color", "list", "raw"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a dynamically-typed attribute value.
// The zero value is an empty text value.
type Value struct {
	kind  Kind
	text  string
	num   int64
	float float64
	flag  bool
	items []Value
	raw   any
}

// Text returns a plain text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// HTML returns an HTML-like value. The content is emitted verbatim between
// angle brackets.
func HTML(s string) Value { return Value{kind: KindHTML, text: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, float: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// ColorValue returns a color value.
func ColorValue(c string) Value { return Value{kind: KindColor, text: c} }

// List returns a comma separated list value.
func List(items ...any) Value { return listOf(",", items) }

// ColorList returns a colon separated color list (gradients, parallel edges).
func ColorList(colors ...Color) Value {
	items := make([]any, len(colors))
	for i, c := range colors {
		items[i] = c
	}
	return listOf(":", items)
}

func listOf(sep string, items []any) Value {
	vs := make([]Value, len(items))
	for i, it := range items {
		vs[i] = Of(it)
	}
	return Value{kind: KindList, text: sep, items: vs}
}

// Of converts an arbitrary Go value into a [Value].
// Values of unrecognized types land in the raw fallback slot.
func Of(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case string:
		return Text(x)
	case Color:
		return ColorValue(string(x))
	case bool:
		return Bool(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return unsigned(uint64(x), v)
	case uint64:
		return unsigned(x, v)
	case uint8:
		return Int(int64(x))
	case uint16:
		return Int(int64(x))
	case uint32:
		return Int(int64(x))
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case []string:
		items := make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
		return List(items...)
	case []any:
		return List(x...)
	case fmt.Stringer:
		return Text(x.String())
	default:
		return Value{kind: KindRaw, raw: v}
	}
}

// unsigned keeps u as an Int when it fits; larger values stay raw so their
// digits are printed unchanged.
func unsigned(u uint64, v any) Value {
	if u > math.MaxInt64 {
		return Value{kind: KindRaw, raw: v}
	}
	return Int(int64(u))
}

// Kind returns the concrete type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsHTML reports whether the value must be emitted as an HTML-like string.
func (v Value) IsHTML() bool { return v.kind == KindHTML }

// Raw returns the fallback payload for [KindRaw] values, nil otherwise.
func (v Value) Raw() any { return v.raw }

// String returns the literal text of the value, before any quoting.
func (v Value) String() string {
	switch v.kind {
	case KindText, KindHTML, KindColor:
		return v.text
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindList:
		parts := make([]string, len(v.items))
		for i, it := range v.items {
			parts[i] = it.String()
		}
		return strings.Join(parts, v.text)
	default:
		return fmt.Sprint(v.raw)
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText, KindHTML, KindColor:
		return v.text == o.text
	case KindInt:
		return v.num == o.num
	case KindFloat:
		return v.float == o.float
	case KindBool:
		return v.flag == o.flag
	case KindList:
		if v.text != o.text || len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(v.raw, o.raw)
	}
}
