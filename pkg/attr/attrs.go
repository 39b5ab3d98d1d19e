package attr

import (
	"iter"
	"maps"
	"slices"

	"github.com/matzehuels/dotkit/pkg/errors"
)

// Attribute is anything that can apply itself into a target bag.
// Pre-built attribute groups implement it so they can be merged as a single
// argument, just like a literal key/value pair.
type Attribute interface {
	Apply(dst *Attrs)
}

// Func adapts a plain function to the [Attribute] interface.
type Func func(dst *Attrs)

// Apply calls f(dst).
func (f Func) Apply(dst *Attrs) { f(dst) }

// Pair returns an attribute that sets a single key.
func Pair(key string, value any) Attribute {
	return Func(func(dst *Attrs) { dst.Set(key, value) })
}

// Attrs is an insertion-ordered attribute bag.
//
// The zero value is an empty bag ready for use. Iteration always follows the
// order in which keys were first set; overwriting a key keeps its position.
// Attrs is not safe for concurrent mutation.
type Attrs struct {
	keys []string
	vals map[string]Value
}

// New returns an empty bag.
func New() *Attrs { return &Attrs{} }

// Set stores value under key, converting it with [Of]. Last write wins.
func (a *Attrs) Set(key string, value any) *Attrs {
	if a.vals == nil {
		a.vals = make(map[string]Value)
	}
	if _, ok := a.vals[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.vals[key] = Of(value)
	return a
}

// Get returns the value stored under key.
func (a *Attrs) Get(key string) (Value, bool) {
	if a == nil {
		return Value{}, false
	}
	v, ok := a.vals[key]
	return v, ok
}

// Delete removes key from the bag.
func (a *Attrs) Delete(key string) {
	if a == nil {
		return
	}
	if _, ok := a.vals[key]; !ok {
		return
	}
	delete(a.vals, key)
	a.keys = slices.DeleteFunc(a.keys, func(k string) bool { return k == key })
}

// Len returns the number of keys.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// IsEmpty reports whether the bag holds no keys.
func (a *Attrs) IsEmpty() bool { return a.Len() == 0 }

// Keys returns the keys in insertion order.
func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.keys)
}

// All iterates key/value pairs in insertion order.
func (a *Attrs) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if a == nil {
			return
		}
		for _, k := range a.keys {
			if !yield(k, a.vals[k]) {
				return
			}
		}
	}
}

// Merge applies every pair of other into a, in other's order.
func (a *Attrs) Merge(other *Attrs) *Attrs {
	for k, v := range other.All() {
		a.Set(k, v)
	}
	return a
}

// Apply implements [Attribute], so a whole bag can be passed where a single
// attribute is expected.
func (a *Attrs) Apply(dst *Attrs) { dst.Merge(a) }

// Clone returns an independent copy.
func (a *Attrs) Clone() *Attrs {
	c := New()
	if a == nil {
		return c
	}
	c.keys = slices.Clone(a.keys)
	c.vals = maps.Clone(a.vals)
	return c
}

// Equal reports whether both bags hold the same pairs. Order is ignored.
func (a *Attrs) Equal(other *Attrs) bool {
	if a.Len() != other.Len() {
		return false
	}
	for k, v := range a.All() {
		ov, ok := other.Get(k)
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// From builds a bag from a flat argument list.
//
// Each element is either an [Attribute], a map[string]any (merged in sorted
// key order), or a string key immediately followed by its value. A non-string
// key position or a trailing key without a value is reported as an
// INVALID_ARGUMENT error naming the offending index.
func From(args ...any) (*Attrs, error) {
	res := New()
	for i := 0; i < len(args); i++ {
		switch x := args[i].(type) {
		case Attribute:
			x.Apply(res)
		case map[string]any:
			for _, k := range slices.Sorted(maps.Keys(x)) {
				res.Set(k, x[k])
			}
		case string:
			if i == len(args)-1 {
				return nil, errors.New(errors.ErrCodeInvalidArgument, "last key '%s' has no value", x)
			}
			res.Set(x, args[i+1])
			i++
		default:
			return nil, errors.New(errors.ErrCodeInvalidArgument, "%dth argument '%v' is a key, but not a string", i, args[i])
		}
	}
	return res, nil
}

// MustFrom is like [From] but panics on a malformed list. Fluent builders use
// it: a malformed literal list is a programming error at the call site.
func MustFrom(args ...any) *Attrs {
	a, err := From(args...)
	if err != nil {
		panic(err)
	}
	return a
}
