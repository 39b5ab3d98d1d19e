// Package attr implements the attribute model shared by every graph entity.
//
// # Overview
//
// Graphviz entities (graphs, nodes, edges) carry key/value properties such as
// color, shape or label. This package provides:
//
//   - [Value]: a tagged value variant (text, HTML, integer, float, boolean,
//     color, list) with a raw fallback slot for anything else
//   - [Attrs]: an insertion-ordered bag of attributes, so serialized output is
//     deterministic and diff-stable
//   - [Attribute]: the "attribute capability" contract; anything that can
//     apply itself into a target bag
//   - [From]: builds a bag from a flat key/value argument list
//
// # Usage
//
//	a, err := attr.From("label", "hello", attr.Shape("box"), attr.Color("red"))
//	if err != nil {
//	    // odd list, non-string key or dangling key
//	}
//
// Later applications override earlier ones for the same key, while the key
// keeps the position of its first insertion:
//
//	a.Set("color", "blue") // still emitted in second position
//
// # Predefined Groups
//
// [Color], [Shape], [Style], [Font], [Rank], [RankDir], [Arrow], [Label] and
// [HTMLLabel] are ready-made attribute capabilities that can be passed to
// [From] (or any entity's With method) exactly like literal pairs.
package attr
