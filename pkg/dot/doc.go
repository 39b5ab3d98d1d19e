// Package dot serializes a [model.Graph] into canonical DOT source.
//
// # Output Layout
//
// A graph is emitted in a fixed order:
//
//  1. header: [strict] graph|digraph [name] {
//  2. a `graph [...]` line if the graph has attributes, then `node [...]` and
//     `edge [...]` lines for graph-level defaults
//  3. one declaration per node that carries attributes
//  4. subgraphs that take part in no link, as nested blocks
//  5. one line per link; graph endpoints are inlined as nested blocks
//  6. the closing brace
//
// Nodes are collected depth-first from the graph's nodes and everything
// reachable through their links. Nodes sharing a name are merged. Attribute
// lists follow the insertion order of each bag, so output is stable across
// runs.
//
// # Quoting
//
// Plain names and values are double-quoted with embedded quotes escaped as
// \". HTML names and values are emitted between angle brackets, unescaped.
//
// Serialization is a pure function of the model: it performs no I/O and has
// no error path.
package dot
