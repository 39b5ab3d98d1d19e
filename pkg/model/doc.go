// Package model is the in-process graph object model.
//
// # Overview
//
// A caller builds a graph description out of a handful of entities:
//
//   - [Graph]: strict/directed flags, a name, attributes, unique nodes,
//     unique subgraphs (clusters) and an ordered list of links
//   - [Node]: a name, attributes and outgoing links
//   - [Link]: a source and a target endpoint plus attributes
//   - [Port]: a precise attachment point on a node (record field and/or
//     [Compass] anchor)
//   - [NodePoint]: the unified endpoint wrapper over a node, a port or a graph
//
// # Usage
//
//	g := model.NewGraph("deps").Directed().With(attr.LeftToRight)
//	app := model.NewNode("app").With(attr.ShapeBox)
//	lib := model.NewNode("lib")
//	g.WithNodes(app.LinkTo(lib, lib.Compass(model.North)))
//
// Entities are single-owner mutable builders: every With/Link call mutates the
// receiver and returns it for chaining. Links and ports hold non-owning
// references to the nodes and graphs they point at.
//
// # Equality
//
// Nodes and subgraphs are deduplicated on insertion by structural equality
// (see [Node.Equal] and [Graph.Equal]). Inserting an equal entity twice is a
// silent no-op.
//
// # Construction Defaults
//
// A [Context] carries scoped default attributes. Entities created through the
// context (or with [WithDefaults]) receive the defaults of its innermost frame
// exactly once, at creation time.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent mutation. Share a finished
// graph across goroutines only if nobody mutates it anymore.
package model
