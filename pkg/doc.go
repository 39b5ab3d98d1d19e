// Package pkg provides the libraries behind dotkit.
//
// # Overview
//
// dotkit builds Graphviz graphs in Go, serializes them to DOT and renders
// them through Graphviz with output that honours the requested size,
// resolution and font scaling. The pkg directory is organized as follows:
//
//  1. [attr] - Attribute sets and common Graphviz attribute helpers
//  2. [model] - Graphs, nodes, links, ports and the creation context
//  3. [dot] - DOT serialization
//  4. [engine] - Formats, render options, backends and SVG post-processing
//  5. [cache] - Render caches (file, badger, redis, mongo)
//  6. [observability] - Hooks for render, cache and HTTP events
//  7. [errors] - Coded errors shared by the CLI and server
//
// # Architecture
//
// The typical data flow:
//
//	model.Graph (or DOT source)
//	         ↓
//	    [dot] package (serialize)
//	         ↓
//	    [engine] package (pre-process, render, post-process)
//	         ↓
//	    SVG/PNG/PDF/DOT output
//
// # Quick Start
//
//	g := model.NewGraph("example").Directed().WithNodes(
//	    model.NewNode("a").LinkTo(model.NewNode("b")),
//	)
//	r := engine.NewRenderer(engine.NewGraphvizBackend(), nil, nil, logger)
//	res, err := r.Render(ctx, g, engine.DefaultOptions().WithFormat(engine.FormatPNG))
//
// [attr]: github.com/matzehuels/dotkit/pkg/attr
// [model]: github.com/matzehuels/dotkit/pkg/model
// [dot]: github.com/matzehuels/dotkit/pkg/dot
// [engine]: github.com/matzehuels/dotkit/pkg/engine
// [cache]: github.com/matzehuels/dotkit/pkg/cache
// [observability]: github.com/matzehuels/dotkit/pkg/observability
// [errors]: github.com/matzehuels/dotkit/pkg/errors
package pkg
