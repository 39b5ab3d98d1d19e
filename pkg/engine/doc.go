// Package engine turns DOT source into rendered artifacts.
//
// # Overview
//
// Rendering is split into a pure text pipeline around a pluggable backend:
//
//	source ─► PreProcess ─► Backend.Execute ─► PostProcessSVG ─► [Rasterize] ─► Result
//
// [PreProcess] forces a dpi setting, replaces control characters and escapes
// '&' for SVG-family formats. [PostProcessSVG] rewrites the SVG root so the
// artifact matches the requested [Options]: width and height in pixels, a
// corrected scale transform and, optionally, adjusted font sizes.
//
// # Backends
//
//   - [GraphvizBackend]: in-process rendering via github.com/goccy/go-graphviz
//   - [CommandBackend]: the system `dot` binary and its siblings
//   - [Fallback]: tries several backends in order
//
// # Options
//
// [Options] has a compact object-literal form used for caching and for
// exchange with other tools:
//
//	{format:'svg',engine:'dot',basedir:'/work',images:[]}
//
// [ParseOptions] accepts the form leniently: missing fields take their
// defaults, numbers may be quoted and sizes may carry a px suffix.
//
// # Renderer
//
// [Renderer] chains everything together with an optional cache and reports
// progress through the observability hooks.
package engine
