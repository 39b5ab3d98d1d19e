package engine

import (
	"strings"

	"github.com/matzehuels/dotkit/pkg/errors"
)

// Format is an output format.
type Format string

// Supported formats.
const (
	FormatSVG           Format = "svg"
	FormatSVGStandalone Format = "svg-standalone"
	FormatPNG           Format = "png"
	FormatPDF           Format = "pdf"
	FormatDOT           Format = "dot"
	FormatXDOT          Format = "xdot"
	FormatPlain         Format = "plain"
	FormatPlainExt      Format = "plain-ext"
	FormatPS            Format = "ps"
	FormatPS2           Format = "ps2"
	FormatJSON          Format = "json"
	FormatJSON0         Format = "json0"
	FormatIMAP          Format = "imap"
	FormatCMAPX         Format = "cmapx"
)

type formatInfo struct {
	viz   string // -T value passed to the backend
	ext   string
	image bool // rasterized from SVG after rendering
	svg   bool
	strip bool // drop anything before <svg
	mime  string
}

var formatTable = map[Format]formatInfo{
	FormatSVG:           {viz: "svg", ext: "svg", svg: true, strip: true, mime: "image/svg+xml"},
	FormatSVGStandalone: {viz: "svg", ext: "svg", svg: true, mime: "image/svg+xml"},
	FormatPNG:           {viz: "svg", ext: "png", image: true, svg: true, strip: true, mime: "image/png"},
	FormatPDF:           {viz: "svg", ext: "pdf", image: true, svg: true, strip: true, mime: "application/pdf"},
	FormatDOT:           {viz: "dot", ext: "dot", mime: "text/vnd.graphviz"},
	FormatXDOT:          {viz: "xdot", ext: "xdot", mime: "text/vnd.graphviz"},
	FormatPlain:         {viz: "plain", ext: "txt", mime: "text/plain"},
	FormatPlainExt:      {viz: "plain-ext", ext: "txt", mime: "text/plain"},
	FormatPS:            {viz: "ps", ext: "ps", mime: "application/postscript"},
	FormatPS2:           {viz: "ps2", ext: "ps", mime: "application/postscript"},
	FormatJSON:          {viz: "json", ext: "json", mime: "application/json"},
	FormatJSON0:         {viz: "json0", ext: "json", mime: "application/json"},
	FormatIMAP:          {viz: "imap", ext: "imap", mime: "text/plain"},
	FormatCMAPX:         {viz: "cmapx", ext: "cmapx", mime: "text/html"},
}

var formatOrder = []Format{
	FormatSVG, FormatSVGStandalone, FormatPNG, FormatPDF, FormatDOT, FormatXDOT, FormatPlain,
	FormatPlainExt, FormatPS, FormatPS2, FormatJSON, FormatJSON0, FormatIMAP, FormatCMAPX,
}

// Formats returns all supported formats in a stable order.
func Formats() []Format { return append([]Format(nil), formatOrder...) }

// ParseFormat resolves a format name case-insensitively. Underscores are
// accepted in place of dashes, so "PLAIN_EXT" works.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if _, ok := formatTable[f]; !ok {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", s)
	}
	return f, nil
}

func (f Format) String() string { return string(f) }

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	_, ok := formatTable[f]
	return ok
}

// VizName is the format requested from the backend. PNG and PDF are
// rendered as SVG and converted afterwards.
func (f Format) VizName() string { return formatTable[f].viz }

// Extension is the file extension without the leading dot.
func (f Format) Extension() string { return formatTable[f].ext }

// IsImage reports whether the artifact is binary, converted from SVG.
func (f Format) IsImage() bool { return formatTable[f].image }

// IsSVG reports whether the backend produces SVG for this format.
func (f Format) IsSVG() bool { return formatTable[f].svg }

// MIMEType returns the content type of the final artifact.
func (f Format) MIMEType() string {
	if m := formatTable[f].mime; m != "" {
		return m
	}
	return "application/octet-stream"
}

func (f Format) stripsPrefix() bool { return formatTable[f].strip }
