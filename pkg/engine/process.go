package engine

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/dotkit/pkg/errors"
)

// ErrUnexpectedSVG reports SVG output whose root element does not have the
// shape the size correction expects. It is a soft diagnostic: the text is
// returned unchanged alongside it and the render still succeeds.
var ErrUnexpectedSVG = errors.New(errors.ErrCodeRenderFailed,
	"generated SVG has not the expected format, there might be image size problems")

var (
	dpiRe  = regexp.MustCompile(`(?i)"?dpi"?\s*=|"dpi"\s*:`)
	fontRe = regexp.MustCompile(`font-size="(.*?)"`)
	svgRe  = regexp.MustCompile(`(?s)<svg width="(?P<width>\d+)(?P<unit>p[tx])" height="(?P<height>\d+)p[tx]"` +
		`(?:\r\n|\n|\r) viewBox="(?P<box1>[0-9.]+) (?P<box2>[0-9.]+) (?P<box3>[0-9.]+) (?P<box4>[0-9.]+)"` +
		`(?P<between>.*?>(?:\r\n|\n|\r)<g.*?)transform="scale\((?P<scaleX>[0-9.]+) (?P<scaleY>[0-9.]+)\)`)
)

// =============================================================================
// Pre-processing
// =============================================================================

// PreProcess prepares DOT source for the backend.
//
// Without a dpi= or "dpi": setting, "dpi=72;" is inserted right after the
// first '{' so every backend renders at the same resolution. The first
// brace is taken literally, even when it belongs to a quoted graph name.
// Control characters other than tab, CR and LF become spaces. For
// SVG-family formats '&' is escaped as "&amp;".
func PreProcess(f Format, src string) string {
	if !dpiRe.MatchString(src) {
		pos := strings.IndexByte(src, '{') + 1
		src = src[:pos] + "dpi=72;" + src[pos:]
	}
	src = replaceControlChars(src)
	if f.IsImage() || f.IsSVG() {
		src = strings.ReplaceAll(src, "&", "&amp;")
	}
	return src
}

func replaceControlChars(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c < ' ' && c != '\t' && c != '\r' && c != '\n' {
			b[i] = ' '
		}
	}
	return string(b)
}

// =============================================================================
// Post-processing
// =============================================================================

// PostProcess applies the output correction that f needs. Formats outside
// the SVG family are returned unchanged.
func PostProcess(f Format, raw string, opts Options) (string, error) {
	if !f.IsSVG() {
		return raw, nil
	}
	return PostProcessSVG(raw, opts, f.stripsPrefix())
}

// PostProcessSVG rewrites the SVG root element to honour opts.
//
// The root's width and height become pixel values derived from the
// requested size and scale, the viewBox is dropped and the first scale
// transform is corrected to keep the drawing aligned with the new size.
// If opts.FontAdjust is not 1, font sizes are multiplied as by
// [AdjustFonts]. With stripPrefix, everything before the first "<svg " is
// removed.
//
// If the root element cannot be recognised the text is returned unchanged
// (apart from the prefix and font handling) together with
// [ErrUnexpectedSVG].
func PostProcessSVG(svg string, opts Options, stripPrefix bool) (string, error) {
	if stripPrefix {
		if pos := strings.Index(svg, "<svg "); pos >= 0 {
			svg = svg[pos:]
		}
	}
	out, err := pointsToPixels(svg, opts)
	if opts.FontAdjust != 1 && opts.FontAdjust != 0 {
		out = AdjustFonts(out, opts.FontAdjust)
	}
	return out, err
}

// svgHeader holds the parsed root element.
type svgHeader struct {
	width, height  float64
	pixels         bool
	box1, box3     float64
	scaleX, scaleY float64
	between        string
}

func parseHeader(m []string) (svgHeader, error) {
	group := func(name string) string { return m[svgRe.SubexpIndex(name)] }
	num := func(name string) (float64, error) { return strconv.ParseFloat(group(name), 64) }

	h := svgHeader{pixels: group("unit") == "px", between: group("between")}
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"width", &h.width}, {"height", &h.height},
		{"box1", &h.box1}, {"box3", &h.box3},
		{"scaleX", &h.scaleX}, {"scaleY", &h.scaleY},
	} {
		v, err := num(f.name)
		if err != nil {
			return h, err
		}
		*f.dst = v
	}
	return h, nil
}

func pointsToPixels(svg string, opts Options) (string, error) {
	loc := svgRe.FindStringSubmatchIndex(svg)
	if loc == nil {
		return svg, ErrUnexpectedSVG
	}
	m := make([]string, len(loc)/2)
	for i := range m {
		if loc[2*i] >= 0 {
			m[i] = svg[loc[2*i]:loc[2*i+1]]
		}
	}
	h, err := parseHeader(m)
	if err != nil || h.width == 0 || h.height == 0 || h.box1+h.box3 == 0 {
		return svg, ErrUnexpectedSVG
	}

	scale := opts.Scale
	if scale == 0 {
		scale = DefaultScale
	}
	dpi := opts.DPI
	if dpi == 0 {
		dpi = DefaultDPI
	}

	w, ht := targetSize(h.width, h.height, opts.Width, opts.Height)
	viewBoxScale := h.width / (h.box1 + h.box3)
	optScaleX := w * scale / h.width
	optScaleY := ht * scale / h.height
	pixelScale := 1.0
	if !h.pixels {
		pixelScale = math.Round(10000*dpi/72) / 10000
	}
	sx := optScaleX * viewBoxScale * h.scaleX / pixelScale
	sy := optScaleY * viewBoxScale * h.scaleY / pixelScale

	header := fmt.Sprintf(`<svg width="%dpx" height="%dpx"%stransform="scale(%s %s)`,
		int64(math.Round(w*scale)), int64(math.Round(ht*scale)), h.between,
		formatDouble(sx), formatDouble(sy))
	return svg[:loc[0]] + header + svg[loc[1]:], nil
}

// targetSize resolves the requested size against the natural one: both
// given are used as is, one given keeps the aspect ratio, none keeps the
// natural size.
func targetSize(origW, origH float64, width, height int) (float64, float64) {
	switch {
	case width > 0 && height > 0:
		return float64(width), float64(height)
	case width > 0:
		return float64(width), origH * float64(width) / origW
	case height > 0:
		return origW * float64(height) / origH, float64(height)
	default:
		return origW, origH
	}
}

// AdjustFonts multiplies every font-size="N" by factor. Occurrences that are
// not plain numbers are left untouched.
func AdjustFonts(svg string, factor float64) string {
	return fontRe.ReplaceAllStringFunc(svg, func(match string) string {
		raw := fontRe.FindStringSubmatch(match)[1]
		size, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return match
		}
		return `font-size="` + formatDouble(size*factor) + `"`
	})
}

// formatDouble renders f the way SVG consumers of this output have always
// seen it: shortest round-trip digits, at least one fractional digit, and
// scientific notation outside [1e-3, 1e7).
func formatDouble(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(f, 'E', -1, 64)
	mant, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	e, _ := strconv.Atoi(exp)
	return mant + "E" + strconv.Itoa(e)
}
