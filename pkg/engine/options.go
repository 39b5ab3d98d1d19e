package engine

import (
	"encoding/json"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kaptinlin/jsonrepair"

	"github.com/matzehuels/dotkit/pkg/errors"
)

// Defaults applied by [DefaultOptions] and by [ParseOptions] for missing keys.
const (
	DefaultDPI        = 72.0
	DefaultScale      = 1.0
	DefaultFontAdjust = 1.0
)

// Options controls a single render.
//
// Options is a value type: every With* method returns a modified copy, so an
// Options can be shared between goroutines and specialised per call.
type Options struct {
	Engine Layout `validate:"required"`
	Format Format `validate:"required"`

	// Width and Height request a pixel size. Zero keeps the natural size; if
	// only one is set the other follows the aspect ratio.
	Width  int `validate:"gte=0"`
	Height int `validate:"gte=0"`

	Scale      float64 `validate:"gt=0"`
	DPI        float64 `validate:"gt=0"`
	FontAdjust float64 `validate:"gt=0"`

	TotalMemory int `validate:"gte=0"`
	YInvert     bool

	// BaseDir resolves relative image paths. Always absolute once set.
	BaseDir string

	Images []ImageHint `validate:"dive"`
}

// ImageHint announces an image referenced by the graph along with its pixel
// size, which some backends cannot determine themselves.
type ImageHint struct {
	Path   string `validate:"required"`
	Width  int    `validate:"gte=0"`
	Height int    `validate:"gte=0"`
}

// DefaultOptions returns SVG output through the dot engine at 72 dpi, with
// the current directory as base directory.
func DefaultOptions() Options {
	return Options{
		Engine:     LayoutDot,
		Format:     FormatSVG,
		Scale:      DefaultScale,
		DPI:        DefaultDPI,
		FontAdjust: DefaultFontAdjust,
		BaseDir:    absDir("."),
	}
}

// =============================================================================
// Builders
// =============================================================================

// WithEngine returns a copy using layout engine l.
func (o Options) WithEngine(l Layout) Options { o.Engine = l; return o.clone() }

// WithFormat returns a copy producing format f.
func (o Options) WithFormat(f Format) Options { o.Format = f; return o.clone() }

// WithWidth returns a copy requesting a pixel width.
func (o Options) WithWidth(w int) Options { o.Width = w; return o.clone() }

// WithHeight returns a copy requesting a pixel height.
func (o Options) WithHeight(h int) Options { o.Height = h; return o.clone() }

// WithSize returns a copy requesting both pixel dimensions.
func (o Options) WithSize(w, h int) Options { o.Width, o.Height = w, h; return o.clone() }

// WithScale returns a copy with an output scale factor.
func (o Options) WithScale(s float64) Options { o.Scale = s; return o.clone() }

// WithDPI returns a copy with the given resolution.
func (o Options) WithDPI(dpi float64) Options { o.DPI = dpi; return o.clone() }

// WithFontAdjust returns a copy that multiplies every font size by f.
func (o Options) WithFontAdjust(f float64) Options { o.FontAdjust = f; return o.clone() }

// WithTotalMemory returns a copy with a backend memory hint in bytes.
func (o Options) WithTotalMemory(n int) Options { o.TotalMemory = n; return o.clone() }

// WithYInvert returns a copy with the y-axis inversion flag set to b.
func (o Options) WithYInvert(b bool) Options { o.YInvert = b; return o.clone() }

// WithBaseDir returns a copy whose base directory is dir, made absolute.
func (o Options) WithBaseDir(dir string) Options { o.BaseDir = absDir(dir); return o.clone() }

// WithImage returns a copy announcing the image at path. Relative paths are
// resolved against the base directory. The image header is read to learn
// its pixel size.
func (o Options) WithImage(path string) (Options, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(o.baseDir(), path)
	}
	w, h, err := ImageSize(full)
	if err != nil {
		return o, err
	}
	return o.WithImageHint(ImageHint{Path: full, Width: w, Height: h}), nil
}

// WithImageHint returns a copy announcing an image of known size.
func (o Options) WithImageHint(h ImageHint) Options {
	o = o.clone()
	o.Images = append(o.Images, h)
	return o
}

func (o Options) clone() Options {
	o.Images = slices.Clone(o.Images)
	return o
}

func (o Options) baseDir() string {
	if o.BaseDir == "" {
		return absDir(".")
	}
	return o.BaseDir
}

func absDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

// =============================================================================
// Validation
// =============================================================================

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		o := sl.Current().Interface().(Options)
		if o.Format != "" && !o.Format.Valid() {
			sl.ReportError(o.Format, "Format", "Format", "format", string(o.Format))
		}
		if o.Engine != "" {
			if _, err := ParseLayout(string(o.Engine)); err != nil {
				sl.ReportError(o.Engine, "Engine", "Engine", "engine", string(o.Engine))
			}
		}
	}, Options{})
	return v
}

// Validate checks field constraints. Errors carry the INVALID_OPTIONS code
// and name every offending field.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var fields []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields = append(fields, fe.Namespace()+" ("+fe.Tag()+")")
		}
		return errors.New(errors.ErrCodeInvalidOptions, "invalid options: %s", strings.Join(fields, ", "))
	}
	return errors.Wrap(errors.ErrCodeInvalidOptions, err, "validate options")
}

// =============================================================================
// Object literal form
// =============================================================================

// String returns the compact object-literal form. format, engine, basedir
// and images are always present; other fields only when they differ from
// their default.
func (o Options) String() string {
	var b strings.Builder
	b.WriteString("{format:")
	writeQuoted(&b, string(o.Format))
	b.WriteString(",engine:")
	writeQuoted(&b, string(o.Engine))
	if o.TotalMemory != 0 {
		b.WriteString(",totalMemory:")
		writeQuoted(&b, strconv.Itoa(o.TotalMemory))
	}
	if o.YInvert {
		b.WriteString(",yInvert:true")
	}
	b.WriteString(",basedir:")
	writeQuoted(&b, o.baseDir())
	if o.FontAdjust != DefaultFontAdjust && o.FontAdjust != 0 {
		b.WriteString(",fontAdjust:")
		writeQuoted(&b, formatNumber(o.FontAdjust))
	}
	if o.Width != 0 {
		b.WriteString(",width:")
		writeQuoted(&b, strconv.Itoa(o.Width))
	}
	if o.Height != 0 {
		b.WriteString(",height:")
		writeQuoted(&b, strconv.Itoa(o.Height))
	}
	if o.Scale != DefaultScale && o.Scale != 0 {
		b.WriteString(",scale:")
		writeQuoted(&b, formatNumber(o.Scale))
	}
	if o.DPI != DefaultDPI && o.DPI != 0 {
		b.WriteString(",dpi:")
		writeQuoted(&b, formatNumber(o.DPI))
	}
	b.WriteString(",images:[")
	for i, img := range o.Images {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString("{path:")
		writeQuoted(&b, img.Path)
		b.WriteString(",width:")
		writeQuoted(&b, strconv.Itoa(img.Width)+"px")
		b.WriteString(",height:")
		writeQuoted(&b, strconv.Itoa(img.Height)+"px")
		b.WriteByte('}')
	}
	b.WriteString("]}")
	return b.String()
}

// MarshalText implements encoding.TextMarshaler with the object-literal form.
func (o Options) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler via [ParseOptions].
func (o *Options) UnmarshalText(text []byte) error {
	parsed, err := ParseOptions(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('\'')
	for _, r := range s {
		if r == '\'' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
}

func formatNumber(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// literal is a scalar that may arrive quoted, bare, or as a JSON number.
type literal string

func (l *literal) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = literal(s)
		return nil
	}
	*l = literal(strings.TrimSpace(string(b)))
	return nil
}

func (l literal) set() bool { return strings.TrimSpace(string(l)) != "" }

func (l literal) number() (float64, error) {
	s := strings.TrimSuffix(strings.TrimSpace(string(l)), "px")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

type rawImage struct {
	Path   literal `json:"path"`
	Width  literal `json:"width"`
	Height literal `json:"height"`
}

type rawOptions struct {
	Format      literal    `json:"format"`
	Engine      literal    `json:"engine"`
	TotalMemory literal    `json:"totalMemory"`
	YInvert     literal    `json:"yInvert"`
	BaseDir     literal    `json:"basedir"`
	FontAdjust  literal    `json:"fontAdjust"`
	Width       literal    `json:"width"`
	Height      literal    `json:"height"`
	Scale       literal    `json:"scale"`
	DPI         literal    `json:"dpi"`
	Images      []rawImage `json:"images"`
}

// ParseOptions reads the object-literal form. Missing keys take their
// defaults; numbers may be quoted or carry a px suffix; format and engine
// are matched case-insensitively. Input that is not strict JSON (single
// quotes, bare keys) is repaired first.
func ParseOptions(s string) (Options, error) {
	var raw rawOptions
	if err := unmarshalLenient([]byte(s), &raw); err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidOptions, err, "parse options")
	}

	o := DefaultOptions()
	var err error
	if raw.Format.set() {
		if o.Format, err = ParseFormat(string(raw.Format)); err != nil {
			return Options{}, err
		}
	}
	if raw.Engine.set() {
		if o.Engine, err = ParseLayout(string(raw.Engine)); err != nil {
			return Options{}, err
		}
	}
	if raw.BaseDir.set() {
		o.BaseDir = absDir(string(raw.BaseDir))
	}
	if raw.YInvert.set() {
		if o.YInvert, err = strconv.ParseBool(string(raw.YInvert)); err != nil {
			return Options{}, fieldError("yInvert", raw.YInvert, err)
		}
	}

	ints := []struct {
		key string
		val literal
		dst *int
	}{
		{"totalMemory", raw.TotalMemory, &o.TotalMemory},
		{"width", raw.Width, &o.Width},
		{"height", raw.Height, &o.Height},
	}
	for _, f := range ints {
		if !f.val.set() {
			continue
		}
		n, err := f.val.number()
		if err != nil {
			return Options{}, fieldError(f.key, f.val, err)
		}
		*f.dst = int(n)
	}

	floats := []struct {
		key string
		val literal
		dst *float64
	}{
		{"fontAdjust", raw.FontAdjust, &o.FontAdjust},
		{"scale", raw.Scale, &o.Scale},
		{"dpi", raw.DPI, &o.DPI},
	}
	for _, f := range floats {
		if !f.val.set() {
			continue
		}
		if *f.dst, err = f.val.number(); err != nil {
			return Options{}, fieldError(f.key, f.val, err)
		}
	}

	for i, img := range raw.Images {
		hint := ImageHint{Path: string(img.Path)}
		if img.Width.set() {
			w, err := img.Width.number()
			if err != nil {
				return Options{}, fieldError("images["+strconv.Itoa(i)+"].width", img.Width, err)
			}
			hint.Width = int(w)
		}
		if img.Height.set() {
			h, err := img.Height.number()
			if err != nil {
				return Options{}, fieldError("images["+strconv.Itoa(i)+"].height", img.Height, err)
			}
			hint.Height = int(h)
		}
		o.Images = append(o.Images, hint)
	}
	return o, nil
}

func fieldError(key string, val literal, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidOptions, err, "options field %s: invalid value %q", key, string(val))
}

// unmarshalLenient decodes strict JSON directly and falls back to repairing
// object literals such as {format:'svg'}.
func unmarshalLenient(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	if _, ok := err.(*json.SyntaxError); !ok {
		return err
	}
	fixed, rerr := jsonrepair.JSONRepair(string(data))
	if rerr != nil {
		return rerr
	}
	return json.Unmarshal([]byte(fixed), v)
}
