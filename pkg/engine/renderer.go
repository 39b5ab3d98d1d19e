package engine

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/dotkit/pkg/cache"
	"github.com/matzehuels/dotkit/pkg/dot"
	"github.com/matzehuels/dotkit/pkg/errors"
	"github.com/matzehuels/dotkit/pkg/model"
	"github.com/matzehuels/dotkit/pkg/observability"
)

// Rasterizer converts post-processed SVG into the bytes of an image format.
type Rasterizer func(ctx context.Context, svg []byte, f Format) ([]byte, error)

// Renderer runs the full pipeline: serialize, pre-process, backend,
// post-process and, for image formats, rasterize. Results are cached by
// source and options.
//
// A Renderer holds no per-render state; one instance can serve concurrent
// renders as long as its Backend and Cache can.
type Renderer struct {
	Backend   Backend
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger
	TTL       time.Duration
	Rasterize Rasterizer
}

// NewRenderer creates a renderer. A nil cache disables caching, a nil keyer
// means the default keyer and a nil logger means log.Default().
func NewRenderer(b Backend, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{
		Backend:   b,
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		TTL:       cache.TTLRender,
		Rasterize: Rasterize,
	}
}

// Result is a rendered artifact.
type Result struct {
	Format Format `msgpack:"format"`

	// Text holds textual output (SVG, DOT, JSON, ...).
	Text string `msgpack:"text,omitempty"`

	// Bytes holds raster output.
	Bytes []byte `msgpack:"bytes,omitempty"`

	// Warnings lists soft diagnostics such as an unrecognised SVG header.
	Warnings []string `msgpack:"warnings,omitempty"`

	// Cached reports whether the result came from the cache.
	Cached bool `msgpack:"-"`
}

// Data returns the artifact bytes regardless of kind.
func (r *Result) Data() []byte {
	if r.Format.IsImage() {
		return r.Bytes
	}
	return []byte(r.Text)
}

// WriteTo writes the artifact to w.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Data())
	return int64(n), err
}

// WriteFile writes the artifact to path, creating parent directories.
func (r *Result) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, r.Data(), 0644)
}

// DefaultFileName returns base with the extension of format f.
func DefaultFileName(base string, f Format) string {
	return base + "." + f.Extension()
}

// Render serializes g and renders it.
func (r *Renderer) Render(ctx context.Context, g *model.Graph, opts Options) (*Result, error) {
	start := time.Now()
	src := dot.Serialize(g)
	observability.Render().OnSerialize(ctx, len(src), time.Since(start))
	return r.RenderSource(ctx, src, opts)
}

// RenderSource renders DOT source that is already serialized.
func (r *Renderer) RenderSource(ctx context.Context, src string, opts Options) (*Result, error) {
	if err := errors.ValidateSource(src); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if r.Backend == nil {
		return nil, errors.New(errors.ErrCodeEngineUnavailable, "no backend configured")
	}

	key := r.Keyer.RenderKey(src, opts.String())
	if res, ok := r.lookup(ctx, key); ok {
		return res, nil
	}

	pre := PreProcess(opts.Format, src)

	start := time.Now()
	observability.Render().OnRenderStart(ctx, r.Backend.Name(), opts.Format.String())
	raw, err := r.Backend.Execute(ctx, pre, opts)
	observability.Render().OnRenderComplete(ctx, r.Backend.Name(), opts.Format.String(), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	res := &Result{Format: opts.Format}
	text, err := PostProcess(opts.Format, raw, opts)
	if err != nil {
		if !stderrors.Is(err, ErrUnexpectedSVG) {
			return nil, err
		}
		r.Logger.Warn("post-processing skipped", "format", opts.Format, "err", errors.UserMessage(err))
		observability.Render().OnPostProcessWarning(ctx, opts.Format.String(), err)
		res.Warnings = append(res.Warnings, errors.UserMessage(err))
	}

	if opts.Format.IsImage() {
		data, err := r.Rasterize(ctx, []byte(text), opts.Format)
		if err != nil {
			return nil, err
		}
		res.Bytes = data
	} else {
		res.Text = text
	}

	r.Logger.Debug("rendered",
		"format", opts.Format,
		"engine", opts.Engine,
		"backend", r.Backend.Name(),
		"duration", time.Since(start))

	r.store(ctx, key, res)
	return res, nil
}

func (r *Renderer) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "render")
		return nil, false
	}
	var res Result
	if err := msgpack.Unmarshal(data, &res); err != nil {
		r.Logger.Warn("discarding corrupt cache entry", "err", err)
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	res.Cached = true
	observability.Cache().OnCacheHit(ctx, "render")
	return &res, true
}

func (r *Renderer) store(ctx context.Context, key string, res *Result) {
	data, err := msgpack.Marshal(res)
	if err != nil {
		r.Logger.Warn("encode cache entry", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "render", len(data))
}
