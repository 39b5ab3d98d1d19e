package engine

import (
	"bytes"
	"context"
	"sync"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dotkit/pkg/errors"
)

// GraphvizBackend renders in-process with the WebAssembly build of
// Graphviz. Initialization starts on first use in the background; callers
// wait for it at most until their context expires.
//
// The embedded Graphviz has no switch for inverted y coordinates, so
// options with YInvert set are rejected as UNSUPPORTED; under "auto" the
// command backend takes over.
type GraphvizBackend struct {
	once    sync.Once
	ready   chan struct{}
	gv      *graphviz.Graphviz
	initErr error

	// a Graphviz instance renders one graph at a time
	mu sync.Mutex
}

// NewGraphvizBackend returns an uninitialized backend.
func NewGraphvizBackend() *GraphvizBackend {
	return &GraphvizBackend{ready: make(chan struct{})}
}

// Name implements [Backend].
func (b *GraphvizBackend) Name() string { return BackendGraphviz }

func (b *GraphvizBackend) start() {
	b.once.Do(func() {
		go func() {
			defer close(b.ready)
			gv, err := graphviz.New(context.Background())
			if err != nil {
				b.initErr = errors.Wrap(errors.ErrCodeEngineUnavailable, err, "init graphviz")
				return
			}
			b.gv = gv
		}()
	})
}

// Wait blocks until the backend is initialized or ctx is done.
func (b *GraphvizBackend) Wait(ctx context.Context) error {
	b.start()
	select {
	case <-b.ready:
		return b.initErr
	case <-ctx.Done():
		return errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "initializing graphviz took too long")
	}
}

// Execute implements [Backend].
func (b *GraphvizBackend) Execute(ctx context.Context, src string, opts Options) (string, error) {
	if opts.YInvert {
		return "", errors.New(errors.ErrCodeUnsupported, "the in-process renderer cannot invert y coordinates")
	}
	if err := b.Wait(ctx); err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gv == nil {
		return "", errClosed
	}

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	engine := opts.Engine
	if engine == "" {
		engine = LayoutDot
	}
	b.gv.SetLayout(graphviz.Layout(engine))

	var buf bytes.Buffer
	if err := b.gv.Render(ctx, g, graphviz.Format(opts.Format.VizName()), &buf); err != nil {
		return "", errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", opts.Format)
	}
	return buf.String(), nil
}

// Close releases the Graphviz instance. A backend that was never used is
// marked closed without starting it.
func (b *GraphvizBackend) Close() error {
	b.once.Do(func() {
		b.initErr = errClosed
		close(b.ready)
	})
	<-b.ready

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gv == nil {
		return nil
	}
	err := b.gv.Close()
	b.gv = nil
	return err
}

var errClosed = errors.New(errors.ErrCodeEngineUnavailable, "graphviz backend closed")
