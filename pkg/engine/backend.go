package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/matzehuels/dotkit/pkg/errors"
)

// Backend turns pre-processed DOT source into raw output in the format's
// viz representation (SVG for PNG). Implementations must be safe for
// concurrent use.
type Backend interface {
	Name() string
	Execute(ctx context.Context, src string, opts Options) (string, error)
	Close() error
}

// Backend names accepted by [NewBackend].
const (
	BackendGraphviz = "graphviz"
	BackendCommand  = "cmd"
	BackendAuto     = "auto"
)

// ErrBackendNotFound is returned by NewBackend for an unknown name.
var ErrBackendNotFound = errors.New(errors.ErrCodeInvalidArgument, "unknown backend")

// NewBackend returns the backend registered under name. "auto" tries the
// in-process renderer first and falls back to the system binaries.
func NewBackend(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case BackendGraphviz:
		return NewGraphvizBackend(), nil
	case BackendCommand:
		return NewCommandBackend(), nil
	case "", BackendAuto:
		return Fallback(NewGraphvizBackend(), NewCommandBackend()), nil
	default:
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, ErrBackendNotFound, "backend %q", name)
	}
}

// =============================================================================
// Fallback
// =============================================================================

type fallback struct {
	backends []Backend
}

// Fallback returns a backend that tries each backend in order and returns
// the first success. If all fail, the error lists every attempt.
func Fallback(backends ...Backend) Backend {
	return &fallback{backends: backends}
}

func (f *fallback) Name() string {
	names := make([]string, len(f.backends))
	for i, b := range f.backends {
		names[i] = b.Name()
	}
	return "fallback(" + strings.Join(names, ",") + ")"
}

func (f *fallback) Execute(ctx context.Context, src string, opts Options) (string, error) {
	var errs error
	for _, b := range f.backends {
		out, err := b.Execute(ctx, src, opts)
		if err == nil {
			return out, nil
		}
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", b.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	if errs == nil {
		return "", errors.New(errors.ErrCodeEngineUnavailable, "no backend configured")
	}
	return "", errors.Wrap(errors.ErrCodeEngineUnavailable, errs, "all backends failed")
}

func (f *fallback) Close() error {
	var errs error
	for _, b := range f.backends {
		errs = multierr.Append(errs, b.Close())
	}
	return errs
}
