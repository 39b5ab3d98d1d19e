package engine

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/dotkit/pkg/errors"
)

// fakeBackend records calls and returns a canned result.
type fakeBackend struct {
	name     string
	out      string
	err      error
	closeErr error

	mu    sync.Mutex
	calls []string
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Execute(_ context.Context, src string, _ Options) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, src)
	return f.out, f.err
}

func (f *fakeBackend) Close() error { return f.closeErr }

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestFallback(t *testing.T) {
	ctx := context.Background()
	broken := &fakeBackend{name: "broken", err: stderrors.New("no wasm")}
	working := &fakeBackend{name: "working", out: "<svg/>"}

	t.Run("first success wins", func(t *testing.T) {
		b := Fallback(broken, working)
		out, err := b.Execute(ctx, "graph {}", DefaultOptions())
		if err != nil || out != "<svg/>" {
			t.Fatalf("Execute() = %q, %v", out, err)
		}
		if working.callCount() != 1 {
			t.Errorf("working calls = %d, want 1", working.callCount())
		}
	})

	t.Run("all failures aggregated", func(t *testing.T) {
		other := &fakeBackend{name: "other", err: stderrors.New("no binary")}
		_, err := Fallback(broken, other).Execute(ctx, "graph {}", DefaultOptions())
		if !errors.Is(err, errors.ErrCodeEngineUnavailable) {
			t.Fatalf("error = %v, want ENGINE_UNAVAILABLE", err)
		}
		for _, want := range []string{"broken: no wasm", "other: no binary"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q does not mention %q", err, want)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Fallback().Execute(ctx, "graph {}", DefaultOptions())
		if !errors.Is(err, errors.ErrCodeEngineUnavailable) {
			t.Errorf("error = %v, want ENGINE_UNAVAILABLE", err)
		}
	})

	t.Run("name and close", func(t *testing.T) {
		a := &fakeBackend{name: "a", closeErr: stderrors.New("a failed")}
		b := &fakeBackend{name: "b", closeErr: stderrors.New("b failed")}
		fb := Fallback(a, b)
		if got := fb.Name(); got != "fallback(a,b)" {
			t.Errorf("Name() = %q", got)
		}
		err := fb.Close()
		if err == nil || !strings.Contains(err.Error(), "a failed") || !strings.Contains(err.Error(), "b failed") {
			t.Errorf("Close() = %v, want both errors", err)
		}
	})
}

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{"graphviz", BackendGraphviz, false},
		{"CMD", BackendCommand, false},
		{"auto", "fallback(graphviz,cmd)", false},
		{"", "fallback(graphviz,cmd)", false},
		{"java", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBackend(tt.name)
			if tt.wantErr {
				if !stderrors.Is(err, ErrBackendNotFound) {
					t.Errorf("NewBackend(%q) error = %v, want ErrBackendNotFound", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend(%q) error: %v", tt.name, err)
			}
			defer b.Close()
			if b.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", b.Name(), tt.wantName)
			}
		})
	}
}

func TestCommandBackend_MissingBinary(t *testing.T) {
	var looked string
	b := &CommandBackend{LookPath: func(file string) (string, error) {
		looked = file
		return "", stderrors.New("not found")
	}}

	_, err := b.Execute(context.Background(), "graph {}", DefaultOptions().WithEngine(LayoutNeato))
	if !errors.Is(err, errors.ErrCodeEngineUnavailable) {
		t.Errorf("error = %v, want ENGINE_UNAVAILABLE", err)
	}
	if !strings.HasPrefix(looked, "neato") {
		t.Errorf("looked up %q, want neato binary", looked)
	}
}

func TestGraphvizBackend_CloseUnused(t *testing.T) {
	b := NewGraphvizBackend()
	if err := b.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if _, err := b.Execute(context.Background(), "graph {}", DefaultOptions()); !errors.Is(err, errors.ErrCodeEngineUnavailable) {
		t.Errorf("Execute() after Close error = %v, want ENGINE_UNAVAILABLE", err)
	}
}

func TestGraphvizBackend_RejectsYInvert(t *testing.T) {
	b := NewGraphvizBackend()
	defer b.Close()

	_, err := b.Execute(context.Background(), "graph {}", DefaultOptions().WithYInvert(true))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Execute() with YInvert error = %v, want UNSUPPORTED", err)
	}
}

func TestFallback_YInvertReachesCommand(t *testing.T) {
	cmd := &fakeBackend{name: BackendCommand, out: "ok"}
	b := Fallback(NewGraphvizBackend(), cmd)
	defer b.Close()

	out, err := b.Execute(context.Background(), "graph {}", DefaultOptions().WithYInvert(true))
	if err != nil || out != "ok" {
		t.Errorf("Execute() = %q, %v, want ok from the command backend", out, err)
	}
}

func (f *fakeBackend) lastSource() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}
