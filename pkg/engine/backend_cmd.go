package engine

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/matzehuels/dotkit/pkg/errors"
)

// CommandBackend runs the Graphviz binaries installed on the host. The
// layout engine selects the binary (dot, neato, ...); source is written on
// stdin and the result read from stdout.
type CommandBackend struct {
	// LookPath resolves binaries. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// NewCommandBackend returns a backend using the binaries on PATH.
func NewCommandBackend() *CommandBackend {
	return &CommandBackend{LookPath: exec.LookPath}
}

// Name implements [Backend].
func (b *CommandBackend) Name() string { return BackendCommand }

// Execute implements [Backend].
func (b *CommandBackend) Execute(ctx context.Context, src string, opts Options) (string, error) {
	bin := string(opts.Engine)
	if bin == "" {
		bin = string(LayoutDot)
	}
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	lookPath := b.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(bin)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeEngineUnavailable, err, "%s command not found", bin)
	}

	viz := opts.Format.VizName()
	if viz == "" {
		viz = "svg"
	}
	args := []string{"-T" + viz}
	if opts.YInvert {
		args = append(args, "-y")
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(src)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "%s", bin)
		}
		return "", errors.Wrap(errors.ErrCodeRenderFailed, err, "%s: %s", bin, strings.TrimSpace(errBuf.String()))
	}
	return out.String(), nil
}

// Close implements [Backend].
func (b *CommandBackend) Close() error { return nil }
