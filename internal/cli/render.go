package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/dotkit/pkg/engine"
)

// stdio marks standard input or output in place of a path.
const stdio = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	optionFlags

	output  string // output file (single format) or base path (multiple)
	formats string // comma-separated formats
	backend string // graphviz, cmd or auto
	noCache bool   // bypass the render cache
	pick    bool   // choose formats interactively
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a DOT file to one or more formats",
		Long: `Render a DOT file (or standard input) through Graphviz.

Several formats can be requested at once with a comma-separated --format;
they are rendered concurrently. Without --output, files are written next to
the input, or to standard output when reading from standard input.`,
		Example: `  dotkit render graph.dot -f svg,png --width 800
  dotkit example | dotkit render -f svg -o - > graph.svg
  dotkit render graph.dot --options "{format:'png',dpi:'150'}"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := stdio
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd, input, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple formats) or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s), comma-separated (default from config, svg)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "render backend: graphviz, cmd, auto (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "pick output formats interactively")

	return cmd
}

// renderJob is one requested format and where its result goes.
type renderJob struct {
	opts engine.Options
	path string
	res  *engine.Result
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	base, err := c.Config.RenderOptions()
	if err != nil {
		return err
	}
	if input != stdio && c.Config.Render.BaseDir == "" {
		base = base.WithBaseDir(filepath.Dir(input))
	}
	resolved, err := opts.resolve(cmd, base)
	if err != nil {
		return err
	}

	formats, err := c.selectFormats(opts, resolved.Format)
	if err != nil || len(formats) == 0 {
		return err
	}

	src, err := readSource(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	jobs, err := planOutputs(input, opts.output, resolved, formats)
	if err != nil {
		return err
	}

	r, cleanup, err := c.newRenderer(ctx, opts.backend, opts.noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	toStdout := len(jobs) == 1 && jobs[0].path == stdio
	var spinner *Spinner
	if !toStdout {
		spinner = newSpinner(ctx, fmt.Sprintf("Rendering %s", describeFormats(formats)))
		spinner.Start()
	}

	prog := newProgress(logger)
	err = renderAll(ctx, r, src, jobs)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if toStdout {
		_, err := jobs[0].res.WriteTo(cmd.OutOrStdout())
		return err
	}
	for _, job := range jobs {
		if err := job.res.WriteFile(job.path); err != nil {
			return err
		}
		for _, w := range job.res.Warnings {
			printWarning("%s: %s", job.opts.Format, w)
		}
		printArtifact(job.path, len(job.res.Data()), job.res.Cached)
	}
	prog.done(fmt.Sprintf("Rendered %s", describeFormats(formats)))
	return nil
}

// renderAll renders every job concurrently; the first error cancels the
// rest.
func renderAll(ctx context.Context, r *engine.Renderer, src string, jobs []*renderJob) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		g.Go(func() error {
			res, err := r.RenderSource(gctx, src, job.opts)
			if err != nil {
				return fmt.Errorf("%s: %w", job.opts.Format, err)
			}
			job.res = res
			return nil
		})
	}
	return g.Wait()
}

func (c *CLI) selectFormats(opts *renderOpts, def engine.Format) ([]engine.Format, error) {
	if !opts.pick {
		return parseFormats(opts.formats, def)
	}
	m, err := tea.NewProgram(NewFormatPickerModel(engine.Formats())).Run()
	if err != nil {
		return nil, err
	}
	picked := m.(FormatPickerModel).Chosen()
	if len(picked) == 0 {
		printInfo("No format selected")
	}
	return picked, nil
}

func readSource(stdin io.Reader, input string) (string, error) {
	if input == stdio {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// planOutputs decides where each format is written. One format goes to
// output as given; several formats share output as base path. Reading from
// stdin without output writes a single format to stdout.
func planOutputs(input, output string, opts engine.Options, formats []engine.Format) ([]*renderJob, error) {
	if output == stdio && len(formats) > 1 {
		return nil, fmt.Errorf("cannot write %d formats to standard output", len(formats))
	}
	if output == "" && input == stdio {
		if len(formats) == 1 {
			output = stdio
		} else {
			output = "graph"
		}
	}

	exts := map[string]int{}
	for _, f := range formats {
		exts[f.Extension()]++
	}

	base := basePath(output, input)
	jobs := make([]*renderJob, len(formats))
	for i, f := range formats {
		job := &renderJob{opts: opts.WithFormat(f)}
		switch {
		case len(formats) == 1 && output != "":
			job.path = output
		case exts[f.Extension()] > 1:
			// svg and svg-standalone would overwrite each other
			job.path = engine.DefaultFileName(base+"-"+f.String(), f)
		default:
			job.path = engine.DefaultFileName(base, f)
		}
		if job.path == input {
			job.path = engine.DefaultFileName(base+"-"+f.String(), f)
		}
		jobs[i] = job
	}
	return jobs, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := engine.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func describeFormats(formats []engine.Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}
