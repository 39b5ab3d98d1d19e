package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dotkit/pkg/engine"
)

// optionFlags are the render option flags shared by render and
// options encode.
type optionFlags struct {
	literal    string
	engine     string
	width      int
	height     int
	scale      float64
	dpi        float64
	fontAdjust float64
	basedir    string
	yInvert    bool
	images     []string
}

func (f *optionFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.literal, "options", "", "options object literal, e.g. \"{format:'png',dpi:'96'}\"")
	fs.StringVarP(&f.engine, "engine", "e", "", "layout engine: dot, neato, circo, twopi, fdp, sfdp, osage, patchwork")
	fs.IntVar(&f.width, "width", 0, "output width in pixels (0 keeps the natural size)")
	fs.IntVar(&f.height, "height", 0, "output height in pixels (0 keeps the natural size)")
	fs.Float64Var(&f.scale, "scale", engine.DefaultScale, "output scale factor")
	fs.Float64Var(&f.dpi, "dpi", engine.DefaultDPI, "resolution the size is computed at")
	fs.Float64Var(&f.fontAdjust, "font-adjust", engine.DefaultFontAdjust, "multiply every font size by this factor")
	fs.StringVar(&f.basedir, "basedir", "", "directory relative image paths are resolved against")
	fs.BoolVar(&f.yInvert, "y-invert", false, "invert the y axis of coordinates in the output")
	fs.StringSliceVar(&f.images, "image", nil, "image referenced by the graph (repeatable)")
}

// resolve layers options: base (from the config file), then the --options
// literal, then individually set flags.
func (f *optionFlags) resolve(cmd *cobra.Command, base engine.Options) (engine.Options, error) {
	opts := base
	if f.literal != "" {
		parsed, err := engine.ParseOptions(f.literal)
		if err != nil {
			return opts, err
		}
		opts = parsed
	}

	changed := cmd.Flags().Changed
	if changed("engine") {
		l, err := engine.ParseLayout(f.engine)
		if err != nil {
			return opts, err
		}
		opts = opts.WithEngine(l)
	}
	if changed("width") {
		opts = opts.WithWidth(f.width)
	}
	if changed("height") {
		opts = opts.WithHeight(f.height)
	}
	if changed("scale") {
		opts = opts.WithScale(f.scale)
	}
	if changed("dpi") {
		opts = opts.WithDPI(f.dpi)
	}
	if changed("font-adjust") {
		opts = opts.WithFontAdjust(f.fontAdjust)
	}
	if changed("basedir") {
		opts = opts.WithBaseDir(f.basedir)
	}
	if changed("y-invert") {
		opts = opts.WithYInvert(f.yInvert)
	}
	for _, img := range f.images {
		var err error
		if opts, err = opts.WithImage(img); err != nil {
			return opts, err
		}
	}
	return opts, opts.Validate()
}
