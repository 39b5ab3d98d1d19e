package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dotkit/pkg/engine"
)

// plainOptions drops the text marshaling of engine.Options so JSON shows
// the individual fields.
type plainOptions engine.Options

// optionsCommand converts between flags and the object-literal form.
func (c *CLI) optionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Convert render options to and from the object-literal form",
	}

	cmd.AddCommand(c.optionsEncodeCommand())
	cmd.AddCommand(c.optionsDecodeCommand())

	return cmd
}

// optionsEncodeCommand creates the "options encode" subcommand.
func (c *CLI) optionsEncodeCommand() *cobra.Command {
	var flags optionFlags
	var format string

	cmd := &cobra.Command{
		Use:     "encode",
		Short:   "Print the object literal for the given flags",
		Example: `  dotkit options encode --format png --width 800`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := c.Config.RenderOptions()
			if err != nil {
				return err
			}
			opts, err := flags.resolve(cmd, base)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				f, err := engine.ParseFormat(format)
				if err != nil {
					return err
				}
				opts = opts.WithFormat(f)
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.String())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format")
	return cmd
}

// optionsDecodeCommand creates the "options decode" subcommand.
func (c *CLI) optionsDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "decode <literal>",
		Short:   "Parse an object literal and print the resolved options as JSON",
		Example: `  dotkit options decode "{format:'png',width:'800px'}"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := engine.ParseOptions(args[0])
			if err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(plainOptions(opts))
		},
	}
}
