package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dotkit/pkg/engine"
)

// formatsCommand lists output formats and layout engines.
func (c *CLI) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported output formats and layout engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatsTable(engine.Formats()))
			fmt.Fprintln(out, StyleDim.Render("engines: ")+StyleHighlight.Render(layoutNames()))
			return nil
		},
	}
}

func formatsTable(formats []engine.Format) string {
	rows := make([][]string, len(formats))
	for i, f := range formats {
		rows[i] = []string{f.String(), "." + f.Extension(), formatKind(f), f.MIMEType()}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Format", "Ext", "Kind", "Content type").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}

func formatKind(f engine.Format) string {
	switch {
	case f.IsImage():
		return "binary"
	case f.IsSVG():
		return "svg"
	default:
		return "text"
	}
}

func layoutNames() string {
	names := make([]string, 0, len(engine.Layouts()))
	for _, l := range engine.Layouts() {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}
