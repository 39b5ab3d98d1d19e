package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dotkit/pkg/attr"
	"github.com/matzehuels/dotkit/pkg/dot"
	"github.com/matzehuels/dotkit/pkg/model"
)

// exampleCommand prints a sample graph built with the model API.
func (c *CLI) exampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print a sample DOT graph",
		Long: `Print a sample service diagram built with the graph model. Pipe it into
render to try the renderer:

  dotkit example | dotkit render -f svg -o example.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), dot.Serialize(exampleGraph()))
			return nil
		},
	}
}

// exampleGraph builds a small service topology. Nodes created inside the
// context frame share its defaults.
func exampleGraph() *model.Graph {
	ctx := model.NewContext()
	frame := ctx.Begin()
	frame.Nodes().Set("fontname", "Helvetica").Set("style", string(attr.StyleRounded.And(attr.StyleFilled)))
	frame.Links().Set("color", attr.ColorValue(string(attr.Grey)))
	defer ctx.End()

	web := ctx.Node("web").With(attr.ShapeBox, attr.LightGrey.Fill())
	api := ctx.Node("api").With(attr.ShapeBox, attr.Label("API gateway"))
	users := ctx.Node("users").With(attr.ShapeCylinder)
	orders := ctx.Node("orders").With(attr.ShapeCylinder)
	queue := ctx.Node("queue").With(attr.ShapeRecord, attr.Label("{<in> in|<out> out}"))

	storage := ctx.Graph("cluster_storage").
		With(attr.Label("storage"), attr.StyleDashed).
		WithNodes(users, orders)

	web.LinkTo(api)
	api.LinkTo(users, orders.Compass(model.North), queue.Record("in"))

	return ctx.Graph("services").
		Directed().
		With(attr.LeftToRight).
		WithNodes(web, api, queue).
		WithGraphs(storage)
}
