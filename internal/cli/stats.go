package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/maskcompo/pkg/geom"
	"github.com/matzehuels/maskcompo/pkg/render"
	"github.com/matzehuels/maskcompo/pkg/render/stats"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		opts   buildOpts
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:               "stats <component>",
		Short:             "Show per-layer polygon counts, areas and extents",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeComponents,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.pipelineOptions(cmd, args[0], &opts)
			if err != nil {
				return err
			}
			popts.SetRenderDefaults()

			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			built, err := runner.Build(cmd.Context(), popts.Component, popts.Params, popts.Browser)
			if err != nil {
				return err
			}
			summary := stats.Compute(render.Flatten(built, render.WithArcStep(popts.ArcStep)))

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			fmt.Println(StyleTitle.Render(built.Name()) + " " + StyleDim.Render(built.Params().String()))
			fmt.Println(statsTable(summary))
			printKeyValue("primitives", strconv.Itoa(summary.Polygons))
			printKeyValue("extent", formatExtent(summary.BBox))
			return nil
		},
	}

	addBuildFlags(cmd, &opts)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")

	return cmd
}

// statsTable renders one row per layer.
func statsTable(s stats.Summary) string {
	rows := make([][]string, len(s.Layers))
	for i, l := range s.Layers {
		rows[i] = []string{l.Name, strconv.Itoa(l.Polygons), formatNumber(l.Area), formatExtent(l.BBox)}
	}
	return renderTable([]string{"Layer", "Polygons", "Area", "Extent"}, rows)
}

// formatExtent prints a bbox as "width × height".
func formatExtent(b geom.BBox) string {
	if b.IsEmpty() {
		return "-"
	}
	return formatNumber(b.Width()) + " × " + formatNumber(b.Height())
}
