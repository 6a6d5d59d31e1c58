package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/components"
	"github.com/matzehuels/maskcompo/pkg/geom"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered components",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(componentTable(components.Registry()))
			printNextStep("Inspect a component", "maskcompo describe <component>")
			return nil
		},
	}
}

// componentTable renders one row per registered component.
func componentTable(reg *compo.Registry) string {
	var rows [][]string
	for _, name := range reg.Names() {
		b, err := reg.Get(name)
		if err != nil {
			continue
		}
		spec := b.Spec()
		rows = append(rows, []string{
			name,
			strconv.Itoa(len(spec.Layers)),
			strconv.Itoa(len(spec.Marks)),
			strconv.Itoa(len(spec.Options)),
			spec.Description,
		})
	}
	return renderTable([]string{"Component", "Layers", "Marks", "Options", "Description"}, rows)
}

// describeCommand creates the describe command.
func (c *CLI) describeCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "describe <component>",
		Short:             "Show a component's layers, marks and options",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeComponents,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := components.Registry().Get(args[0])
			if err != nil {
				return err
			}
			spec := b.Spec()

			fmt.Println(StyleTitle.Render(spec.Name))
			if spec.Description != "" {
				printDetail("%s", spec.Description)
			}
			fmt.Println()

			if len(spec.Layers) > 0 {
				fmt.Println(renderTable([]string{"Layer", "Description"}, layerRows(spec.Layers)))
			}
			if len(spec.Marks) > 0 {
				fmt.Println(renderTable([]string{"Mark", "Description"}, markRows(spec.Marks)))
			}
			if len(spec.Options) > 0 {
				fmt.Println(renderTable([]string{"Option", "Kind", "Default", "Description"}, optionRows(spec.Options)))
			}
			printNextStep("Build it", "maskcompo build "+spec.Name)
			return nil
		},
	}
}

func layerRows(layers []compo.Layer) [][]string {
	rows := make([][]string, len(layers))
	for i, l := range layers {
		rows[i] = []string{l.Name, l.Description}
	}
	return rows
}

func markRows(marks []compo.Mark) [][]string {
	rows := make([][]string, len(marks))
	for i, m := range marks {
		rows[i] = []string{m.Name, m.Description}
	}
	return rows
}

// optionRows shows required options with their browser default in
// parentheses and angles in degrees.
func optionRows(opts []compo.Option) [][]string {
	rows := make([][]string, len(opts))
	for i, o := range opts {
		var def string
		if o.Required {
			def = "(" + formatOption(o, o.BrowserDefault) + ")"
		} else {
			def = formatOption(o, o.Default)
		}
		rows[i] = []string{o.Name, string(o.Kind), def, o.Description}
	}
	return rows
}

func formatOption(o compo.Option, v float64) string {
	if o.Kind == compo.KindAngle {
		return formatNumber(geom.Degrees(v)) + "deg"
	}
	return formatNumber(v)
}
