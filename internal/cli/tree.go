package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/pipeline"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	set        []string
	strict     bool
	output     string // output file; its extension picks the format
	format     string // svg (default), dot or pdf
	detailed   bool   // parameters on component nodes, layers on primitives
	primitives bool   // draw leaf shapes too
	noCache    bool
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree <component>",
		Short: "Draw a component's hierarchy",
		Long: `Draw the component hierarchy as a Graphviz diagram.

Without --output the DOT source is printed to stdout. With an output file,
the format follows its extension (.svg, .dot, .pdf) unless --format is set.`,
		Example: `  maskcompo tree align_marker --detailed -o marker_tree.svg
  maskcompo tree test_patterns | dot -Tpng > tree.png`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeComponents,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := compo.ParseAssignments(opts.set)
			if err != nil {
				return err
			}
			format := treeFormat(opts.format, opts.output)

			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			data, err := runner.Tree(cmd.Context(), pipeline.TreeOptions{
				Component:  args[0],
				Params:     params,
				Browser:    !opts.strict,
				Format:     format,
				Detailed:   opts.detailed,
				Primitives: opts.primitives,
			})
			if err != nil {
				return err
			}

			if opts.output == "" {
				if format != "dot" {
					return fmt.Errorf("%s output needs --output", format)
				}
				_, err := os.Stdout.Write(data)
				return err
			}
			if dir := filepath.Dir(opts.output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Drew %s hierarchy", StyleTitle.Render(args[0]))
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&opts.set, "set", "s", nil, "set an option (name=value, repeatable)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on missing required options instead of using browser defaults")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.svg, .dot or .pdf)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "diagram format: svg, dot, pdf (default from --output, else dot)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show parameters and layers")
	cmd.Flags().BoolVar(&opts.primitives, "primitives", false, "include primitive shapes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable diagram caching")

	return cmd
}

// treeFormat picks the diagram format from the flag or the output file.
func treeFormat(flag, output string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".svg":
		return pipeline.FormatSVG
	case ".pdf":
		return pipeline.FormatPDF
	default:
		return "dot"
	}
}
