package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/components"
	"github.com/matzehuels/maskcompo/pkg/pipeline"
)

// buildOpts holds the command-line flags shared by build, pick and stats.
type buildOpts struct {
	set      []string // name=value option assignments
	formats  string   // comma-separated output formats
	output   string   // output file, base path or directory
	noCache  bool     // disable artifact caching
	refresh  bool     // re-render even when cached
	strict   bool     // require every required option (no browser defaults)
	marks    bool     // draw marks in SVG and PDF output
	outlines bool     // include polygon outlines in JSON output
	scale    float64  // pixels per unit for SVG, PNG and PDF
	arcStep  string   // arc sampling step, e.g. "2deg"
	gdsUnit  float64  // GDSII user unit in meters
	gdsPrec  float64  // GDSII database unit in meters
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <component>",
		Short: "Build a component and write its artifacts",
		Long: `Build a registered component and render it.

Options are given as name=value pairs. Angles accept a "deg" suffix.
Required options that are not given fall back to their browser defaults
unless --strict is set.`,
		Example: `  maskcompo build cpw_bend --set bend_radius=20 --set dtheta=90deg -f svg,gds
  maskcompo build test_patterns -f png --scale 2 -o out/`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeComponents,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.pipelineOptions(cmd, args[0], &opts)
			if err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), popts, &opts)
		},
	}

	addBuildFlags(cmd, &opts)
	addRenderFlags(cmd, &opts)
	return cmd
}

// addBuildFlags registers the flags that select a component instance.
func addBuildFlags(cmd *cobra.Command, opts *buildOpts) {
	cmd.Flags().StringArrayVarP(&opts.set, "set", "s", nil, "set an option (name=value, repeatable)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on missing required options instead of using browser defaults")
	cmd.Flags().StringVar(&opts.arcStep, "arc-step", "", "arc sampling step (radians, or e.g. 1deg)")
}

// addRenderFlags registers the output and renderer flags of build.
func addRenderFlags(cmd *cobra.Command, opts *buildOpts) {
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, gds, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path or directory")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&opts.marks, "marks", false, "draw marks (SVG, PDF)")
	cmd.Flags().BoolVar(&opts.outlines, "outlines", false, "include polygon outlines (JSON)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, fmt.Sprintf("pixels per unit (default %g)", pipeline.DefaultScale))
	cmd.Flags().Float64Var(&opts.gdsUnit, "gds-unit", 0, "GDSII user unit in meters (default 1e-6)")
	cmd.Flags().Float64Var(&opts.gdsPrec, "gds-precision", 0, "GDSII database unit in meters (default 1e-9)")
}

// pipelineOptions merges config defaults with the flags that were set.
func (c *CLI) pipelineOptions(cmd *cobra.Command, component string, opts *buildOpts) (pipeline.Options, error) {
	popts, err := c.baseOptions()
	if err != nil {
		return popts, err
	}
	params, err := compo.ParseAssignments(opts.set)
	if err != nil {
		return popts, err
	}
	popts.Component = component
	popts.Params = params
	popts.Browser = !opts.strict
	popts.Refresh = opts.refresh

	if opts.formats != "" {
		if popts.Formats, err = pipeline.ParseFormats(opts.formats); err != nil {
			return popts, err
		}
	}
	if opts.arcStep != "" {
		if popts.ArcStep, err = compo.ParseValue(opts.arcStep); err != nil {
			return popts, fmt.Errorf("--arc-step: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("scale") {
		popts.Scale = opts.scale
	}
	if flags.Changed("marks") {
		popts.Marks = opts.marks
	}
	if flags.Changed("outlines") {
		popts.Outlines = opts.outlines
	}
	if flags.Changed("gds-unit") {
		popts.GDSUnit = opts.gdsUnit
	}
	if flags.Changed("gds-precision") {
		popts.GDSPrecision = opts.gdsPrec
	}
	return popts, nil
}

// runBuild executes the pipeline and writes one file per format.
func (c *CLI) runBuild(ctx context.Context, popts pipeline.Options, opts *buildOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	popts.SetRenderDefaults()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done("Built " + result.Compo.Name())

	paths, err := writeArtifacts(result.Artifacts, outputPaths(opts.output, result.Compo.Name(), popts.Formats))
	if err != nil {
		return err
	}

	printSuccess("Built %s", StyleTitle.Render(result.Compo.Name()))
	printDetail("%s", result.Compo.Params().String())
	printBuildStats(result.Stats.Primitives, len(result.Scene.Layers), result.CacheInfo.RenderHit)
	if result.Stats.Primitives == 0 {
		printWarning("%s has no geometry", result.Compo.Name())
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// outputPaths maps each format to a file path.
//
//	""            -> <name>.<format> in the working directory
//	"dir/"        -> dir/<name>.<format> (also for an existing directory)
//	"mask.svg"    -> mask.svg when it is the only format, else mask.<format>
//	"mask"        -> mask.<format>
func outputPaths(output, name string, formats []string) map[string]string {
	base := name
	switch {
	case output == "":
	case strings.HasSuffix(output, "/") || isDir(output):
		base = filepath.Join(output, name)
	default:
		ext := strings.TrimPrefix(filepath.Ext(output), ".")
		if pipeline.ValidFormats[ext] {
			if len(formats) == 1 && formats[0] == ext {
				return map[string]string{ext: output}
			}
			base = strings.TrimSuffix(output, "."+ext)
		} else {
			base = output
		}
	}

	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeArtifacts writes artifacts to their paths in format order and
// returns the written paths.
func writeArtifacts(artifacts map[string][]byte, paths map[string]string) ([]string, error) {
	var written []string
	for _, f := range orderedFormats(paths) {
		p := paths[f]
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, err
			}
		}
		if err := os.WriteFile(p, artifacts[f], 0o644); err != nil {
			return written, err
		}
		written = append(written, p)
	}
	return written, nil
}

// orderedFormats lists the keys of paths in the canonical format order.
func orderedFormats(paths map[string]string) []string {
	var out []string
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatGDS, pipeline.FormatJSON} {
		if _, ok := paths[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// completeComponents completes registered component names.
func completeComponents(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return components.Registry().Names(), cobra.ShellCompDirectiveNoFileComp
}
