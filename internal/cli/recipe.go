package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/maskcompo/pkg/pipeline"
	"github.com/matzehuels/maskcompo/pkg/recipe"
)

// recipeCommand creates the recipe command.
func (c *CLI) recipeCommand() *cobra.Command {
	var (
		outDir  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "recipe <file.toml>",
		Short: "Build every entry of a TOML recipe",
		Long: `Build every [[build]] entry of a TOML recipe.

Output goes to the recipe's out_dir, resolved relative to the recipe file,
or to --out-dir when given. Each entry is written as <name>.<format>.`,
		Example: `  maskcompo recipe masks.toml
  maskcompo recipe masks.toml --out-dir build/ --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := recipe.Load(args[0])
			if err != nil {
				return err
			}
			dir := outDir
			if dir == "" {
				dir = recipeOutDir(args[0], r.OutDir)
			}
			return c.runRecipe(cmd.Context(), r, dir, noCache, refresh)
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "output directory (overrides out_dir)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// recipeOutDir resolves a recipe's out_dir against the recipe location.
func recipeOutDir(recipePath, outDir string) string {
	if filepath.IsAbs(outDir) {
		return outDir
	}
	return filepath.Join(filepath.Dir(recipePath), outDir)
}

func (c *CLI) runRecipe(ctx context.Context, r *recipe.Recipe, dir string, noCache, refresh bool) error {
	base, err := c.baseOptions()
	if err != nil {
		return err
	}
	base.Refresh = refresh

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	jobs := r.Jobs(base)
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Building %d components...", len(jobs)))
	spinner.Start()

	type built struct {
		job    recipe.Job
		result *pipeline.Result
		paths  []string
	}
	var done []built
	for i, job := range jobs {
		spinner.Step(i+1, len(jobs), job.Name)
		c.Logger.Debug("recipe job", "job", job.Name, "component", job.Options.Component, "params", job.Options.Params.String())
		job.Options.SetRenderDefaults()
		result, err := runner.Execute(ctx, job.Options)
		if err != nil {
			spinner.Stop()
			return fmt.Errorf("%s: %w", job.Name, err)
		}
		paths, err := writeArtifacts(result.Artifacts, outputPaths(dir+"/", job.Name, job.Options.Formats))
		if err != nil {
			spinner.Stop()
			return fmt.Errorf("%s: %w", job.Name, err)
		}
		done = append(done, built{job: job, result: result, paths: paths})
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Built %d components", len(done)))

	for _, b := range done {
		printSuccess("%s %s", StyleTitle.Render(b.job.Name), StyleDim.Render("("+b.job.Options.Component+")"))
		printBuildStats(b.result.Stats.Primitives, len(b.result.Scene.Layers), b.result.CacheInfo.RenderHit)
		for _, p := range b.paths {
			printFile(p)
		}
	}
	return nil
}
