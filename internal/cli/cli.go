// Package cli implements the maskcompo command-line interface.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/matzehuels/maskcompo/pkg/buildinfo"
	"github.com/matzehuels/maskcompo/pkg/cache"
	"github.com/matzehuels/maskcompo/pkg/components"
	"github.com/matzehuels/maskcompo/pkg/pipeline"
	"github.com/matzehuels/maskcompo/pkg/recipe"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "maskcompo"

	// defaultAddr is the default listen address of the preview server.
	defaultAddr = "localhost:8080"

	// redisEnv names the redis server used by "serve" when --redis is unset.
	redisEnv = "MASKCOMPO_REDIS"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *recipe.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	gg.SetLogger(slog.New(c.Logger))
	c.installHooks()
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "maskcompo builds parametric photomask components",
		Long:         `maskcompo builds coplanar waveguide segments and bends, alignment markers and test patterns from a few parameters, and renders them as SVG, PNG, PDF, GDSII or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./"+recipe.ConfigFile+")")

	// Register all subcommands
	root.AddCommand(c.listCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.recipeCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig reads the config file once per process.
func (c *CLI) loadConfig() (*recipe.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	path := c.configPath
	if path == "" {
		path = recipe.FindConfig()
	}
	cfg, err := recipe.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	c.config = cfg
	return cfg, nil
}

// baseOptions returns pipeline options seeded from the config file.
func (c *CLI) baseOptions() (pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := cfg.Options()
	opts.Logger = c.Logger
	return opts, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return c.runnerFor(store), nil
}

// runnerFor creates a runner over store. Keys are scoped to the build
// version so an upgrade never serves artifacts from older geometry code.
func (c *CLI) runnerFor(store cache.Cache) *pipeline.Runner {
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":"+buildinfo.Version+":")
	return pipeline.NewRunner(components.Registry(), store, keyer, c.Logger)
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newServerCache connects to redis when an address is given and falls back
// to the file cache otherwise.
func (c *CLI) newServerCache(ctx context.Context, redisAddr string) (cache.Cache, error) {
	if redisAddr == "" {
		return c.newCache(false)
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache", "addr", redisAddr)
	return rc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory. The config file may override
// the XDG default.
func (c *CLI) cacheDir() (string, error) {
	cfg, err := c.loadConfig()
	if err == nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// redisAddr resolves the redis address from flag, environment and config,
// in that order.
func (c *CLI) redisAddr(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(redisEnv); env != "" {
		return env
	}
	if cfg, err := c.loadConfig(); err == nil {
		return cfg.Cache.Redis
	}
	return ""
}
