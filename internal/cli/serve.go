package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/maskcompo/internal/server"
	"github.com/matzehuels/maskcompo/pkg/cache"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve component previews over HTTP",
		Long: `Serve component previews over HTTP.

Routes:
  GET /healthz
  GET /components
  GET /components/{name}
  GET /components/{name}/render.{svg|png|pdf|gds|json}?option=value
  GET /components/{name}/tree.{svg|dot}

Artifacts are cached in redis when --redis or $` + redisEnv + ` is set,
otherwise in the local file cache.`,
		Example: `  maskcompo serve --addr :8080
  curl 'localhost:8080/components/cpw_bend/render.svg?dtheta=90deg'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			base, err := c.baseOptions()
			if err != nil {
				return err
			}

			var store cache.Cache
			if noCache {
				store = cache.NewNullCache()
			} else if store, err = c.newServerCache(ctx, c.redisAddr(redisAddr)); err != nil {
				return err
			}
			runner := c.runnerFor(store)
			defer runner.Close()

			printSuccess("Serving on %s", StyleTitle.Render("http://"+addr))
			printNextStep("Try", "curl http://"+addr+"/components")
			return server.New(runner, base, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address or URL for the artifact cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}
