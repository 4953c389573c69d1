package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/racklayout/internal/server"
	"github.com/matzehuels/racklayout/pkg/cache"
	"github.com/matzehuels/racklayout/pkg/pipeline"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		settingsPath string
		addr         string
		cacheBackend string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Settings are read from an optional file (--config), then from RACKLAYOUT_*
environment variables (for example RACKLAYOUT_SERVER_ADDR or
RACKLAYOUT_CACHE_URL). Flags override both.

Endpoints:
  POST /api/warehouse/create     compute a layout
  POST /api/warehouse/validate   dry-run a configuration
  GET  /api/stats                request and layout counters
  GET  /healthz                  liveness
  GET  /version                  build information`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := server.LoadSettings(settingsPath)
			if err != nil {
				return err
			}
			if addr != "" {
				settings.Addr = addr
			}
			if cacheBackend != "" {
				settings.Cache.Backend = cacheBackend
			}
			return c.runServe(cmd.Context(), settings)
		},
	}

	cmd.Flags().StringVarP(&settingsPath, "config", "c", "", "service settings file (yaml, toml or json)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&cacheBackend, "cache", "", "cache backend: none, file, redis, mongo")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, settings *server.Settings) error {
	logger := loggerFromContext(ctx)

	store, err := cache.Open(ctx, settings.Cache)
	if err != nil {
		return fmt.Errorf("open %s cache: %w", settings.Cache.Backend, err)
	}
	runner := pipeline.NewRunner(store, nil, logger)
	defer runner.Close()

	printSuccess("Serving on %s", StyleLink.Render("http://"+displayAddr(settings.Addr)))
	printDetail("cache: %s  default mode: %s", settings.Cache.Backend, settings.Mode)

	return server.ListenAndServe(ctx, server.New(runner, settings, logger), settings, logger)
}

// displayAddr turns a listen address such as ":8080" into a clickable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
