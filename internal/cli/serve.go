package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apexkit/internal/config"
	"github.com/matzehuels/apexkit/pkg/cache"
	"github.com/matzehuels/apexkit/pkg/chart"
	"github.com/matzehuels/apexkit/pkg/definition"
	"github.com/matzehuels/apexkit/pkg/pipeline"
	"github.com/matzehuels/apexkit/pkg/server"
)

// serveOpts holds the command-line flags for the serve command. Set flags
// override the config file and environment.
type serveOpts struct {
	configPath string
	addr       string
	chartsDir  string
	cacheType  string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a directory of chart definitions over HTTP",
		Long: `Serve every *.toml definition in the charts directory.

Each chart is available as options (/api/charts/NAME/options), as polled
data (/api/charts/NAME/data) and as a standalone page (/charts/NAME).
Settings are read from --config, then APEXKIT_* environment variables, then
flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = opts.addr
			}
			if cmd.Flags().Changed("charts") {
				cfg.Charts.Dir = opts.chartsDir
			}
			if cmd.Flags().Changed("cache") {
				cfg.Cache.Backend = opts.cacheType
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (TOML)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&opts.chartsDir, "charts", "", "directory of chart definitions (default charts)")
	cmd.Flags().StringVar(&opts.cacheType, "cache", "", "cache backend: "+strings.Join(cache.Backends, ", "))

	return cmd
}

// runServe loads the definitions, opens the cache and serves until ctx is
// cancelled.
func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	reg := chart.NewRegistry()
	files, err := definition.LoadDir(cfg.Charts.Dir, reg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		c.ui.warning("No definitions in %s", cfg.Charts.Dir)
	}
	for _, f := range files {
		c.Logger.Debug("registered chart", "name", f.Name(), "path", f.Path())
	}

	store, err := cache.Open(ctx, cfg.CacheOptions())
	if err != nil {
		return fmt.Errorf("open %s cache: %w", cfg.Cache.Backend, err)
	}
	runner := pipeline.NewRunner(store, cfg.Keyer(), c.Logger)
	defer runner.Close()

	srv := server.New(reg, runner, cfg.ChartConfig(), c.Logger)

	c.ui.line(StyleTitle.Render(appName) + " " + StyleDim.Render("serving charts"))
	c.ui.keyValue("Address", cfg.Server.Addr)
	c.ui.keyValue("Charts", fmt.Sprintf("%d from %s", len(files), cfg.Charts.Dir))
	c.ui.keyValue("Cache", cfg.Cache.Backend)
	if len(files) > 0 {
		c.ui.nextStep("Open", StyleLink.Render(localURL(cfg.Server.Addr)+"/charts/"+files[0].Name()))
	}

	err = srv.Run(ctx, cfg.ServerOptions())
	if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// localURL turns a listen address into a URL a local browser can open.
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
