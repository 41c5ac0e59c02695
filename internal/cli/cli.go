// Package cli implements the apexkit command-line interface.
//
// # Commands
//
//   - render: build a chart definition and write its options, data or HTML
//   - serve: serve a directory of definitions over HTTP
//   - new: scaffold a commented definition file
//   - cache: inspect and clear the local artifact cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. In verbose
// mode build, cache and request events are logged through observability
// hooks as well.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apexkit/pkg/buildinfo"
	"github.com/matzehuels/apexkit/pkg/cache"
	"github.com/matzehuels/apexkit/pkg/observability"
	"github.com/matzehuels/apexkit/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "apexkit"

	// cacheDirEnv overrides the local cache directory.
	cacheDirEnv = "APEXKIT_CACHE_DIR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// out receives command results; status lines and logs go to the
	// logger's writer.
	out io.Writer
	ui  *ui
}

// New creates a CLI that prints results to out and logs to logw.
func New(out, logw io.Writer, level log.Level) *CLI {
	logw = &lockedWriter{w: logw}
	return &CLI{
		Logger: newLogger(logw, level),
		out:    out,
		ui:     newUI(logw),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "apexkit builds ApexCharts configurations on the server",
		Long:         `apexkit turns chart definitions into ApexCharts options and data, and serves them to browsers that poll for fresh data.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Install()
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	cfg := cache.Config{Backend: cache.BackendFile, Dir: cacheDir()}
	if noCache {
		cfg.Backend = cache.BackendNone
	}
	store, err := cache.Open(ctx, cfg)
	if err != nil {
		c.ui.warning("Cache unavailable, continuing without it: %v", err)
		store = cache.NewNullCache()
	}
	return pipeline.NewRunner(store, nil, c.Logger)
}

// cacheDir returns the local cache directory, honoring APEXKIT_CACHE_DIR.
func cacheDir() string {
	if dir := os.Getenv(cacheDirEnv); dir != "" {
		return dir
	}
	return cache.DefaultDir()
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
