// Package cli implements the racklayout command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/racklayout/pkg/buildinfo"
	"github.com/matzehuels/racklayout/pkg/cache"
	"github.com/matzehuels/racklayout/pkg/config"
	"github.com/matzehuels/racklayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "racklayout"

	// stdinPath selects standard input in place of a configuration file.
	stdinPath = "-"
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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Racklayout computes 3D warehouse rack layouts",
		Long:         `Racklayout turns a warehouse configuration (dimensions, workstations, rack sides and pallets) into a 3D layout of storage cells, gaps and aisles with exact positions and sizes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// newCache opens the file cache, falling back to no caching when the cache
// directory cannot be determined.
func newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, cache.Config{Backend: cache.BackendFile, Dir: dir})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/racklayout/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// modeFlag returns the pipeline mode selected by --permissive.
func modeFlag(permissive bool) string {
	if permissive {
		return pipeline.ModePermissive
	}
	return pipeline.ModeStrict
}

// loadConfig reads a warehouse configuration from path, or from stdin when
// path is "-". An empty format is detected from the file extension (JSON for
// stdin).
func loadConfig(path, format string) (*config.WarehouseConfig, error) {
	if format == "" {
		if path == stdinPath {
			return config.Decode(os.Stdin, config.FormatJSON)
		}
		return config.Load(path)
	}

	f, err := config.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if path == stdinPath {
		return config.Decode(os.Stdin, f)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return config.Decode(file, f)
}
