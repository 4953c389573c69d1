package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/racklayout/pkg/layout"
	"github.com/matzehuels/racklayout/pkg/pipeline"
)

// layoutFlags holds the flags of the layout command.
type layoutFlags struct {
	output     string
	format     string
	permissive bool
	noCache    bool
	refresh    bool
	id         string
	summary    bool
}

// layoutCommand creates the layout command for computing warehouse layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [warehouse.json|toml|yaml]",
		Short: "Compute a warehouse layout from a configuration file",
		Long: `Compute a warehouse layout from a configuration file.

The configuration describes the warehouse dimensions, the workstations and
the rack sides on either side of each workstation's central aisle. The output
is a layout.json file with the position and size of every storage cell, gap
and central aisle, plus the pallets placed in the storage cells.

Use "-" to read the configuration from stdin and "-o -" to write the layout
to stdout.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "configuration format: json, toml, yaml (default: from extension)")
	cmd.Flags().BoolVar(&flags.permissive, "permissive", false, "treat unknown units as centimeters and non-numeric values as 0")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().StringVar(&flags.id, "id", "", "layout id (default: configuration id or derived from its hash)")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a per-workstation summary table")

	return cmd
}

// runLayout loads the configuration, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, flags layoutFlags) error {
	cfg, err := loadConfig(input, flags.format)
	if err != nil {
		return fmt.Errorf("load config %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	toStdout := flags.output == stdinPath
	opts := pipeline.Options{
		Mode:    modeFlag(flags.permissive),
		ID:      flags.id,
		Refresh: flags.refresh,
		Logger:  c.Logger,
	}

	var spinner *Spinner
	if !toStdout {
		spinner = newSpinner(ctx, fmt.Sprintf("Computing layout for %d workstations...", cfg.NumWorkstations))
		spinner.Start()
	}

	result, err := runner.Execute(ctx, cfg, opts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Layout failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if toStdout {
		return layout.Write(result.Layout, os.Stdout)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultLayoutPath(input)
	}
	if err := layout.WriteFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Summary, result.CacheInfo.LayoutHit)
	printWarnings(result.Layout.Warnings)
	if flags.summary {
		fmt.Println(summaryTable(result.Layout))
	}
	printNewline()
	printNextStep("Browse", appName+" inspect "+outputPath)

	return nil
}

// defaultLayoutPath derives the output path from the configuration path.
func defaultLayoutPath(input string) string {
	if input == stdinPath {
		return "layout.json"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
