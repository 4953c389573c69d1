package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/racklayout/pkg/pipeline"
)

// errInvalidConfig is returned by validate when the configuration has errors,
// so that the process exits non-zero.
var errInvalidConfig = errors.New("configuration is invalid")

// validateCommand creates the validate command for dry-running a configuration.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		format     string
		permissive bool
		noCache    bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "validate [warehouse.json|toml|yaml]",
		Short: "Check a configuration without writing a layout",
		Long: `Check a configuration without writing a layout.

The configuration is decoded, validated and laid out in memory. Errors (invalid
values, unknown units, geometry that does not fit) and warnings (pallets that
match no storage cell, undersized cells) are reported. The command exits with
a non-zero status when the configuration has errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], format, permissive, noCache, asJSON)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "configuration format: json, toml, yaml (default: from extension)")
	cmd.Flags().BoolVar(&permissive, "permissive", false, "treat unknown units as centimeters and non-numeric values as 0")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, input, format string, permissive, noCache, asJSON bool) error {
	cfg, err := loadConfig(input, format)
	if err != nil {
		return fmt.Errorf("load config %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	report, err := runner.Validate(ctx, cfg, pipeline.Options{Mode: modeFlag(permissive), Logger: c.Logger})
	if err != nil {
		return err
	}
	prog.done("Validated "+input, "valid", report.Valid, "errors", len(report.Errors), "warnings", len(report.Warnings))

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(input, report)
	}
	if !report.Valid {
		return errInvalidConfig
	}
	return nil
}

// printReport prints a validation report for humans.
func printReport(input string, r *pipeline.ValidationReport) {
	if r.Valid {
		printSuccess("%s is valid", input)
	} else {
		printError("%s is invalid", input)
	}
	for _, e := range r.Errors {
		printDetail("%s: %s", e.Code, e.Message)
	}
	printWarnings(r.Warnings)
	if r.Summary != nil {
		printStats(*r.Summary, false)
		printKeyValue("cells", strconv.Itoa(r.Summary.Cells()))
		printKeyValue("smallest", fmt.Sprintf("%s × %s × %s",
			formatCM(r.Summary.SmallestCell.Width),
			formatCM(r.Summary.SmallestCell.Length),
			formatCM(r.Summary.SmallestCell.Height)))
	}
	if r.ConfigHash != "" {
		printKeyValue("hash", r.ConfigHash[:12])
	}
}
