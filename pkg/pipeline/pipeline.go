// Package pipeline runs warehouse layout computation with caching.
//
// The CLI and the HTTP API both go through a [Runner] so that validation,
// cache lookups, layout IDs and logging behave the same at every entry point.
//
// # Stages
//
//  1. Validate: check the configuration structure
//  2. Hash: encode the configuration deterministically and hash it
//  3. Layout: look the hash up in the cache, or build and store the layout
//
// Layouts are a pure function of the configuration and the unit mode, so a
// cache hit returns exactly what a fresh build would.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, cfg, pipeline.Options{Mode: "strict"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	layout.Write(result.Layout, os.Stdout)
//
// Dry runs report problems without returning geometry:
//
//	report, err := runner.Validate(ctx, cfg, pipeline.Options{})
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/racklayout/pkg/cache"
	"github.com/matzehuels/racklayout/pkg/config"
	errs "github.com/matzehuels/racklayout/pkg/errors"
	"github.com/matzehuels/racklayout/pkg/layout"
	"github.com/matzehuels/racklayout/pkg/units"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	ModeStrict     = "strict"
	ModePermissive = "permissive"

	DefaultMode = ModeStrict
)

// ValidModes lists the accepted values of Options.Mode.
var ValidModes = map[string]bool{
	ModeStrict:     true,
	ModePermissive: true,
}

// idNamespace seeds the layout IDs derived from configuration hashes.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/racklayout/layout"))

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Mode selects unit handling: "strict" (default) or "permissive".
	Mode string `json:"mode,omitempty"`

	// ID overrides the layout ID. When empty the configuration's id is used,
	// and when that is empty too an ID is derived from the configuration hash.
	ID string `json:"id,omitempty"`

	// Refresh skips the cache lookup. The fresh layout is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	mode      units.Mode
	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if !ValidModes[o.Mode] {
		return fmt.Errorf("invalid mode: %q (must be one of: strict, permissive)", o.Mode)
	}
	m, err := units.ParseMode(o.Mode)
	if err != nil {
		return err
	}
	o.mode = m
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// UnitMode returns the parsed Mode. Call ValidateAndSetDefaults first.
func (o *Options) UnitMode() units.Mode {
	return o.mode
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Mode: o.Mode, ID: o.ID}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed warehouse layout.
	Layout *layout.WarehouseLayout

	// ConfigHash is the content hash of the configuration.
	ConfigHash string

	// Summary counts the cells, pallets and warnings of Layout.
	Summary layout.Summary

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the layout came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LayoutTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
}

// Issue is a problem that prevents a layout from being built.
type Issue struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// ValidationReport is the outcome of a dry run.
type ValidationReport struct {
	Valid      bool             `json:"valid"`
	ConfigHash string           `json:"config_hash,omitempty"`
	Errors     []Issue          `json:"errors,omitempty"`
	Warnings   []layout.Warning `json:"warnings,omitempty"`
	Summary    *layout.Summary  `json:"summary,omitempty"`
}

// =============================================================================
// Helpers
// =============================================================================

// ConfigHash returns the content hash of cfg.
func ConfigHash(cfg *config.WarehouseConfig) (string, error) {
	data, err := config.Marshal(cfg)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInternal, err, "encode configuration")
	}
	return cache.Hash(data), nil
}

// LayoutID derives a stable layout ID from a configuration hash.
func LayoutID(configHash string) string {
	return uuid.NewSHA1(idNamespace, []byte(configHash)).String()
}

func marshalReport(r *ValidationReport) ([]byte, error) {
	return json.Marshal(r)
}

func unmarshalReport(data []byte, r *ValidationReport) error {
	return json.Unmarshal(data, r)
}
