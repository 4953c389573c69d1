package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/racklayout/pkg/cache"
	"github.com/matzehuels/racklayout/pkg/config"
	errs "github.com/matzehuels/racklayout/pkg/errors"
	"github.com/matzehuels/racklayout/pkg/layout"
	"github.com/matzehuels/racklayout/pkg/observability"
)

// Runner encapsulates layout computation with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute validates cfg and returns its layout, from the cache when possible.
func (r *Runner) Execute(ctx context.Context, cfg *config.WarehouseConfig, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hash, err := ConfigHash(cfg)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, cfg.NumWorkstations)

	start := time.Now()
	l, hit, err := r.LayoutWithCacheInfo(ctx, cfg, hash, opts)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, 0, elapsed, err)
		return nil, fmt.Errorf("layout: %w", err)
	}

	result := &Result{
		Layout:     l,
		ConfigHash: hash,
		Summary:    layout.Summarize(l),
		Stats:      Stats{LayoutTime: elapsed},
		CacheInfo:  CacheInfo{LayoutHit: hit},
	}
	hooks.OnLayoutComplete(ctx, result.Summary.Cells(), result.Summary.Warnings, elapsed, nil)

	opts.Logger.Info("computed layout",
		"id", l.ID,
		"workstations", result.Summary.Workstations,
		"cells", result.Summary.Cells(),
		"pallets", result.Summary.Pallets,
		"warnings", result.Summary.Warnings,
		"cached", hit,
		"duration", elapsed)
	for _, w := range l.Warnings {
		opts.Logger.Warn(w.Message, "code", w.Code, "workstation", w.Workstation, "pallet", w.Pallet)
	}

	return result, nil
}

// LayoutWithCacheInfo builds the layout of cfg with caching and returns cache
// hit info. configHash must be the ConfigHash of cfg.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, cfg *config.WarehouseConfig, configHash string, opts Options) (*layout.WarehouseLayout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.LayoutKey(configHash, opts.LayoutKeyOpts())
	cacheHooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := layout.Unmarshal(data); err == nil {
				cacheHooks.OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			opts.Logger.Debug("discarding unreadable cache entry", "key", cacheKey)
		} else if err != nil {
			opts.Logger.Debug("cache lookup failed", "key", cacheKey, "error", err)
		}
		cacheHooks.OnCacheMiss(ctx, "layout")
	}

	id := opts.ID
	if id == "" && cfg.ID == "" {
		id = LayoutID(configHash)
	}
	l, err := layout.Build(cfg, layout.WithMode(opts.UnitMode()), layout.WithID(id))
	if err != nil {
		return nil, false, err
	}

	if data, err := layout.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Debug("cache store failed", "key", cacheKey, "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, false, nil
}

// Validate performs a dry run: it validates cfg, builds the layout and reports
// errors and warnings without returning geometry. Configuration problems are
// part of the report; only invalid options and internal failures are returned
// as errors.
func (r *Runner) Validate(ctx context.Context, cfg *config.WarehouseConfig, opts Options) (*ValidationReport, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	report, err := r.validate(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	observability.Pipeline().OnValidateComplete(ctx, report.Valid, elapsed)

	opts.Logger.Info("validated configuration",
		"valid", report.Valid,
		"errors", len(report.Errors),
		"warnings", len(report.Warnings),
		"duration", elapsed)
	return report, nil
}

func (r *Runner) validate(ctx context.Context, cfg *config.WarehouseConfig, opts Options) (*ValidationReport, error) {
	if err := cfg.Validate(); err != nil {
		return invalidReport("", err), nil
	}
	hash, err := ConfigHash(cfg)
	if err != nil {
		return nil, err
	}

	cacheKey := r.Keyer.ReportKey(hash, opts.LayoutKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached ValidationReport
			if err := unmarshalReport(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "report")
				return &cached, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "report")
	}

	report := &ValidationReport{ConfigHash: hash}
	l, err := layout.Build(cfg, layout.WithMode(opts.UnitMode()))
	if err != nil {
		if !errs.IsConfigError(err) {
			return nil, err
		}
		report = invalidReport(hash, err)
	} else {
		s := layout.Summarize(l)
		report.Valid = true
		report.Summary = &s
		report.Warnings = append(l.Warnings, layout.CheckMinimums(s)...)
	}

	if data, err := marshalReport(report); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLReport); err == nil {
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		}
	}
	return report, nil
}

func invalidReport(hash string, err error) *ValidationReport {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInvalidInput
	}
	return &ValidationReport{
		ConfigHash: hash,
		Errors:     []Issue{{Code: code, Message: err.Error()}},
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
