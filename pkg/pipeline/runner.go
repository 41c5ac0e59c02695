package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apexkit/pkg/cache"
	"github.com/matzehuels/apexkit/pkg/chart"
	"github.com/matzehuels/apexkit/pkg/chart/embed"
	"github.com/matzehuels/apexkit/pkg/observability"
)

// Revisioner is implemented by definitions whose output depends on
// content outside their Go type, such as a definition file. The revision
// is part of every cache key.
type Revisioner interface {
	Revision() string
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the build → render pipeline for def with caching.
func (r *Runner) Execute(ctx context.Context, def chart.Definition, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheInfo: CacheInfo{Hits: make(map[string]bool, len(opts.Formats))},
	}

	// Stage 1a: Configure. Cheap and free of I/O, and needed for the
	// chart identity that keys the cache.
	start := time.Now()
	c, err := chart.Configure(def, opts.Key, opts.Config)
	if err != nil {
		return nil, fmt.Errorf("configure: %w", err)
	}
	result.Chart = c
	result.Stats.ConfigureTime = time.Since(start)

	var revision string
	if rv, ok := def.(Revisioner); ok {
		revision = rv.Revision()
	}
	keyOpts := opts.ArtifactKeyOpts(c, revision)

	missing := r.readCached(ctx, c, keyOpts, opts, result)
	result.CacheInfo.AllHit = len(missing) == 0
	if result.CacheInfo.AllHit {
		r.Logger.Debug("served from cache", "chart", c.TypeName(), "formats", opts.Formats)
		return result, nil
	}

	// Stage 1b: Populate
	hooks := observability.Chart()
	start = time.Now()
	hooks.OnBuildStart(ctx, c.TypeName())
	err = c.Populate(ctx, def)
	result.Stats.DataTime = time.Since(start)
	hooks.OnBuildComplete(ctx, c.TypeName(), len(c.Series()), result.Stats.DataTime, err)
	if err != nil {
		return nil, fmt.Errorf("populate: %w", err)
	}
	result.Stats.SeriesCount = len(c.Series())
	result.Stats.LabelCount = len(c.Labels())

	r.Logger.Info("built chart",
		"chart", c.TypeName(),
		"series", result.Stats.SeriesCount,
		"labels", result.Stats.LabelCount,
		"duration", result.Stats.DataTime)

	// Stage 2: Render
	start = time.Now()
	hooks.OnRenderStart(ctx, c.TypeName(), missing)
	err = r.renderMissing(ctx, c, keyOpts, opts, missing, result)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, c.TypeName(), missing, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	r.Logger.Info("rendered outputs",
		"formats", missing,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// readCached fills result with cached artifacts and returns the formats
// that still need rendering.
func (r *Runner) readCached(ctx context.Context, c *chart.Chart, keyOpts cache.ArtifactKeyOpts, opts Options, result *Result) []string {
	hooks := observability.Cache()
	var missing []string
	for _, format := range opts.Formats {
		if opts.Refresh || r.ttl(c, format) == 0 {
			missing = append(missing, format)
			continue
		}
		data, hit, err := r.Cache.Get(ctx, r.key(c, format, keyOpts))
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, format)
			missing = append(missing, format)
			continue
		}
		hooks.OnCacheHit(ctx, format)
		result.Artifacts[format] = data
		result.CacheInfo.Hits[format] = true
	}
	return missing
}

func (r *Runner) renderMissing(ctx context.Context, c *chart.Chart, keyOpts cache.ArtifactKeyOpts, opts Options, formats []string, result *Result) error {
	for _, format := range formats {
		data, err := Render(c, format, opts)
		if err != nil {
			return err
		}
		result.Artifacts[format] = data

		if ttl := r.ttl(c, format); ttl > 0 {
			if err := r.Cache.Set(ctx, r.key(c, format, keyOpts), data, ttl); err != nil {
				r.Logger.Warn("cache write failed", "format", format, "err", err)
				continue
			}
			observability.Cache().OnCacheSet(ctx, format, len(data))
		}
	}
	return nil
}

// Render serializes one format of a populated chart.
func Render(c *chart.Chart, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatOptions:
		return c.JSONOptions()
	case FormatData:
		return c.MarshalData()
	case FormatHTML:
		html, err := embed.Render(c, embed.Options{DataURL: opts.DataURL, Height: opts.Height})
		if err != nil {
			return nil, err
		}
		return []byte(html), nil
	default:
		return nil, ValidateFormat(format)
	}
}

// ttl returns how long an artifact may be cached, or zero when it must
// not be. Data goes stale after one refresh period; charts that never
// refresh are rebuilt on every request.
func (r *Runner) ttl(c *chart.Chart, format string) time.Duration {
	if format == FormatOptions {
		return cache.TTLOptions
	}
	cfg := c.Config()
	if !cfg.RefreshEnabled() {
		return 0
	}
	return time.Duration(cfg.RefreshTime) * time.Second
}

func (r *Runner) key(c *chart.Chart, format string, keyOpts cache.ArtifactKeyOpts) string {
	switch format {
	case FormatData:
		return r.Keyer.DataKey(c.ID(), keyOpts)
	case FormatHTML:
		return r.Keyer.EmbedKey(c.ID(), keyOpts)
	default:
		return r.Keyer.OptionsKey(c.ID(), keyOpts)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
