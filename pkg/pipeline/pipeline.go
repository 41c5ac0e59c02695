// Package pipeline provides the chart build pipeline for apexkit.
//
// This package implements the build → render pipeline shared by the CLI
// and the HTTP server, so both read and write the cache the same way.
//
// # Architecture
//
// A run has two stages:
//
//  1. Build: configure the chart from its definition and populate its data
//  2. Render: serialize the requested formats (options, data, html)
//
// Every format is cached separately. When all requested formats are in
// the cache the populate step is skipped, which is what keeps a polling
// client from hitting the data source on every refresh.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, def, pipeline.Options{
//	    Key:     "store-42",
//	    Formats: []string{pipeline.FormatOptions, pipeline.FormatData},
//	})
//	if err != nil {
//	    return err
//	}
//	opts := result.Artifacts[pipeline.FormatOptions]
package pipeline

import (
	"time"

	"github.com/matzehuels/apexkit/pkg/cache"
	"github.com/matzehuels/apexkit/pkg/chart"
	"github.com/matzehuels/apexkit/pkg/errors"
)

// Format constants for output formats.
const (
	FormatOptions = "options"
	FormatData    = "data"
	FormatHTML    = "html"
)

// DefaultFormat is rendered when Options.Formats is empty.
const DefaultFormat = FormatOptions

// ValidFormats lists the supported output formats in render order.
var ValidFormats = []string{FormatOptions, FormatData, FormatHTML}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Key distinguishes instances of one definition, e.g. a store id.
	Key string `json:"key,omitempty"`

	// Formats to render. Defaults to DefaultFormat.
	Formats []string `json:"formats,omitempty"`

	// Config is injected into the chart. A zero RefreshTime means
	// chart.DefaultRefreshTime.
	Config chart.Config `json:"-"`

	// DataURL is polled by the html format.
	DataURL string `json:"data_url,omitempty"`

	// Height is the container height of the html format.
	Height string `json:"height,omitempty"`

	// Refresh skips cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the configured chart. It is populated only when some
	// artifact had to be rendered; check CacheInfo.AllHit.
	Chart *chart.Chart

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which formats came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeriesCount   int
	LabelCount    int
	ConfigureTime time.Duration
	DataTime      time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits   map[string]bool
	AllHit bool // Whether every requested artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	for _, f := range ValidFormats {
		if f == format {
			return nil
		}
	}
	return errors.InvalidChoice("format", format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateKey(o.Key); err != nil {
		return err
	}
	if o.Config.RefreshTime == 0 {
		o.Config.RefreshTime = chart.DefaultRefreshTime
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.DataURL != "" {
		if err := errors.ValidateURL(o.DataURL); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for the chart c built from a
// definition with the given revision.
func (o *Options) ArtifactKeyOpts(c *chart.Chart, revision string) cache.ArtifactKeyOpts {
	cfg := c.Config()
	return cache.ArtifactKeyOpts{
		Revision:   revision,
		Debug:      cfg.Debug,
		NoDataText: cfg.NoDataText,
		DataURL:    o.DataURL,
		Refresh:    cfg.RefreshTime,
		Height:     o.Height,
	}
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
