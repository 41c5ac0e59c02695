// Package chart builds ApexCharts configurations on the server.
//
// A [Chart] aggregates one instance of every option node (annotations,
// chart, grid, legend, tooltip, x axis, y axis), a store of named series
// with their colors and labels, and free-form base options. It composes
// them into a single option tree and serializes that tree for the page.
//
// # Options and data
//
// The output is split in two:
//
//   - [Chart.Options] is the static configuration used once to create the
//     chart in the browser. Series and labels are always empty
//     placeholders there.
//   - [Chart.JSONData] carries only series, labels and colors. It is what
//     the refresh endpoint returns and what the client passes to
//     updateOptions.
//
// # Definitions
//
// Charts are described by a [Definition]: a configure step that sets up
// the option nodes and series, and a populate step that fills in values.
// [Build] runs both. The Go type of the definition (plus an optional
// caller key) determines the chart identity, so the same definition and
// key map to the same element id across requests.
//
// # Example
//
//	c, err := chart.Build(ctx, salesChart{}, "store-42", chart.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	opts, err := c.JSONOptions()
package chart

import (
	"github.com/matzehuels/apexkit/pkg/cache"
	"github.com/matzehuels/apexkit/pkg/chart/option"
	"github.com/matzehuels/apexkit/pkg/chart/tree"
	"github.com/matzehuels/apexkit/pkg/errors"
)

// idPrefixLen is the number of hex characters of the identity hash used in
// element ids and script variable names.
const idPrefixLen = 16

// Chart is the aggregate of all option nodes and series data of one chart.
// A Chart is built and consumed within a single request and is not safe
// for concurrent use.
type Chart struct {
	id       string
	typeName string
	key      string
	cfg      Config

	annotations *option.Annotations
	canvas      *option.Chart
	grid        *option.Grid
	legend      *option.Legend
	tooltip     *option.Tooltip
	xaxis       *option.Xaxis
	yaxis       *option.Yaxis
	base        *tree.Map

	series  []Serie
	pie     []Value
	pieMode bool
	colors  []string
	labels  []string
}

// New creates an empty chart for the given definition type name and key.
// It fails when cfg carries an invalid refresh time or the key is invalid.
func New(typeName, key string, cfg Config) (*Chart, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateKey(key); err != nil {
		return nil, err
	}
	return &Chart{
		id:          cache.Hash([]byte(typeName + "\x00" + key)),
		typeName:    typeName,
		key:         key,
		cfg:         cfg,
		annotations: option.NewAnnotations(),
		canvas:      option.NewChart(),
		grid:        option.NewGrid(),
		legend:      option.NewLegend(),
		tooltip:     option.NewTooltip(),
		xaxis:       option.NewXaxis(),
		yaxis:       option.NewYaxis(),
		base:        tree.New(),
	}, nil
}

// ID returns the full identity hash.
func (c *Chart) ID() string { return c.id }

// VarName returns a script identifier for the client-side chart object.
func (c *Chart) VarName() string { return "chart_" + c.id[:idPrefixLen] }

// ElementID returns the id of the HTML element the chart renders into.
func (c *Chart) ElementID() string { return "chart-" + c.id[:idPrefixLen] }

// TypeName returns the definition name the identity was derived from.
func (c *Chart) TypeName() string { return c.typeName }

// Key returns the caller-supplied key that disambiguates the identity.
func (c *Chart) Key() string { return c.key }

// Config returns the chart config in effect.
func (c *Chart) Config() Config { return c.cfg }

// Option node accessors. Canvas returns the node rendered under the
// "chart" key.
func (c *Chart) Annotations() *option.Annotations { return c.annotations }
func (c *Chart) Canvas() *option.Chart            { return c.canvas }
func (c *Chart) Grid() *option.Grid               { return c.grid }
func (c *Chart) Legend() *option.Legend           { return c.legend }
func (c *Chart) Tooltip() *option.Tooltip         { return c.tooltip }
func (c *Chart) Xaxis() *option.Xaxis             { return c.xaxis }
func (c *Chart) Yaxis() *option.Yaxis             { return c.yaxis }

// Set stores a base option at a dot-separated path, e.g. "stroke.curve".
// Base options are merged first, so paths owned by an option node are
// overridden by that node. Marker-wrapped strings in v become scripts.
func (c *Chart) Set(path string, v any) *Chart {
	c.base.SetPath(path, tree.Scripts(v))
	return c
}

// SetFunction stores a client-side script at path.
func (c *Chart) SetFunction(path, src string) *Chart {
	c.base.SetPath(path, tree.Script(src))
	return c
}

// Options returns the merged configuration tree. Merge order is fixed:
// base options, then annotations, chart, grid, legend, tooltip, xaxis and
// yaxis under their own keys, then empty series and labels placeholders,
// then colors, then the no-data text. Later writes win at the same path.
func (c *Chart) Options() *tree.Map {
	m := tree.New().Merge(c.base)
	m.Merge(tree.New().Set("annotations", c.annotations.Options()))
	m.Merge(tree.New().Set("chart", c.canvas.Options()))
	m.Merge(tree.New().Set("grid", c.grid.Options()))
	m.Merge(tree.New().Set("legend", c.legend.Options()))
	m.Merge(tree.New().Set("tooltip", c.tooltip.Options()))
	m.Merge(tree.New().Set("xaxis", c.xaxis.Options()))
	m.Merge(tree.New().Set("yaxis", c.yaxis.Options()))
	m.Merge(tree.New().Set("series", []any{}).Set("labels", []any{}))
	if len(c.colors) > 0 {
		m.Merge(tree.New().Set("colors", c.Colors()))
	}
	m.Merge(tree.New().Set("noData", tree.New().Set("text", c.cfg.noDataText())))
	return m
}

// JSONOptions serializes Options. Output is pretty-printed when the chart
// config has Debug set.
func (c *Chart) JSONOptions() ([]byte, error) {
	return tree.Marshal(c.Options(), c.cfg.Debug)
}

// JSONData returns the live data: series, plus labels and colors when
// present.
func (c *Chart) JSONData() *tree.Map {
	m := tree.New()
	if c.pieMode {
		m.Set("series", c.PieData())
	} else {
		series := make([]any, len(c.series))
		for i, s := range c.series {
			series[i] = s.tree()
		}
		m.Set("series", series)
	}
	if len(c.labels) > 0 {
		m.Set("labels", c.Labels())
	}
	if len(c.colors) > 0 {
		m.Set("colors", c.Colors())
	}
	return m
}

// MarshalData serializes JSONData as compact strict JSON. Labels and
// series names are data, so a marker in them stays a quoted literal.
func (c *Chart) MarshalData() ([]byte, error) {
	return tree.MarshalStrict(c.JSONData(), false)
}
