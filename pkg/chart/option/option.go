// Package option defines the option nodes of a chart: one validated record
// per aspect of the ApexCharts configuration (grid, legend, annotations,
// chart, tooltip, x axis, y axis).
//
// Every node follows the same pattern:
//
//   - a constructor that sets the library defaults
//   - chaining setters for unconstrained fields
//   - error-returning setters for enumerated fields, which validate before
//     mutating so a rejected value leaves the node untouched
//   - an Options method that projects the flat fields into the nested shape
//     ApexCharts expects (Grid.SetXaxisShow ends up at xaxis.lines.show)
//
// Nodes are owned by a single chart and are not safe for concurrent use.
package option

import (
	"slices"

	"github.com/matzehuels/apexkit/pkg/chart/tree"
	"github.com/matzehuels/apexkit/pkg/errors"
)

// Grid and annotation positions.
const (
	PositionFront = "front"
	PositionBack  = "back"
)

// Legend positions.
const (
	PositionTop    = "top"
	PositionRight  = "right"
	PositionBottom = "bottom"
	PositionLeft   = "left"
)

// Horizontal alignments.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Chart types understood by ApexCharts.
const (
	TypeLine        = "line"
	TypeArea        = "area"
	TypeBar         = "bar"
	TypePie         = "pie"
	TypeDonut       = "donut"
	TypeRadialBar   = "radialBar"
	TypeScatter     = "scatter"
	TypeBubble      = "bubble"
	TypeHeatmap     = "heatmap"
	TypeCandlestick = "candlestick"
	TypeBoxPlot     = "boxPlot"
	TypeRadar       = "radar"
	TypePolarArea   = "polarArea"
	TypeRangeBar    = "rangeBar"
	TypeRangeArea   = "rangeArea"
	TypeTreemap     = "treemap"
)

// Stack types.
const (
	StackNormal  = "normal"
	StackPercent = "100%"
)

// Axis types.
const (
	AxisCategory = "category"
	AxisDatetime = "datetime"
	AxisNumeric  = "numeric"
)

// Tooltip themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Valid value sets for the enumerated fields.
var (
	GridPositions    = []string{PositionFront, PositionBack}
	LegendPositions  = []string{PositionTop, PositionRight, PositionBottom, PositionLeft}
	HorizontalAligns = []string{AlignLeft, AlignCenter, AlignRight}
	ChartTypes       = []string{
		TypeLine, TypeArea, TypeBar, TypePie, TypeDonut, TypeRadialBar,
		TypeScatter, TypeBubble, TypeHeatmap, TypeCandlestick, TypeBoxPlot,
		TypeRadar, TypePolarArea, TypeRangeBar, TypeRangeArea, TypeTreemap,
	}
	StackTypes    = []string{StackNormal, StackPercent}
	AxisTypes     = []string{AxisCategory, AxisDatetime, AxisNumeric}
	TooltipThemes = []string{ThemeLight, ThemeDark}
)

// IsPieLike reports whether charts of type t take a flat numeric series
// with one label per value instead of named series.
func IsPieLike(t string) bool {
	switch t {
	case TypePie, TypeDonut, TypeRadialBar, TypePolarArea:
		return true
	}
	return false
}

// choose validates value against valid and returns an INVALID_OPTION error
// naming field on failure.
func choose(field, value string, valid []string) error {
	if !slices.Contains(valid, value) {
		return errors.InvalidChoice(field, value, valid)
	}
	return nil
}

// setIf stores v at path only when set is true. Nodes use it for optional
// fields that ApexCharts should default itself.
func setIf(m *tree.Map, set bool, path string, v any) {
	if set {
		m.SetPath(path, v)
	}
}
