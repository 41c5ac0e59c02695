package option

import "github.com/matzehuels/apexkit/pkg/chart/tree"

// Legend configures the series legend.
type Legend struct {
	show                bool
	showForSingleSeries bool
	showForNullSeries   bool
	showForZeroSeries   bool
	position            string
	horizontalAlign     string
	floating            bool
	fontSize            string
	fontFamily          string
	fontWeight          int
	offsetX             int
	offsetY             int
	inverseOrder        bool
	formatter           tree.Script
}

// NewLegend returns a legend centered below the plot area.
func NewLegend() *Legend {
	return &Legend{
		show:              true,
		showForNullSeries: true,
		showForZeroSeries: true,
		position:          PositionBottom,
		horizontalAlign:   AlignCenter,
		fontSize:          "14px",
		fontFamily:        "Helvetica, Arial",
		fontWeight:        400,
	}
}

func (l *Legend) SetShow(show bool) *Legend                { l.show = show; return l }
func (l *Legend) SetShowForSingleSeries(show bool) *Legend { l.showForSingleSeries = show; return l }
func (l *Legend) SetShowForNullSeries(show bool) *Legend   { l.showForNullSeries = show; return l }
func (l *Legend) SetShowForZeroSeries(show bool) *Legend   { l.showForZeroSeries = show; return l }
func (l *Legend) SetFloating(floating bool) *Legend        { l.floating = floating; return l }
func (l *Legend) SetFontSize(size string) *Legend          { l.fontSize = size; return l }
func (l *Legend) SetFontFamily(family string) *Legend      { l.fontFamily = family; return l }
func (l *Legend) SetFontWeight(weight int) *Legend         { l.fontWeight = weight; return l }
func (l *Legend) SetOffset(x, y int) *Legend               { l.offsetX, l.offsetY = x, y; return l }
func (l *Legend) SetInverseOrder(inverse bool) *Legend     { l.inverseOrder = inverse; return l }
func (l *Legend) SetFormatter(fn tree.Script) *Legend      { l.formatter = fn; return l }
func (l *Legend) Position() string                         { return l.position }
func (l *Legend) HorizontalAlign() string                  { return l.horizontalAlign }

// SetPosition places the legend on one side of the chart.
func (l *Legend) SetPosition(position string) error {
	if err := choose("legend position", position, LegendPositions); err != nil {
		return err
	}
	l.position = position
	return nil
}

// SetHorizontalAlign aligns a top or bottom legend.
func (l *Legend) SetHorizontalAlign(align string) error {
	if err := choose("legend horizontalAlign", align, HorizontalAligns); err != nil {
		return err
	}
	l.horizontalAlign = align
	return nil
}

// Options returns the legend subtree.
func (l *Legend) Options() *tree.Map {
	m := tree.New()
	m.Set("show", l.show)
	m.Set("showForSingleSeries", l.showForSingleSeries)
	m.Set("showForNullSeries", l.showForNullSeries)
	m.Set("showForZeroSeries", l.showForZeroSeries)
	m.Set("position", l.position)
	m.Set("horizontalAlign", l.horizontalAlign)
	m.Set("floating", l.floating)
	m.Set("fontSize", l.fontSize)
	m.Set("fontFamily", l.fontFamily)
	m.Set("fontWeight", l.fontWeight)
	m.Set("offsetX", l.offsetX)
	m.Set("offsetY", l.offsetY)
	m.Set("inverseOrder", l.inverseOrder)
	setIf(m, l.formatter != "", "formatter", l.formatter)
	return m
}
