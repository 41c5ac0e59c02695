package option

import "github.com/matzehuels/apexkit/pkg/chart/tree"

// Padding holds the inner spacing of the plot area in pixels.
type Padding struct {
	Top, Right, Bottom, Left int
}

// Grid configures the background grid lines of cartesian charts.
type Grid struct {
	show            bool
	borderColor     string
	strokeDashArray int
	position        string
	xaxisShow       bool
	yaxisShow       bool
	rowColors       []string
	rowOpacity      float64
	columnColors    []string
	columnOpacity   float64
	padding         Padding
}

// NewGrid returns a grid with ApexCharts defaults: visible horizontal lines
// drawn behind the series.
func NewGrid() *Grid {
	return &Grid{
		show:          true,
		borderColor:   "#e0e0e0",
		position:      PositionBack,
		yaxisShow:     true,
		rowOpacity:    0.5,
		columnOpacity: 0.5,
	}
}

func (g *Grid) SetShow(show bool) *Grid              { g.show = show; return g }
func (g *Grid) SetBorderColor(color string) *Grid    { g.borderColor = color; return g }
func (g *Grid) SetStrokeDashArray(dash int) *Grid    { g.strokeDashArray = dash; return g }
func (g *Grid) SetXaxisShow(show bool) *Grid         { g.xaxisShow = show; return g }
func (g *Grid) SetYaxisShow(show bool) *Grid         { g.yaxisShow = show; return g }
func (g *Grid) SetPadding(p Padding) *Grid           { g.padding = p; return g }
func (g *Grid) SetRowOpacity(opacity float64) *Grid  { g.rowOpacity = opacity; return g }
func (g *Grid) SetColumnOpacity(o float64) *Grid     { g.columnOpacity = o; return g }
func (g *Grid) SetRowColors(colors ...string) *Grid  { g.rowColors = colors; return g }
func (g *Grid) SetColumnColors(cols ...string) *Grid { g.columnColors = cols; return g }
func (g *Grid) Position() string                     { return g.position }
func (g *Grid) Show() bool                           { return g.show }

// SetPosition places the grid in front of or behind the series.
func (g *Grid) SetPosition(position string) error {
	if err := choose("grid position", position, GridPositions); err != nil {
		return err
	}
	g.position = position
	return nil
}

// Options returns the grid subtree.
func (g *Grid) Options() *tree.Map {
	m := tree.New()
	m.Set("show", g.show)
	m.Set("borderColor", g.borderColor)
	m.Set("strokeDashArray", g.strokeDashArray)
	m.Set("position", g.position)
	m.SetPath("xaxis.lines.show", g.xaxisShow)
	m.SetPath("yaxis.lines.show", g.yaxisShow)
	setIf(m, len(g.rowColors) > 0, "row.colors", g.rowColors)
	setIf(m, len(g.rowColors) > 0, "row.opacity", g.rowOpacity)
	setIf(m, len(g.columnColors) > 0, "column.colors", g.columnColors)
	setIf(m, len(g.columnColors) > 0, "column.opacity", g.columnOpacity)
	m.SetPath("padding.top", g.padding.Top)
	m.SetPath("padding.right", g.padding.Right)
	m.SetPath("padding.bottom", g.padding.Bottom)
	m.SetPath("padding.left", g.padding.Left)
	return m
}
