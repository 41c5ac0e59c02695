package option

import (
	"github.com/matzehuels/apexkit/pkg/chart/tree"
)

// Chart configures the chart canvas itself: type, size, stacking,
// toolbar and client-side event handlers.
type Chart struct {
	typ               string
	height            any
	width             any
	stacked           bool
	stackType         string
	id                string
	group             string
	background        string
	fontFamily        string
	toolbarShow       bool
	zoomEnabled       bool
	animationsEnabled bool
	sparklineEnabled  bool
	events            *tree.Map
}

// NewChart returns a full-width line chart with toolbar, zoom and
// animations enabled.
func NewChart() *Chart {
	return &Chart{
		typ:               TypeLine,
		height:            "auto",
		width:             "100%",
		stackType:         StackNormal,
		toolbarShow:       true,
		zoomEnabled:       true,
		animationsEnabled: true,
		events:            tree.New(),
	}
}

func (c *Chart) SetStacked(stacked bool) *Chart           { c.stacked = stacked; return c }
func (c *Chart) SetID(id string) *Chart                   { c.id = id; return c }
func (c *Chart) SetGroup(group string) *Chart             { c.group = group; return c }
func (c *Chart) SetBackground(color string) *Chart        { c.background = color; return c }
func (c *Chart) SetFontFamily(family string) *Chart       { c.fontFamily = family; return c }
func (c *Chart) SetToolbarShow(show bool) *Chart          { c.toolbarShow = show; return c }
func (c *Chart) SetZoomEnabled(enabled bool) *Chart       { c.zoomEnabled = enabled; return c }
func (c *Chart) SetAnimationsEnabled(enabled bool) *Chart { c.animationsEnabled = enabled; return c }
func (c *Chart) SetSparklineEnabled(enabled bool) *Chart  { c.sparklineEnabled = enabled; return c }
func (c *Chart) Type() string                             { return c.typ }
func (c *Chart) StackType() string                        { return c.stackType }

// SetHeight sets the canvas height as pixels (int) or a CSS length.
func (c *Chart) SetHeight(height any) *Chart {
	c.height = height
	return c
}

// SetWidth sets the canvas width as pixels (int) or a CSS length.
func (c *Chart) SetWidth(width any) *Chart {
	c.width = width
	return c
}

// SetEvent installs a client-side handler such as "dataPointSelection".
func (c *Chart) SetEvent(name string, handler tree.Script) *Chart {
	c.events.Set(name, handler)
	return c
}

// SetType selects the chart type.
func (c *Chart) SetType(typ string) error {
	if err := choose("chart type", typ, ChartTypes); err != nil {
		return err
	}
	c.typ = typ
	return nil
}

// SetStackType selects plain or percentage stacking.
func (c *Chart) SetStackType(stackType string) error {
	if err := choose("chart stackType", stackType, StackTypes); err != nil {
		return err
	}
	c.stackType = stackType
	return nil
}

// Options returns the chart subtree.
func (c *Chart) Options() *tree.Map {
	m := tree.New()
	m.Set("type", c.typ)
	m.Set("height", c.height)
	m.Set("width", c.width)
	m.Set("stacked", c.stacked)
	setIf(m, c.stacked, "stackType", c.stackType)
	setIf(m, c.id != "", "id", c.id)
	setIf(m, c.group != "", "group", c.group)
	setIf(m, c.background != "", "background", c.background)
	setIf(m, c.fontFamily != "", "fontFamily", c.fontFamily)
	m.SetPath("toolbar.show", c.toolbarShow)
	m.SetPath("zoom.enabled", c.zoomEnabled)
	m.SetPath("animations.enabled", c.animationsEnabled)
	m.SetPath("sparkline.enabled", c.sparklineEnabled)
	setIf(m, c.events.Len() > 0, "events", c.events.Clone())
	return m
}
