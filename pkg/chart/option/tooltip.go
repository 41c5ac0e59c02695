package option

import "github.com/matzehuels/apexkit/pkg/chart/tree"

// Tooltip configures the hover tooltip.
type Tooltip struct {
	enabled         bool
	shared          bool
	intersect       bool
	followCursor    bool
	fillSeriesColor bool
	theme           string
	xShow           bool
	xFormat         string
	yFormatter      tree.Script
}

// NewTooltip returns a shared light tooltip.
func NewTooltip() *Tooltip {
	return &Tooltip{
		enabled: true,
		shared:  true,
		theme:   ThemeLight,
		xShow:   true,
	}
}

func (t *Tooltip) SetEnabled(enabled bool) *Tooltip      { t.enabled = enabled; return t }
func (t *Tooltip) SetShared(shared bool) *Tooltip        { t.shared = shared; return t }
func (t *Tooltip) SetIntersect(intersect bool) *Tooltip  { t.intersect = intersect; return t }
func (t *Tooltip) SetFollowCursor(follow bool) *Tooltip  { t.followCursor = follow; return t }
func (t *Tooltip) SetFillSeriesColor(fill bool) *Tooltip { t.fillSeriesColor = fill; return t }
func (t *Tooltip) SetXShow(show bool) *Tooltip           { t.xShow = show; return t }
func (t *Tooltip) SetXFormat(format string) *Tooltip     { t.xFormat = format; return t }
func (t *Tooltip) SetYFormatter(fn tree.Script) *Tooltip { t.yFormatter = fn; return t }
func (t *Tooltip) Theme() string                         { return t.theme }

// SetTheme selects the light or dark tooltip theme.
func (t *Tooltip) SetTheme(theme string) error {
	if err := choose("tooltip theme", theme, TooltipThemes); err != nil {
		return err
	}
	t.theme = theme
	return nil
}

// Options returns the tooltip subtree.
func (t *Tooltip) Options() *tree.Map {
	m := tree.New()
	m.Set("enabled", t.enabled)
	m.Set("shared", t.shared)
	m.Set("intersect", t.intersect)
	m.Set("followCursor", t.followCursor)
	m.Set("fillSeriesColor", t.fillSeriesColor)
	m.Set("theme", t.theme)
	m.SetPath("x.show", t.xShow)
	setIf(m, t.xFormat != "", "x.format", t.xFormat)
	setIf(m, t.yFormatter != "", "y.formatter", t.yFormatter)
	return m
}
