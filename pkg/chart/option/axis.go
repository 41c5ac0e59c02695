package option

import "github.com/matzehuels/apexkit/pkg/chart/tree"

// Xaxis configures the horizontal axis.
type Xaxis struct {
	typ             string
	categories      []any
	tickAmount      int
	min, max        any
	title           string
	labelsShow      bool
	labelsRotate    int
	labelsFormatter tree.Script
	axisBorderShow  bool
	axisTicksShow   bool
	tooltipEnabled  bool
}

// NewXaxis returns a category axis with rotated labels.
func NewXaxis() *Xaxis {
	return &Xaxis{
		typ:            AxisCategory,
		labelsShow:     true,
		labelsRotate:   -45,
		axisBorderShow: true,
		axisTicksShow:  true,
		tooltipEnabled: true,
	}
}

func (x *Xaxis) SetCategories(c ...any) *Xaxis            { x.categories = c; return x }
func (x *Xaxis) SetTickAmount(n int) *Xaxis               { x.tickAmount = n; return x }
func (x *Xaxis) SetMin(v any) *Xaxis                      { x.min = v; return x }
func (x *Xaxis) SetMax(v any) *Xaxis                      { x.max = v; return x }
func (x *Xaxis) SetTitle(title string) *Xaxis             { x.title = title; return x }
func (x *Xaxis) SetLabelsShow(show bool) *Xaxis           { x.labelsShow = show; return x }
func (x *Xaxis) SetLabelsRotate(deg int) *Xaxis           { x.labelsRotate = deg; return x }
func (x *Xaxis) SetLabelsFormatter(fn tree.Script) *Xaxis { x.labelsFormatter = fn; return x }
func (x *Xaxis) SetAxisBorderShow(show bool) *Xaxis       { x.axisBorderShow = show; return x }
func (x *Xaxis) SetAxisTicksShow(show bool) *Xaxis        { x.axisTicksShow = show; return x }
func (x *Xaxis) SetTooltipEnabled(enabled bool) *Xaxis    { x.tooltipEnabled = enabled; return x }
func (x *Xaxis) Type() string                             { return x.typ }

// SetType selects a category, datetime or numeric axis.
func (x *Xaxis) SetType(typ string) error {
	if err := choose("xaxis type", typ, AxisTypes); err != nil {
		return err
	}
	x.typ = typ
	return nil
}

// Options returns the xaxis subtree.
func (x *Xaxis) Options() *tree.Map {
	m := tree.New()
	m.Set("type", x.typ)
	setIf(m, x.categories != nil, "categories", x.categories)
	setIf(m, x.tickAmount > 0, "tickAmount", x.tickAmount)
	setIf(m, x.min != nil, "min", x.min)
	setIf(m, x.max != nil, "max", x.max)
	setIf(m, x.title != "", "title.text", x.title)
	m.SetPath("labels.show", x.labelsShow)
	m.SetPath("labels.rotate", x.labelsRotate)
	setIf(m, x.labelsFormatter != "", "labels.formatter", x.labelsFormatter)
	m.SetPath("axisBorder.show", x.axisBorderShow)
	m.SetPath("axisTicks.show", x.axisTicksShow)
	m.SetPath("tooltip.enabled", x.tooltipEnabled)
	return m
}

// Yaxis configures the vertical axis.
type Yaxis struct {
	show            bool
	opposite        bool
	reversed        bool
	logarithmic     bool
	forceNiceScale  bool
	min, max        any
	tickAmount      int
	decimalsInFloat *int
	title           string
	labelsShow      bool
	labelsFormatter tree.Script
}

// NewYaxis returns a visible linear axis on the left.
func NewYaxis() *Yaxis {
	return &Yaxis{
		show:       true,
		labelsShow: true,
	}
}

func (y *Yaxis) SetShow(show bool) *Yaxis                 { y.show = show; return y }
func (y *Yaxis) SetOpposite(opposite bool) *Yaxis         { y.opposite = opposite; return y }
func (y *Yaxis) SetReversed(reversed bool) *Yaxis         { y.reversed = reversed; return y }
func (y *Yaxis) SetLogarithmic(log bool) *Yaxis           { y.logarithmic = log; return y }
func (y *Yaxis) SetForceNiceScale(force bool) *Yaxis      { y.forceNiceScale = force; return y }
func (y *Yaxis) SetMin(v any) *Yaxis                      { y.min = v; return y }
func (y *Yaxis) SetMax(v any) *Yaxis                      { y.max = v; return y }
func (y *Yaxis) SetTickAmount(n int) *Yaxis               { y.tickAmount = n; return y }
func (y *Yaxis) SetDecimalsInFloat(n int) *Yaxis          { y.decimalsInFloat = &n; return y }
func (y *Yaxis) SetTitle(title string) *Yaxis             { y.title = title; return y }
func (y *Yaxis) SetLabelsShow(show bool) *Yaxis           { y.labelsShow = show; return y }
func (y *Yaxis) SetLabelsFormatter(fn tree.Script) *Yaxis { y.labelsFormatter = fn; return y }

// Options returns the yaxis subtree.
func (y *Yaxis) Options() *tree.Map {
	m := tree.New()
	m.Set("show", y.show)
	m.Set("opposite", y.opposite)
	m.Set("reversed", y.reversed)
	m.Set("logarithmic", y.logarithmic)
	m.Set("forceNiceScale", y.forceNiceScale)
	setIf(m, y.min != nil, "min", y.min)
	setIf(m, y.max != nil, "max", y.max)
	setIf(m, y.tickAmount > 0, "tickAmount", y.tickAmount)
	if y.decimalsInFloat != nil {
		m.Set("decimalsInFloat", *y.decimalsInFloat)
	}
	setIf(m, y.title != "", "title.text", y.title)
	m.SetPath("labels.show", y.labelsShow)
	setIf(m, y.labelsFormatter != "", "labels.formatter", y.labelsFormatter)
	return m
}
