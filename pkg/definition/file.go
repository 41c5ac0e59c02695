// Package definition loads chart definitions from TOML files.
//
// A definition file describes one chart without Go code: option node
// settings, series, static data points or pie slices, free-form options
// and client-side functions. A loaded [File] implements chart.Definition,
// so it goes through the same build pipeline as compiled definitions.
//
// # Format
//
//	name = "monthly-sales"
//	title = "Monthly sales"
//	refresh = 30
//
//	[chart]
//	type = "bar"
//
//	[legend]
//	position = "top"
//
//	[[series]]
//	name = "Sales"
//	color = "#FF0000"
//
//	[[points]]
//	label = "Jan"
//	values = [100]
//
//	[options]
//	"stroke.curve" = "smooth"
//
//	[functions]
//	"yaxis.labels.formatter" = "function (v) { return v + '%' }"
//
// Unknown keys are rejected so typos surface at load time.
package definition

import (
	"context"
	"sort"

	"github.com/matzehuels/apexkit/pkg/chart"
	"github.com/matzehuels/apexkit/pkg/chart/option"
	"github.com/matzehuels/apexkit/pkg/chart/tree"
	"github.com/matzehuels/apexkit/pkg/errors"
)

// File is a decoded definition file.
type File struct {
	ChartName string `toml:"name"`
	Title     string `toml:"title"`
	Subtitle  string `toml:"subtitle"`
	Refresh   int    `toml:"refresh"`

	Chart       ChartTable       `toml:"chart"`
	Grid        GridTable        `toml:"grid"`
	Legend      LegendTable      `toml:"legend"`
	Tooltip     TooltipTable     `toml:"tooltip"`
	Xaxis       XaxisTable       `toml:"xaxis"`
	Yaxis       YaxisTable       `toml:"yaxis"`
	Annotations AnnotationsTable `toml:"annotations"`

	Series []SerieTable `toml:"series"`
	Points []PointTable `toml:"points"`
	Pie    *PieTable    `toml:"pie"`

	Options   map[string]any    `toml:"options"`
	Functions map[string]string `toml:"functions"`

	path     string
	revision string
}

type ChartTable struct {
	Type       string            `toml:"type"`
	StackType  string            `toml:"stack_type"`
	Stacked    *bool             `toml:"stacked"`
	Height     any               `toml:"height"`
	Width      any               `toml:"width"`
	Background string            `toml:"background"`
	FontFamily string            `toml:"font_family"`
	Group      string            `toml:"group"`
	Toolbar    *bool             `toml:"toolbar"`
	Zoom       *bool             `toml:"zoom"`
	Animations *bool             `toml:"animations"`
	Sparkline  *bool             `toml:"sparkline"`
	Events     map[string]string `toml:"events"`
}

type GridTable struct {
	Show            *bool           `toml:"show"`
	Position        string          `toml:"position"`
	BorderColor     string          `toml:"border_color"`
	StrokeDashArray *int            `toml:"stroke_dash_array"`
	XaxisLines      *bool           `toml:"xaxis_lines"`
	YaxisLines      *bool           `toml:"yaxis_lines"`
	RowColors       []string        `toml:"row_colors"`
	ColumnColors    []string        `toml:"column_colors"`
	Padding         *option.Padding `toml:"padding"`
}

type LegendTable struct {
	Show            *bool  `toml:"show"`
	Position        string `toml:"position"`
	HorizontalAlign string `toml:"horizontal_align"`
	Floating        *bool  `toml:"floating"`
	FontSize        string `toml:"font_size"`
	Formatter       string `toml:"formatter"`
}

type TooltipTable struct {
	Enabled    *bool  `toml:"enabled"`
	Shared     *bool  `toml:"shared"`
	Theme      string `toml:"theme"`
	XFormat    string `toml:"x_format"`
	YFormatter string `toml:"y_formatter"`
}

type XaxisTable struct {
	Type            string `toml:"type"`
	Categories      []any  `toml:"categories"`
	Title           string `toml:"title"`
	Min             any    `toml:"min"`
	Max             any    `toml:"max"`
	TickAmount      *int   `toml:"tick_amount"`
	LabelsRotate    *int   `toml:"labels_rotate"`
	LabelsFormatter string `toml:"labels_formatter"`
}

type YaxisTable struct {
	Show            *bool  `toml:"show"`
	Opposite        *bool  `toml:"opposite"`
	Logarithmic     *bool  `toml:"logarithmic"`
	Title           string `toml:"title"`
	Min             any    `toml:"min"`
	Max             any    `toml:"max"`
	TickAmount      *int   `toml:"tick_amount"`
	DecimalsInFloat *int   `toml:"decimals_in_float"`
	LabelsFormatter string `toml:"labels_formatter"`
}

type AnnotationsTable struct {
	Yaxis  []AxisAnnotationTable  `toml:"yaxis"`
	Xaxis  []AxisAnnotationTable  `toml:"xaxis"`
	Points []PointAnnotationTable `toml:"points"`
}

type AxisAnnotationTable struct {
	At              any     `toml:"at"`
	To              any     `toml:"to"`
	BorderColor     string  `toml:"border_color"`
	FillColor       string  `toml:"fill_color"`
	Opacity         float64 `toml:"opacity"`
	StrokeDashArray int     `toml:"stroke_dash_array"`
	Label           string  `toml:"label"`
	LabelColor      string  `toml:"label_color"`
}

type PointAnnotationTable struct {
	X           any    `toml:"x"`
	Y           any    `toml:"y"`
	MarkerSize  int    `toml:"marker_size"`
	MarkerColor string `toml:"marker_color"`
	Label       string `toml:"label"`
}

type SerieTable struct {
	Name  string `toml:"name"`
	Color string `toml:"color"`
	Type  string `toml:"type"`
}

// PointTable is one label with a value per serie. TOML has no null, so a
// missing value is written as the string "null".
type PointTable struct {
	Label  string `toml:"label"`
	Values []any  `toml:"values"`
}

type PieTable struct {
	Labels []string `toml:"labels"`
	Colors []string `toml:"colors"`
	Data   []any    `toml:"data"`
}

// Name returns the chart name. It is part of the chart identity, so two
// files with the same content but different names get different ids.
func (f *File) Name() string { return f.ChartName }

// Path returns the file the definition was loaded from, if any.
func (f *File) Path() string { return f.path }

// Revision returns a hash of the file content. Cached artifacts are keyed
// by it, so editing a file invalidates them.
func (f *File) Revision() string { return f.revision }

// ChartConfig applies the file's refresh time over base.
func (f *File) ChartConfig(base chart.Config) chart.Config {
	if f.Refresh != 0 {
		base.RefreshTime = f.Refresh
	}
	return base
}

// Define applies every table to c.
func (f *File) Define(c *chart.Chart) error {
	if f.Title != "" {
		c.Set("title.text", f.Title)
	}
	if f.Subtitle != "" {
		c.Set("subtitle.text", f.Subtitle)
	}
	for _, key := range sortedKeys(f.Options) {
		setOption(c, key, f.Options[key])
	}
	for _, path := range sortedKeys(f.Functions) {
		c.SetFunction(path, string(script(f.Functions[path])))
	}

	if err := f.Chart.apply(c.Canvas()); err != nil {
		return err
	}
	if err := f.Grid.apply(c.Grid()); err != nil {
		return err
	}
	if err := f.Legend.apply(c.Legend()); err != nil {
		return err
	}
	if err := f.Tooltip.apply(c.Tooltip()); err != nil {
		return err
	}
	if err := f.Xaxis.apply(c.Xaxis()); err != nil {
		return err
	}
	f.Yaxis.apply(c.Yaxis())
	f.Annotations.apply(c.Annotations())

	for _, s := range f.Series {
		c.AddTypedSerie(s.Name, s.Color, s.Type)
	}
	return nil
}

// Data appends the static points, or the pie slices when a [pie] table
// is present.
func (f *File) Data(_ context.Context, c *chart.Chart) error {
	if f.Pie != nil {
		data, err := values(f.Pie.Data)
		if err != nil {
			return err
		}
		c.AppendPieData(f.Pie.Labels, f.Pie.Colors, data)
		return nil
	}
	for _, p := range f.Points {
		vals, err := values(p.Values)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDefinition, err, "point %q", p.Label)
		}
		if err := c.AppendData(p.Label, vals); err != nil {
			return err
		}
	}
	return nil
}

func (t ChartTable) apply(o *option.Chart) error {
	if t.Type != "" {
		if err := o.SetType(t.Type); err != nil {
			return err
		}
	}
	if t.StackType != "" {
		if err := o.SetStackType(t.StackType); err != nil {
			return err
		}
	}
	if t.Stacked != nil {
		o.SetStacked(*t.Stacked)
	}
	if t.Height != nil {
		o.SetHeight(t.Height)
	}
	if t.Width != nil {
		o.SetWidth(t.Width)
	}
	if t.Background != "" {
		o.SetBackground(t.Background)
	}
	if t.FontFamily != "" {
		o.SetFontFamily(t.FontFamily)
	}
	if t.Group != "" {
		o.SetGroup(t.Group)
	}
	if t.Toolbar != nil {
		o.SetToolbarShow(*t.Toolbar)
	}
	if t.Zoom != nil {
		o.SetZoomEnabled(*t.Zoom)
	}
	if t.Animations != nil {
		o.SetAnimationsEnabled(*t.Animations)
	}
	if t.Sparkline != nil {
		o.SetSparklineEnabled(*t.Sparkline)
	}
	for _, name := range sortedKeys(t.Events) {
		o.SetEvent(name, script(t.Events[name]))
	}
	return nil
}

func (t GridTable) apply(o *option.Grid) error {
	if t.Position != "" {
		if err := o.SetPosition(t.Position); err != nil {
			return err
		}
	}
	if t.Show != nil {
		o.SetShow(*t.Show)
	}
	if t.BorderColor != "" {
		o.SetBorderColor(t.BorderColor)
	}
	if t.StrokeDashArray != nil {
		o.SetStrokeDashArray(*t.StrokeDashArray)
	}
	if t.XaxisLines != nil {
		o.SetXaxisShow(*t.XaxisLines)
	}
	if t.YaxisLines != nil {
		o.SetYaxisShow(*t.YaxisLines)
	}
	if len(t.RowColors) > 0 {
		o.SetRowColors(t.RowColors...)
	}
	if len(t.ColumnColors) > 0 {
		o.SetColumnColors(t.ColumnColors...)
	}
	if t.Padding != nil {
		o.SetPadding(*t.Padding)
	}
	return nil
}

func (t LegendTable) apply(o *option.Legend) error {
	if t.Position != "" {
		if err := o.SetPosition(t.Position); err != nil {
			return err
		}
	}
	if t.HorizontalAlign != "" {
		if err := o.SetHorizontalAlign(t.HorizontalAlign); err != nil {
			return err
		}
	}
	if t.Show != nil {
		o.SetShow(*t.Show)
	}
	if t.Floating != nil {
		o.SetFloating(*t.Floating)
	}
	if t.FontSize != "" {
		o.SetFontSize(t.FontSize)
	}
	if t.Formatter != "" {
		o.SetFormatter(script(t.Formatter))
	}
	return nil
}

func (t TooltipTable) apply(o *option.Tooltip) error {
	if t.Theme != "" {
		if err := o.SetTheme(t.Theme); err != nil {
			return err
		}
	}
	if t.Enabled != nil {
		o.SetEnabled(*t.Enabled)
	}
	if t.Shared != nil {
		o.SetShared(*t.Shared)
	}
	if t.XFormat != "" {
		o.SetXFormat(t.XFormat)
	}
	if t.YFormatter != "" {
		o.SetYFormatter(script(t.YFormatter))
	}
	return nil
}

func (t XaxisTable) apply(o *option.Xaxis) error {
	if t.Type != "" {
		if err := o.SetType(t.Type); err != nil {
			return err
		}
	}
	if len(t.Categories) > 0 {
		o.SetCategories(t.Categories...)
	}
	if t.Title != "" {
		o.SetTitle(t.Title)
	}
	if t.Min != nil {
		o.SetMin(t.Min)
	}
	if t.Max != nil {
		o.SetMax(t.Max)
	}
	if t.TickAmount != nil {
		o.SetTickAmount(*t.TickAmount)
	}
	if t.LabelsRotate != nil {
		o.SetLabelsRotate(*t.LabelsRotate)
	}
	if t.LabelsFormatter != "" {
		o.SetLabelsFormatter(script(t.LabelsFormatter))
	}
	return nil
}

func (t YaxisTable) apply(o *option.Yaxis) {
	if t.Show != nil {
		o.SetShow(*t.Show)
	}
	if t.Opposite != nil {
		o.SetOpposite(*t.Opposite)
	}
	if t.Logarithmic != nil {
		o.SetLogarithmic(*t.Logarithmic)
	}
	if t.Title != "" {
		o.SetTitle(t.Title)
	}
	if t.Min != nil {
		o.SetMin(t.Min)
	}
	if t.Max != nil {
		o.SetMax(t.Max)
	}
	if t.TickAmount != nil {
		o.SetTickAmount(*t.TickAmount)
	}
	if t.DecimalsInFloat != nil {
		o.SetDecimalsInFloat(*t.DecimalsInFloat)
	}
	if t.LabelsFormatter != "" {
		o.SetLabelsFormatter(script(t.LabelsFormatter))
	}
}

func (t AnnotationsTable) apply(o *option.Annotations) {
	for _, a := range t.Yaxis {
		o.AddYaxis(a.annotation())
	}
	for _, a := range t.Xaxis {
		o.AddXaxis(a.annotation())
	}
	for _, p := range t.Points {
		o.AddPoint(option.PointAnnotation{
			X:           p.X,
			Y:           p.Y,
			MarkerSize:  p.MarkerSize,
			MarkerColor: p.MarkerColor,
			Label:       p.Label,
		})
	}
}

func (t AxisAnnotationTable) annotation() option.AxisAnnotation {
	return option.AxisAnnotation{
		At:              t.At,
		To:              t.To,
		BorderColor:     t.BorderColor,
		FillColor:       t.FillColor,
		Opacity:         t.Opacity,
		StrokeDashArray: t.StrokeDashArray,
		Label:           t.Label,
		LabelColor:      t.LabelColor,
	}
}

// script accepts both raw source and the legacy marker-wrapped form.
func script(src string) tree.Script {
	if s, ok := tree.FromMarker(src); ok {
		return s
	}
	return tree.Script(src)
}

// setOption stores a free-form option. Nested tables are flattened into
// dotted paths so `[options.stroke]` and `"stroke.curve"` both work.
func setOption(c *chart.Chart, path string, v any) {
	if m, ok := v.(map[string]any); ok {
		for _, k := range sortedKeys(m) {
			setOption(c, path+"."+k, m[k])
		}
		return
	}
	c.Set(path, optionValue(v))
}

func optionValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		m := tree.New()
		for _, k := range sortedKeys(v) {
			m.Set(k, optionValue(v[k]))
		}
		return m
	case []map[string]any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = optionValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = optionValue(e)
		}
		return out
	default:
		return v
	}
}

// values converts decoded TOML numbers into chart values.
func values(raw []any) ([]chart.Value, error) {
	out := make([]chart.Value, len(raw))
	for i, v := range raw {
		switch v := v.(type) {
		case int64:
			out[i] = chart.V(float64(v))
		case float64:
			out[i] = chart.V(v)
		case string:
			if v != "null" {
				return nil, errors.New(errors.ErrCodeInvalidDefinition, "value %d: %q is not a number", i, v)
			}
			out[i] = chart.Null
		default:
			return nil, errors.New(errors.ErrCodeInvalidDefinition, "value %d: unsupported type %T", i, v)
		}
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
