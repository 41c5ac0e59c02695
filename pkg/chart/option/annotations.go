package option

import "github.com/matzehuels/apexkit/pkg/chart/tree"

// AxisAnnotation marks a value (a line) or a span (a band) on one axis.
// To is nil for lines.
type AxisAnnotation struct {
	At              any
	To              any
	BorderColor     string
	FillColor       string
	Opacity         float64
	StrokeDashArray int
	Label           string
	LabelColor      string
}

// PointAnnotation marks a single (x, y) point.
type PointAnnotation struct {
	X           any
	Y           any
	MarkerSize  int
	MarkerColor string
	Label       string
}

// Annotations holds the lines, bands and points drawn over a chart.
type Annotations struct {
	yaxis  []AxisAnnotation
	xaxis  []AxisAnnotation
	points []PointAnnotation
}

// NewAnnotations returns an empty annotation set.
func NewAnnotations() *Annotations {
	return &Annotations{}
}

// AddYaxis appends a horizontal line or band.
func (a *Annotations) AddYaxis(ann AxisAnnotation) *Annotations {
	a.yaxis = append(a.yaxis, ann)
	return a
}

// AddXaxis appends a vertical line or band.
func (a *Annotations) AddXaxis(ann AxisAnnotation) *Annotations {
	a.xaxis = append(a.xaxis, ann)
	return a
}

// AddPoint appends a point marker.
func (a *Annotations) AddPoint(ann PointAnnotation) *Annotations {
	a.points = append(a.points, ann)
	return a
}

// Len returns the total number of annotations.
func (a *Annotations) Len() int {
	return len(a.yaxis) + len(a.xaxis) + len(a.points)
}

// Reset removes every annotation.
func (a *Annotations) Reset() {
	a.yaxis, a.xaxis, a.points = nil, nil, nil
}

// Options returns the annotations subtree. The three lists are always
// present so the client can replace them wholesale on update.
func (a *Annotations) Options() *tree.Map {
	m := tree.New()
	m.Set("yaxis", axisAnnotations(a.yaxis, "y"))
	m.Set("xaxis", axisAnnotations(a.xaxis, "x"))

	points := make([]any, 0, len(a.points))
	for _, p := range a.points {
		pm := tree.New()
		pm.Set("x", p.X)
		pm.Set("y", p.Y)
		pm.SetPath("marker.size", p.MarkerSize)
		setIf(pm, p.MarkerColor != "", "marker.fillColor", p.MarkerColor)
		setIf(pm, p.Label != "", "label.text", p.Label)
		points = append(points, pm)
	}
	m.Set("points", points)
	return m
}

func axisAnnotations(anns []AxisAnnotation, axis string) []any {
	out := make([]any, 0, len(anns))
	for _, ann := range anns {
		am := tree.New()
		am.Set(axis, ann.At)
		setIf(am, ann.To != nil, axis+"2", ann.To)
		setIf(am, ann.BorderColor != "", "borderColor", ann.BorderColor)
		setIf(am, ann.FillColor != "", "fillColor", ann.FillColor)
		setIf(am, ann.Opacity > 0, "opacity", ann.Opacity)
		am.Set("strokeDashArray", ann.StrokeDashArray)
		if ann.Label != "" {
			am.SetPath("label.text", ann.Label)
			setIf(am, ann.LabelColor != "", "label.style.color", ann.LabelColor)
			setIf(am, ann.BorderColor != "", "label.borderColor", ann.BorderColor)
		}
		out = append(out, am)
	}
	return out
}
