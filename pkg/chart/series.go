package chart

import (
	"github.com/matzehuels/apexkit/pkg/chart/tree"
	"github.com/matzehuels/apexkit/pkg/errors"
)

// Serie is one named data sequence. Type optionally overrides the chart
// type for this serie in mixed charts.
type Serie struct {
	Name string
	Data []Value
	Type string
}

func (s Serie) tree() *tree.Map {
	m := tree.New().Set("name", s.Name)
	if s.Type != "" {
		m.Set("type", s.Type)
	}
	data := s.Data
	if data == nil {
		data = []Value{}
	}
	return m.Set("data", data)
}

// AddSerie appends an empty serie and its color. Names need not be unique.
func (c *Chart) AddSerie(name, color string) *Chart {
	return c.AddTypedSerie(name, color, "")
}

// AddTypedSerie appends an empty serie with a per-serie chart type. On a
// chart in pie mode it first drops the pie values, labels and colors, since
// they describe slices rather than series.
func (c *Chart) AddTypedSerie(name, color, typ string) *Chart {
	if c.pieMode {
		c.ResetSeries()
		c.labels = nil
	}
	c.series = append(c.series, Serie{Name: name, Type: typ})
	c.colors = append(c.colors, color)
	return c
}

// ResetSeries clears the series, their colors and any pie data.
func (c *Chart) ResetSeries() *Chart {
	c.series = nil
	c.colors = nil
	c.pie = nil
	c.pieMode = false
	return c
}

// AppendData appends one label and distributes values[i] onto serie i.
// values must hold exactly one entry per serie; a mismatch is rejected
// with SERIES_MISMATCH and nothing is appended.
func (c *Chart) AppendData(label string, values []Value) error {
	if len(values) != len(c.series) {
		return errors.New(errors.ErrCodeSeriesMismatch,
			"label %q has %d values for %d series", label, len(values), len(c.series))
	}
	c.labels = append(c.labels, label)
	for i, v := range values {
		c.series[i].Data = append(c.series[i].Data, v)
	}
	return nil
}

// AppendFloats is AppendData for values without nulls.
func (c *Chart) AppendFloats(label string, values ...float64) error {
	return c.AppendData(label, Floats(values...))
}

// AppendPieData replaces labels, series and, when colors is non-nil, the
// colors. The chart switches to pie mode: series is emitted as a flat
// list of values.
func (c *Chart) AppendPieData(labels, colors []string, data []Value) *Chart {
	c.labels = append([]string(nil), labels...)
	if colors != nil {
		c.colors = append([]string(nil), colors...)
	}
	c.series = nil
	c.pie = append([]Value(nil), data...)
	c.pieMode = true
	return c
}

// Series returns a copy of the series.
func (c *Chart) Series() []Serie {
	out := make([]Serie, len(c.series))
	for i, s := range c.series {
		s.Data = append([]Value(nil), s.Data...)
		out[i] = s
	}
	return out
}

// PieData returns a copy of the pie values.
func (c *Chart) PieData() []Value {
	return append([]Value{}, c.pie...)
}

// Colors returns a copy of the colors.
func (c *Chart) Colors() []string {
	return append([]string{}, c.colors...)
}

// Labels returns a copy of the labels.
func (c *Chart) Labels() []string {
	return append([]string{}, c.labels...)
}

// IsPie reports whether the chart holds pie data.
func (c *Chart) IsPie() bool {
	return c.pieMode
}
