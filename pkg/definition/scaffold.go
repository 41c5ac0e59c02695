package definition

import (
	"bytes"
	"text/template"

	"github.com/matzehuels/apexkit/pkg/chart/option"
	"github.com/matzehuels/apexkit/pkg/errors"
)

const scaffoldTmpl = `# Chart definition for {{.Name}}.
# Render it with: apexkit render {{.Name}}.toml

name = "{{.Name}}"
title = "{{.Title}}"

# Seconds between client-side data refreshes, or -1 to disable.
refresh = 60

[chart]
type = "{{.Type}}"
height = 350

[legend]
position = "bottom"
horizontal_align = "center"
{{if .Pie}}
[pie]
labels = ["Alpha", "Beta", "Gamma"]
colors = ["#008FFB", "#00E396", "#FEB019"]
data = [44, 33, 23]
{{else}}
[tooltip]
theme = "light"

[xaxis]
type = "category"

[[series]]
name = "Sales"
color = "#008FFB"

[[series]]
name = "Cost"
color = "#FF4560"

[[points]]
label = "Jan"
values = [100, 40]

[[points]]
label = "Feb"
values = [120, 50]

[functions]
"yaxis.labels.formatter" = "function (v) { return v.toFixed(0) }"
{{end}}`

var scaffold = template.Must(template.New("scaffold").Parse(scaffoldTmpl))

// Scaffold returns a commented starter definition for a chart called
// name. Pie-like types get a [pie] table instead of series and points.
func Scaffold(name, typ string) ([]byte, error) {
	if err := errors.ValidateChartName(name); err != nil {
		return nil, err
	}
	if typ == "" {
		typ = option.TypeLine
	}
	if err := option.NewChart().SetType(typ); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err := scaffold.Execute(&buf, struct {
		Name, Title, Type string
		Pie               bool
	}{name, title(name), typ, option.IsPieLike(typ)})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render scaffold")
	}
	return buf.Bytes(), nil
}

// title turns "monthly-sales" into "Monthly sales".
func title(name string) string {
	b := []byte(name)
	for i, c := range b {
		if c == '-' || c == '_' {
			b[i] = ' '
		}
	}
	if len(b) > 0 && b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
