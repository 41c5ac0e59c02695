// Package embed renders the HTML glue that places a chart on a page.
//
// [Render] returns a snippet holding the chart container and a script that
// creates the ApexCharts instance, renders it and loads the initial data.
// When the chart refreshes and a data URL is given, the script polls that
// URL and feeds each response to updateOptions. [Page] wraps one or more
// snippets in a standalone document that loads the ApexCharts library.
package embed

import (
	"bytes"
	"html/template"
	"io"

	"github.com/matzehuels/apexkit/pkg/chart"
	"github.com/matzehuels/apexkit/pkg/errors"
)

// DefaultLibraryURL is where [Page] loads ApexCharts from.
const DefaultLibraryURL = "https://cdn.jsdelivr.net/npm/apexcharts"

// Options controls the generated script.
type Options struct {
	// DataURL is polled for fresh data. It must answer with a JSON object
	// whose "data" field holds series, labels and colors. Empty disables
	// polling.
	DataURL string

	// Height sets an inline CSS height on the container, e.g. "350px".
	Height string
}

// PageOptions controls [Page].
type PageOptions struct {
	Title      string
	LibraryURL string
}

const snippetTmpl = `<div id="{{.ElementID}}" class="apexkit-chart"{{with .Height}} style="height: {{.}}"{{end}}></div>
<script>
var {{.VarName}} = new ApexCharts(document.getElementById({{.ElementID}}), {{.Options}});
{{.VarName}}.render();
{{.VarName}}.updateOptions({{.Data}});
{{- if .Poll}}
setInterval(function () {
    fetch({{.DataURL}}, {headers: {"Accept": "application/json"}})
        .then(function (r) { return r.ok ? r.json() : null; })
        .then(function (body) { if (body && body.data) { {{.VarName}}.updateOptions(body.data); } })
        .catch(function () {});
}, {{.IntervalMS}});
{{- end}}
</script>
`

const pageTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.LibraryURL}}"></script>
</head>
<body>
{{range .Snippets}}{{.}}{{end}}</body>
</html>
`

var (
	snippet = template.Must(template.New("snippet").Parse(snippetTmpl))
	page    = template.Must(template.New("page").Parse(pageTmpl))
)

type snippetData struct {
	ElementID  string
	VarName    template.JS
	Options    template.JS
	Data       template.JS
	Height     string
	Poll       bool
	DataURL    string
	IntervalMS int
}

// Render returns the container and script for c.
func Render(c *chart.Chart, opts Options) (template.HTML, error) {
	if opts.DataURL != "" {
		if err := errors.ValidateURL(opts.DataURL); err != nil {
			return "", err
		}
	}
	options, err := c.JSONOptions()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode options")
	}
	data, err := c.MarshalData()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode data")
	}

	cfg := c.Config()
	d := snippetData{
		ElementID:  c.ElementID(),
		VarName:    template.JS(c.VarName()),
		Options:    template.JS(scriptSafe(options)),
		Data:       template.JS(scriptSafe(data)),
		Height:     opts.Height,
		Poll:       opts.DataURL != "" && cfg.RefreshEnabled(),
		DataURL:    opts.DataURL,
		IntervalMS: cfg.RefreshTime * 1000,
	}

	var buf bytes.Buffer
	if err := snippet.Execute(&buf, d); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "render %s", c.ElementID())
	}
	return template.HTML(buf.String()), nil
}

// Page writes a complete HTML document holding the given snippets.
func Page(w io.Writer, opts PageOptions, snippets ...template.HTML) error {
	if opts.LibraryURL == "" {
		opts.LibraryURL = DefaultLibraryURL
	}
	if opts.Title == "" {
		opts.Title = "Charts"
	}
	return page.Execute(w, struct {
		Title      string
		LibraryURL string
		Snippets   []template.HTML
	}{opts.Title, opts.LibraryURL, snippets})
}

// scriptSafe breaks up closing tags inside serialized values so a label
// such as "</script>" cannot end the script element early.
func scriptSafe(b []byte) string {
	return string(bytes.ReplaceAll(b, []byte("</"), []byte(`<\/`)))
}
