package cli

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apexkit/pkg/chart"
	"github.com/matzehuels/apexkit/pkg/chart/embed"
	"github.com/matzehuels/apexkit/pkg/definition"
	"github.com/matzehuels/apexkit/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format) or base path (multiple)
	formats []string // options, data, html
	key     string   // chart instance key
	pretty  bool     // indent JSON output
	noCache bool     // skip the local cache entirely
	refresh int      // refresh seconds for definitions that set none
	dataURL string   // polled by the html output
	height  string   // html container height
}

// formatExt maps a format to the file suffix used for multi-format output.
var formatExt = map[string]string{
	pipeline.FormatOptions: ".options.json",
	pipeline.FormatData:    ".data.json",
	pipeline.FormatHTML:    ".html",
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file.toml]",
		Short: "Build a chart definition and write its options, data or HTML",
		Long: `Build a chart definition and write the requested artifacts.

With a single format and no --output, the artifact is written to stdout.
With several formats, one file per format is written next to the input
(or under the --output base path).`,
		Example: `  apexkit render charts/sales.toml
  apexkit render charts/sales.toml -f data --key store-42
  apexkit render charts/sales.toml -f options,data,html -o out/sales`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): options (default), data, html (comma-separated)")
	cmd.Flags().StringVarP(&opts.key, "key", "k", "", "chart instance key")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the local cache")
	cmd.Flags().IntVar(&opts.refresh, "refresh-time", chart.DefaultRefreshTime, "refresh interval in seconds for definitions without one (-1 disables polling)")
	cmd.Flags().StringVar(&opts.dataURL, "data-url", "", "URL the html output polls for fresh data")
	cmd.Flags().StringVar(&opts.height, "height", "", "html container height, e.g. 350px")

	return cmd
}

// runRender loads the definition at input, runs the pipeline and writes
// every requested artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	prog := newProgress(c.Logger)

	def, err := definition.Load(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded definition", "name", def.Name(), "path", def.Path())

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	spin := c.ui.newSpinner(ctx, "Building "+def.Name())
	spin.Start()
	result, err := runner.Execute(ctx, def, pipeline.Options{
		Key:     opts.key,
		Formats: opts.formats,
		Config:  chart.Config{RefreshTime: opts.refresh, Debug: opts.pretty},
		DataURL: opts.dataURL,
		Height:  opts.height,
	})
	if err != nil {
		spin.StopWithError("Failed to build %s", def.Name())
		return err
	}
	spin.Stop()
	prog.done("Built " + def.Name())
	c.ui.stats(result.Stats.SeriesCount, result.Stats.LabelCount, result.CacheInfo.AllHit)

	if len(opts.formats) == 1 {
		return c.writeArtifact(def, opts.formats[0], result, opts.output)
	}
	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		if err := c.writeArtifact(def, format, result, base+formatExt[format]); err != nil {
			return err
		}
	}
	return nil
}

// writeArtifact writes one artifact to path, or to stdout when path is
// empty. HTML snippets are wrapped in a standalone page.
func (c *CLI) writeArtifact(def *definition.File, format string, result *pipeline.Result, path string) error {
	data := result.Artifacts[format]
	if format == pipeline.FormatHTML {
		var buf bytes.Buffer
		if err := embed.Page(&buf, embed.PageOptions{Title: pageTitle(def)}, template.HTML(data)); err != nil {
			return err
		}
		data = buf.Bytes()
	} else if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(append([]byte(nil), data...), '\n')
	}

	out, err := openOutput(path, c.out)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	if path != "" {
		c.ui.file(path)
	}
	return nil
}

func pageTitle(def *definition.File) string {
	if def.Title != "" {
		return def.Title
	}
	return def.Name()
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range formatExt {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// openOutput opens path for writing, or returns stdout when path is empty.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
