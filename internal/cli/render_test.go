package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderToStdout(t *testing.T) {
	path := writeDefinition(t, t.TempDir(), "sales.toml", salesTOML)

	out, _, err := runCLI(t, "render", path, "--format", "data")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"series":[{"name":"Sales","data":[100,120]},{"name":"Cost","data":[40,50]}],"labels":["Jan","Feb"],"colors":["#FF0000","#00FF00"]}` + "\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestRenderPretty(t *testing.T) {
	path := writeDefinition(t, t.TempDir(), "sales.toml", salesTOML)

	out, _, err := runCLI(t, "render", path, "--pretty")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "\n    \"chart\": {") {
		t.Errorf("pretty options should use 4-space indents:\n%s", out)
	}
	if strings.Contains(out, "###FUNCTION###") {
		t.Error("options should not contain the function marker")
	}
}

func TestRenderMultipleFormats(t *testing.T) {
	dir := t.TempDir()
	path := writeDefinition(t, dir, "sales.toml", salesTOML)
	base := filepath.Join(dir, "out", "sales")

	_, stderr, err := runCLI(t, "render", path, "-f", "options,data,html", "-o", base, "--key", "store-1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, ext := range []string{".options.json", ".data.json", ".html"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s: %v", base+ext, err)
		}
		if !strings.Contains(stderr, base+ext) {
			t.Errorf("stderr should list %s", base+ext)
		}
	}

	page, err := os.ReadFile(base + ".html")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "<title>Monthly sales</title>", "new ApexCharts"} {
		if !strings.Contains(string(page), want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeDefinition(t, dir, "sales.toml", salesTOML)
	bad := writeDefinition(t, dir, "bad.toml", "[[series]]\nname = \"A\"\ncolor = \"nope!\"\n")

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"render", filepath.Join(dir, "missing.toml")}},
		{"invalid definition", []string{"render", bad}},
		{"invalid format", []string{"render", good, "-f", "svg"}},
		{"no args", []string{"render"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "charts/sales.toml", "charts/sales"},
		{"out/sales", "charts/sales.toml", "out/sales"},
		{"out/sales.html", "charts/sales.toml", "out/sales"},
		{"out/sales.data.json", "charts/sales.toml", "out/sales"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}
