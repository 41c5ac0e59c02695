package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/apexkit/pkg/cache"
	"github.com/matzehuels/apexkit/pkg/chart"
	"github.com/matzehuels/apexkit/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"options", false},
		{"data", false},
		{"html", false},
		{"svg", true},
		{"DATA", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidOption) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidOption)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"options", "data"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"options", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Formats: []string{"data", "options", "data"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if got := strings.Join(opts.Formats, ","); got != "data,options" {
		t.Errorf("Formats = %s, want data,options", got)
	}
	if opts.Config.RefreshTime != chart.DefaultRefreshTime {
		t.Errorf("RefreshTime = %d, want %d", opts.Config.RefreshTime, chart.DefaultRefreshTime)
	}

	var empty Options
	if err := empty.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(empty.Formats) != 1 || empty.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", empty.Formats, DefaultFormat)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"png"}}, errors.ErrCodeInvalidOption},
		{"bad refresh", Options{Config: chart.Config{RefreshTime: -5}}, errors.ErrCodeInvalidRefresh},
		{"bad key", Options{Key: "a\x01b"}, errors.ErrCodeInvalidInput},
		{"bad url", Options{DataURL: "javascript:alert(1)"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

// salesDef counts Data calls so tests can tell cached runs apart.
type salesDef struct {
	chart.Funcs
	rev   string
	calls *int
}

func (d salesDef) Revision() string { return d.rev }

func newSalesDef(rev string) salesDef {
	calls := new(int)
	return salesDef{
		Funcs: chart.Funcs{
			Title: "sales",
			DefineFunc: func(c *chart.Chart) error {
				c.AddSerie("Sales", "#FF0000")
				return nil
			},
			DataFunc: func(ctx context.Context, c *chart.Chart) error {
				*calls++
				return c.AppendFloats("Jan", 100)
			},
		},
		rev:   rev,
		calls: calls,
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	def := newSalesDef("v1")
	ctx := context.Background()

	result, err := r.Execute(ctx, def, Options{Formats: []string{FormatOptions, FormatData}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.CacheInfo.AllHit {
		t.Error("first run should not be served from cache")
	}
	if *def.calls != 1 {
		t.Errorf("Data calls = %d, want 1", *def.calls)
	}
	if result.Stats.SeriesCount != 1 || result.Stats.LabelCount != 1 {
		t.Errorf("Stats = %+v, want 1 series and 1 label", result.Stats)
	}
	want := `{"series":[{"name":"Sales","data":[100]}],"labels":["Jan"],"colors":["#FF0000"]}`
	if got := string(result.Artifacts[FormatData]); got != want {
		t.Errorf("data = %s, want %s", got, want)
	}
	if !bytes.Contains(result.Artifacts[FormatOptions], []byte(`"noData"`)) {
		t.Errorf("options missing noData: %s", result.Artifacts[FormatOptions])
	}

	again, err := r.Execute(ctx, def, Options{Formats: []string{FormatOptions, FormatData}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !again.CacheInfo.AllHit {
		t.Errorf("second run hits = %v, want all", again.CacheInfo.Hits)
	}
	if *def.calls != 1 {
		t.Errorf("Data calls = %d, want 1 after cached run", *def.calls)
	}
	if !bytes.Equal(again.Artifacts[FormatData], result.Artifacts[FormatData]) {
		t.Error("cached data differs from rendered data")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	r := newTestRunner(t)
	def := newSalesDef("v1")
	ctx := context.Background()

	if _, err := r.Execute(ctx, def, Options{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	result, err := r.Execute(ctx, def, Options{Refresh: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.CacheInfo.Hits[FormatOptions] {
		t.Error("refresh run should not read the cache")
	}
	if *def.calls != 2 {
		t.Errorf("Data calls = %d, want 2", *def.calls)
	}
}

func TestExecuteRefreshDisabledSkipsDataCache(t *testing.T) {
	r := newTestRunner(t)
	def := newSalesDef("v1")
	ctx := context.Background()
	opts := func() Options {
		return Options{
			Formats: []string{FormatOptions, FormatData},
			Config:  chart.Config{RefreshTime: chart.RefreshDisabled},
		}
	}

	if _, err := r.Execute(ctx, def, opts()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	result, err := r.Execute(ctx, def, opts())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.CacheInfo.Hits[FormatOptions] {
		t.Error("options should still be cached")
	}
	if result.CacheInfo.Hits[FormatData] {
		t.Error("data of a non-refreshing chart should not be cached")
	}
	if *def.calls != 2 {
		t.Errorf("Data calls = %d, want 2", *def.calls)
	}
}

func TestExecuteRevisionChangesKey(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, newSalesDef("v1"), Options{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	result, err := r.Execute(ctx, newSalesDef("v2"), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.CacheInfo.AllHit {
		t.Error("a new revision should not hit entries of the old one")
	}
}

func TestExecuteHTML(t *testing.T) {
	r := newTestRunner(t)
	def := newSalesDef("v1")

	result, err := r.Execute(context.Background(), def, Options{
		Key:     "store-1",
		Formats: []string{FormatHTML},
		DataURL: "/api/charts/sales/data?key=store-1",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	html := string(result.Artifacts[FormatHTML])
	for _, want := range []string{result.Chart.ElementID(), result.Chart.VarName(), "setInterval", "60000"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q:\n%s", want, html)
		}
	}
}

func TestExecuteDataError(t *testing.T) {
	r := newTestRunner(t)
	def := chart.Funcs{
		Title: "broken",
		DataFunc: func(ctx context.Context, c *chart.Chart) error {
			return errors.New(errors.ErrCodeInternal, "source down")
		},
	}

	_, err := r.Execute(context.Background(), def, Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInternal)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	c, err := chart.New("test", "", chart.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := Render(c, "svg", Options{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExecuteKeyTracksRenderSettings(t *testing.T) {
	tests := []struct {
		name   string
		format string
		first  Options
		second Options
		want   string
	}{
		{
			name:   "height",
			format: FormatHTML,
			first:  Options{Height: "100px"},
			second: Options{Height: "900px"},
			want:   "900px",
		},
		{
			name:   "no data text",
			format: FormatOptions,
			first:  Options{Config: chart.Config{NoDataText: "first"}},
			second: Options{Config: chart.Config{NoDataText: "second"}},
			want:   "second",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRunner(t)
			def := newSalesDef("v1")
			ctx := context.Background()

			tt.first.Formats = []string{tt.format}
			tt.second.Formats = []string{tt.format}
			if _, err := r.Execute(ctx, def, tt.first); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			result, err := r.Execute(ctx, def, tt.second)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if result.CacheInfo.Hits[tt.format] {
				t.Errorf("changed %s should miss the cache", tt.name)
			}
			if !bytes.Contains(result.Artifacts[tt.format], []byte(tt.want)) {
				t.Errorf("%s artifact missing %q:\n%s", tt.format, tt.want, result.Artifacts[tt.format])
			}
		})
	}
}
