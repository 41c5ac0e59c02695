package tree

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := New().Set("b", 1).Set("a", 2).Set("c", 3)
	m.Set("b", 4)

	got := strings.Join(m.Keys(), ",")
	if got != "b,a,c" {
		t.Errorf("Keys() = %s, want b,a,c", got)
	}
	if v, _ := m.Get("b"); v != 4 {
		t.Errorf("Get(b) = %v, want 4", v)
	}
}

func TestMapDelete(t *testing.T) {
	m := New().Set("a", 1).Set("b", 2).Set("c", 3)
	m.Delete("b")
	m.Delete("missing")

	if got := strings.Join(m.Keys(), ","); got != "a,c" {
		t.Errorf("Keys() = %s, want a,c", got)
	}
	if _, ok := m.Get("b"); ok {
		t.Error("deleted key should be absent")
	}
}

func TestNilMapReads(t *testing.T) {
	var m *Map
	if m.Len() != 0 {
		t.Error("nil map should have zero length")
	}
	if _, ok := m.Get("x"); ok {
		t.Error("nil map Get should miss")
	}
	if m.Keys() != nil {
		t.Error("nil map Keys should be nil")
	}
}

func TestSetPathAndGetPath(t *testing.T) {
	m := New()
	m.SetPath("xaxis.lines.show", true)
	m.SetPath("xaxis.title", "Month")

	v, ok := m.GetPath("xaxis.lines.show")
	if !ok || v != true {
		t.Errorf("GetPath(xaxis.lines.show) = %v, %v", v, ok)
	}
	if _, ok := m.GetPath("xaxis.title.text"); ok {
		t.Error("GetPath through a leaf should miss")
	}
	if _, ok := m.GetPath("yaxis"); ok {
		t.Error("GetPath(yaxis) should miss")
	}

	// A leaf on the way is replaced by a map.
	m.SetPath("xaxis.title.text", "Month")
	if v, _ := m.GetPath("xaxis.title.text"); v != "Month" {
		t.Errorf("GetPath(xaxis.title.text) = %v", v)
	}
}

func TestMergeDeep(t *testing.T) {
	base := New()
	base.SetPath("chart.type", "line")
	base.SetPath("chart.height", 300)
	base.SetPath("stroke.curve", "smooth")

	over := New()
	over.SetPath("chart.type", "bar")
	over.SetPath("grid.show", false)

	base.Merge(over)

	want := map[string]any{
		"chart.type":   "bar",
		"chart.height": 300,
		"stroke.curve": "smooth",
		"grid.show":    false,
	}
	for path, w := range want {
		if got, _ := base.GetPath(path); got != w {
			t.Errorf("%s = %v, want %v", path, got, w)
		}
	}

	// Merged maps are copies.
	over.SetPath("grid.show", true)
	if got, _ := base.GetPath("grid.show"); got != false {
		t.Error("Merge should clone maps from the other tree")
	}
}

func TestMergeLeafReplacesMap(t *testing.T) {
	base := New()
	base.SetPath("series.x", 1)
	base.Merge(New().Set("series", []any{}))

	v, _ := base.Get("series")
	if _, ok := v.([]any); !ok {
		t.Errorf("series = %T, want []any", v)
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := New()
	m.SetPath("a.b", 1)
	c := m.Clone()
	c.SetPath("a.b", 2)

	if v, _ := m.GetPath("a.b"); v != 1 {
		t.Errorf("original changed to %v", v)
	}
}

func TestMarshalCompact(t *testing.T) {
	m := New()
	m.SetPath("chart.type", "bar")
	m.Set("labels", []string{"Jan", "Feb"})
	m.Set("colors", []any{"#FF0000", nil})
	m.Set("noData", New().Set("text", "<none>"))
	m.Set("opts", map[string]int{"b": 2, "a": 1})

	got, err := Marshal(m, false)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"chart":{"type":"bar"},"labels":["Jan","Feb"],"colors":["#FF0000",null],"noData":{"text":"<none>"},"opts":{"a":1,"b":2}}`
	if string(got) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", got, want)
	}
}

func TestMarshalPretty(t *testing.T) {
	m := New()
	m.SetPath("grid.show", true)
	m.Set("series", []any{})
	m.Set("empty", New())

	got, err := Marshal(m, true)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := "{\n" +
		"    \"grid\": {\n" +
		"        \"show\": true\n" +
		"    },\n" +
		"    \"series\": [],\n" +
		"    \"empty\": {}\n" +
		"}"
	if string(got) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", got, want)
	}
}

func TestMarshalScripts(t *testing.T) {
	m := New()
	m.SetPath("tooltip.y.formatter", Script("function (v) { return v + '%' }"))
	m.SetPath("xaxis.labels.formatter", Func("function (v) { return v }"))
	m.SetPath("title.text", "a "+Marker+" b")

	got, err := Marshal(m, false)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	out := string(got)

	if strings.Contains(out, Marker) {
		t.Errorf("output contains marker: %s", out)
	}
	if !strings.Contains(out, `"formatter":function (v) { return v + '%' }`) {
		t.Errorf("script not emitted raw: %s", out)
	}
	if !strings.Contains(out, `"formatter":"function (v) { return v }"`) {
		t.Errorf("marker string should stay a quoted string: %s", out)
	}
	if !strings.Contains(out, `"text":"a  b"`) {
		t.Errorf("stray marker not removed: %s", out)
	}
}

func TestMarshalRemovesNestedMarkers(t *testing.T) {
	nested := "###FUNC" + Marker + "TION###"
	tests := []struct {
		in   string
		want string
	}{
		{nested, `{"label":""}`},
		{nested + "alert(1)" + nested, `{"label":"alert(1)"}`},
		{Marker + Marker + "x", `{"label":"x"}`},
	}
	for _, tt := range tests {
		got, err := Marshal(New().Set("label", tt.in), false)
		if err != nil {
			t.Fatalf("Marshal(%q) error: %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMarshalStrict(t *testing.T) {
	label := Func("alert(1)")
	m := New().
		Set("labels", []string{label, "Jan"}).
		Set("formatter", Script("function (v) { return v }"))

	got, err := MarshalStrict(m, false)
	if err != nil {
		t.Fatalf("MarshalStrict() error: %v", err)
	}
	want := `{"labels":["` + label + `","Jan"],"formatter":"function (v) { return v }"}`
	if string(got) != want {
		t.Errorf("MarshalStrict() = %s, want %s", got, want)
	}

	var back struct {
		Labels []string `json:"labels"`
	}
	if err := json.Unmarshal(got, &back); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(back.Labels) != 2 || back.Labels[0] != label {
		t.Errorf("labels round trip = %q", back.Labels)
	}
}

func TestScripts(t *testing.T) {
	in := New().
		Set("formatter", Func("f")).
		Set("list", []any{Func("g"), "plain"}).
		Set("text", "a "+Marker)
	out := Scripts(in).(*Map)

	if v, _ := out.Get("formatter"); v != Script("f") {
		t.Errorf("formatter = %#v", v)
	}
	list, _ := out.Get("list")
	if l := list.([]any); l[0] != Script("g") || l[1] != "plain" {
		t.Errorf("list = %#v", l)
	}
	if v, _ := out.Get("text"); v != "a "+Marker {
		t.Errorf("partial marker should stay a string, got %#v", v)
	}
	if v, _ := in.Get("formatter"); v != Func("f") {
		t.Error("Scripts modified its input")
	}
	if Scripts("plain") != "plain" || Scripts(3) != 3 {
		t.Error("non-marker values should pass through")
	}
}

func TestTreeKeepsMarkerBeforeSerialization(t *testing.T) {
	m := New().Set("formatter", Func("f"))
	v, _ := m.Get("formatter")
	if !strings.Contains(v.(string), Marker) {
		t.Error("the tree should keep the marker until serialization")
	}
}

func TestFromMarker(t *testing.T) {
	tests := []struct {
		in     string
		want   Script
		wantOK bool
	}{
		{Func("x"), "x", true},
		{Func(""), "", true},
		{"plain", "", false},
		{Marker, "", false},
		{Marker + "x", "", false},
	}
	for _, tt := range tests {
		got, ok := FromMarker(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("FromMarker(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStrip(t *testing.T) {
	in := []byte(`{"f":"` + Marker + `function(){}` + Marker + `","g":'` + Marker + `x` + Marker + `'}`)
	got := string(Strip(in))
	want := `{"f":function(){},"g":x}`
	if got != want {
		t.Errorf("Strip() = %s, want %s", got, want)
	}

	nested := []byte(`{"f":"###FUNC` + Marker + `TION###x"}`)
	if got := string(Strip(nested)); strings.Contains(got, Marker) || strings.Contains(got, "###FUNC") {
		t.Errorf("Strip left a marker behind: %s", got)
	}

	plain := []byte(`{"a":1}`)
	if string(Strip(plain)) != `{"a":1}` {
		t.Error("Strip should leave marker-free text alone")
	}
}

func TestMapMarshalJSON(t *testing.T) {
	m := New().Set("b", 1).Set("a", "x")
	b, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if string(b) != `{"b":1,"a":"x"}` {
		t.Errorf("MarshalJSON() = %s", b)
	}
}
