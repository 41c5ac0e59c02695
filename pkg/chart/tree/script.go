package tree

import (
	"bytes"
	"strings"
)

// Script is a raw client-side expression, typically a function body such
// as "function (v) { return v + '%' }". It is emitted without quotes.
type Script string

// Marker is the legacy sentinel that wraps script source inside a plain
// string: "###FUNCTION###<source>###FUNCTION###". Trees built in Go should
// use [Script]; the marker form exists for values that arrive as text
// (definition files, free-form options).
const Marker = "###FUNCTION###"

// Func wraps src in the marker form.
func Func(src string) string {
	return Marker + src + Marker
}

// FromMarker reports whether s is a marker-wrapped script and returns the
// unwrapped source.
func FromMarker(s string) (Script, bool) {
	if len(s) < 2*len(Marker) || !strings.HasPrefix(s, Marker) || !strings.HasSuffix(s, Marker) {
		return "", false
	}
	return Script(s[len(Marker) : len(s)-len(Marker)]), true
}

// Scripts returns v with every marker-wrapped string turned into a
// [Script]. Maps and []any slices are converted element by element; maps
// are copied, never modified in place. Call it where author-written
// options enter a tree, never on data.
func Scripts(v any) any {
	switch x := v.(type) {
	case string:
		if src, ok := FromMarker(x); ok {
			return src
		}
		return x
	case *Map:
		if x == nil {
			return x
		}
		out := New()
		for _, k := range x.keys {
			out.Set(k, Scripts(x.vals[k]))
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Scripts(e)
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Scripts(e)
		}
		return out
	}
	return v
}

// removeMarkers drops markers until none is left, so that removing one
// cannot join the surrounding text into a new marker.
func removeMarkers(s string) string {
	for strings.Contains(s, Marker) {
		s = strings.ReplaceAll(s, Marker, "")
	}
	return s
}

// stripTokens are removed by [Strip], longest first so a quote adjacent to
// a marker goes with it.
var stripTokens = [][]byte{
	[]byte(`"` + Marker),
	[]byte(Marker + `"`),
	[]byte(`'` + Marker),
	[]byte(Marker + `'`),
	[]byte(Marker),
}

// Strip removes every marker token from serialized text, together with a
// directly adjacent single or double quote. Passes repeat until no marker
// is left. It is the text-level pass for output produced outside
// [Marshal]; Marshal itself never emits a marker.
func Strip(b []byte) []byte {
	marker := stripTokens[len(stripTokens)-1]
	out := b
	for bytes.Contains(out, marker) {
		for _, tok := range stripTokens {
			out = bytes.ReplaceAll(out, tok, nil)
		}
	}
	return out
}
