package tree

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"

	"github.com/goccy/go-json"
)

const indentUnit = "    "

// Marshal serializes an options tree to script text.
//
// Maps keep insertion order, Go maps with string keys are written in
// sorted key order, and slices and arrays are walked element by element.
// [Script] values are written verbatim, so the result is a script literal
// rather than strict JSON whenever the tree holds scripts. Strings are
// always quoted; a marker inside a string is dropped, never interpreted.
// Any other value is encoded as a JSON leaf with HTML escaping disabled.
// With pretty set the output is indented by four spaces per level.
//
// The output never contains [Marker].
func Marshal(v any, pretty bool) ([]byte, error) {
	e := encoder{pretty: pretty}
	if err := e.encode(v, 0); err != nil {
		return nil, err
	}
	return Strip(e.buf.Bytes()), nil
}

// MarshalStrict serializes v as strict JSON in the same key order as
// [Marshal]. Scripts are written as quoted strings and markers inside
// strings are kept as literal text. Use it for data that did not come
// from the chart author, such as labels and series names.
func MarshalStrict(v any, pretty bool) ([]byte, error) {
	e := encoder{pretty: pretty, strict: true}
	if err := e.encode(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf    bytes.Buffer
	pretty bool
	strict bool
}

func (e *encoder) encode(v any, depth int) error {
	switch x := v.(type) {
	case nil:
		e.buf.WriteString("null")
		return nil
	case Script:
		if e.strict {
			return e.leaf(string(x))
		}
		e.buf.WriteString(removeMarkers(string(x)))
		return nil
	case *Map:
		if x == nil {
			e.buf.WriteString("null")
			return nil
		}
		return e.encodeMap(x, depth)
	case Map:
		return e.encodeMap(&x, depth)
	case string:
		return e.encodeString(x)
	case []byte, json.RawMessage:
		return e.leaf(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		return e.encodeList(rv, depth)
	case reflect.Array:
		return e.encodeList(rv, depth)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return e.leaf(v)
		}
		if rv.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		return e.encodeGoMap(rv, depth)
	}
	return e.leaf(v)
}

func (e *encoder) encodeString(s string) error {
	if e.strict {
		return e.leaf(s)
	}
	return e.leaf(removeMarkers(s))
}

func (e *encoder) leaf(v any) error {
	b, err := json.MarshalNoEscape(v)
	if err != nil {
		return fmt.Errorf("encode %T: %w", v, err)
	}
	e.buf.Write(b)
	return nil
}

func (e *encoder) encodeMap(m *Map, depth int) error {
	if len(m.keys) == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	for i, k := range m.keys {
		if err := e.key(k, i, depth); err != nil {
			return err
		}
		if err := e.encode(m.vals[k], depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) encodeGoMap(rv reflect.Value, depth int) error {
	if rv.Len() == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	e.buf.WriteByte('{')
	for i, k := range keys {
		if err := e.key(k, i, depth); err != nil {
			return err
		}
		val := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
		if err := e.encode(val.Interface(), depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) encodeList(rv reflect.Value, depth int) error {
	n := rv.Len()
	if n == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	e.buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.encode(rv.Index(i).Interface(), depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

// key writes the separator, indentation and quoted key of the i-th member.
func (e *encoder) key(k string, i, depth int) error {
	if i > 0 {
		e.buf.WriteByte(',')
	}
	e.newline(depth + 1)
	if err := e.leaf(k); err != nil {
		return err
	}
	e.buf.WriteByte(':')
	if e.pretty {
		e.buf.WriteByte(' ')
	}
	return nil
}

func (e *encoder) newline(depth int) {
	if !e.pretty {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(indentUnit)
	}
}
