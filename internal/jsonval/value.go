// Package jsonval wraps already-decoded JSON (the any trees produced by
// encoding/json) in a small tagged variant so traversal is exhaustive and
// never panics on malformed or unexpectedly-shaped input.
package jsonval

import (
	"encoding/json"
	"strings"
)

// Kind tags the variant of a Value.
type Kind int

const (
	Missing Kind = iota // absent field, nil Value, or out-of-range index
	Null
	Bool
	Number
	String
	Array
	Object
)

// String returns the lowercase kind name, for logs and error detail.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "missing"
	}
}

// Value is one node of a decoded JSON document. The zero Value is Missing.
type Value struct {
	kind Kind
	obj  map[string]any
	arr  []any
	str  string
	num  float64
	b    bool
}

// Of classifies a decoded JSON node. Anything encoding/json can produce is
// recognized; unknown Go types map to Missing rather than panicking.
func Of(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{kind: Null}
	case map[string]any:
		return Value{kind: Object, obj: t}
	case []any:
		return Value{kind: Array, arr: t}
	case string:
		return Value{kind: String, str: t}
	case bool:
		return Value{kind: Bool, b: t}
	case float64:
		return Value{kind: Number, num: t}
	case int:
		return Value{kind: Number, num: float64(t)}
	case int64:
		return Value{kind: Number, num: float64(t)}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{kind: String, str: t.String()}
		}
		return Value{kind: Number, num: f}
	default:
		return Value{}
	}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool { return v.kind == Missing }

// Field returns the named member of an object, or Missing for any other kind.
func (v Value) Field(name string) Value {
	if v.kind != Object {
		return Value{}
	}
	raw, ok := v.obj[name]
	if !ok {
		return Value{}
	}
	return Of(raw)
}

// Index returns the i-th element of an array, or Missing.
func (v Value) Index(i int) Value {
	if v.kind != Array || i < 0 || i >= len(v.arr) {
		return Value{}
	}
	return Of(v.arr[i])
}

// Len returns the element count for arrays, member count for objects,
// rune-agnostic byte length for strings, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	case String:
		return len(v.str)
	default:
		return 0
	}
}

// Str returns the string payload ("" unless Kind == String).
func (v Value) Str() string { return v.str }

// Num returns the numeric payload (0 unless Kind == Number).
func (v Value) Num() float64 { return v.num }

// NonEmpty is the stricter value-shape check layered on top of presence:
// strings and collections must have content, numbers and bools count as
// substantive, null does not.
func (v Value) NonEmpty() bool {
	switch v.kind {
	case String, Array, Object:
		return v.Len() > 0
	case Number, Bool:
		return true
	default:
		return false
	}
}

// At resolves a dot-separated path against the value. A segment suffixed
// with "[]" expects an array at that member and continues into its elements;
// the first element for which the remainder of the path resolves wins. Any
// mismatch along the way yields Missing, never an error.
//
//	Of(doc).At("testsuites.testsuite[].name")
func (v Value) At(path string) Value {
	if path == "" {
		return v
	}
	return v.at(strings.Split(path, "."))
}

func (v Value) at(segments []string) Value {
	cur := v
	for i, seg := range segments {
		if name, ok := strings.CutSuffix(seg, "[]"); ok {
			arr := cur.Field(name)
			if arr.kind != Array {
				return Value{}
			}
			rest := segments[i+1:]
			if len(rest) == 0 {
				return arr
			}
			for j := 0; j < arr.Len(); j++ {
				if hit := arr.Index(j).at(rest); !hit.IsMissing() {
					return hit
				}
			}
			return Value{}
		}
		cur = cur.Field(seg)
		if cur.IsMissing() {
			return Value{}
		}
	}
	return cur
}
