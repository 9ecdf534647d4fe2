package jsondoc

import (
	"bytes"
	"encoding/json"
	"io"
	"slices"

	jsonpatch "github.com/evanphx/json-patch/v5"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/thoreinstein/vibecheck/internal/errors"
)

// ErrNotObject indicates that a JSON value was expected to be an object but was not.
var ErrNotObject = errors.New("JSON value is not an object")

// Object is a JSON object that preserves key order.
// The zero value is not usable; create instances with NewObject.
type Object struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, any]()}
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	return o.m.Get(key)
}

// Set stores value under key. An existing key keeps its position;
// a new key is appended.
func (o *Object) Set(key string, value any) {
	o.m.Set(key, value)
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	_, present := o.m.Delete(key)
	return present
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.m.Get(key)
	return ok
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return o.m.Len()
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.m.Len())
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Object returns the nested object stored under key.
// The boolean is false when the key is absent. A present key holding
// anything other than an object yields ErrNotObject.
func (o *Object) Object(key string) (*Object, bool, error) {
	v, ok := o.m.Get(key)
	if !ok {
		return nil, false, nil
	}
	child, isObj := v.(*Object)
	if !isObj {
		return nil, true, errors.Wrapf(ErrNotObject, "key %q holds %s", key, KindOf(v))
	}
	return child, true, nil
}

// String returns the string stored under key, or "" when it is absent or not a string.
func (o *Object) String(key string) string {
	v, _ := o.m.Get(key)
	s, _ := v.(string)
	return s
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	return Clone(o).(*Object)
}

// MarshalJSON encodes the object compactly with keys in order.
// HTML characters are not escaped so URLs stay readable.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (o *Object) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	o.m = parsed.m
	return nil
}

// Parse decodes data into an Object. The top-level value must be an object;
// arrays and scalars yield ErrNotObject.
func Parse(data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, errors.Wrap(err, "decoding JSON")
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decoding JSON: unexpected data after top-level value")
	}

	obj, ok := v.(*Object)
	if !ok {
		return nil, errors.Wrapf(ErrNotObject, "top-level value is %s", KindOf(v))
	}
	return obj, nil
}

// MarshalIndent encodes v with two-space indentation and a trailing newline.
func MarshalIndent(v any) ([]byte, error) {
	var compact bytes.Buffer
	if err := encodeValue(&compact, v); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, errors.Wrap(err, "indenting JSON")
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Equal reports whether a and b are semantically equal JSON values.
// Object key order is ignored; array order is significant.
func Equal(a, b any) bool {
	ab, err := json.Marshal(wrap(a))
	if err != nil {
		return false
	}
	bb, err := json.Marshal(wrap(b))
	if err != nil {
		return false
	}
	return jsonpatch.Equal(ab, bb)
}

// Clone returns a deep copy of a JSON value.
func Clone(v any) any {
	switch t := v.(type) {
	case *Object:
		c := NewObject()
		for pair := t.m.Oldest(); pair != nil; pair = pair.Next() {
			c.m.Set(pair.Key, Clone(pair.Value))
		}
		return c
	case []any:
		c := make([]any, len(t))
		for i, item := range t {
			c[i] = Clone(item)
		}
		return c
	default:
		return v
	}
}

// ToPlain converts a JSON value into the map[string]any / []any form
// expected by libraries that do not know about Object.
func ToPlain(v any) any {
	switch t := v.(type) {
	case *Object:
		m := make(map[string]any, t.Len())
		for pair := t.m.Oldest(); pair != nil; pair = pair.Next() {
			m[pair.Key] = ToPlain(pair.Value)
		}
		return m
	case []any:
		c := make([]any, len(t))
		for i, item := range t {
			c[i] = ToPlain(item)
		}
		return c
	default:
		return v
	}
}

// Strings converts a string slice into a JSON array value.
// A nil slice becomes an empty array so "args": [] is written explicitly.
func Strings(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// StringMap converts a string map into an Object with keys sorted.
// A nil map becomes an empty object.
func StringMap(values map[string]string) *Object {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	obj := NewObject()
	for _, k := range keys {
		obj.Set(k, values[k])
	}
	return obj
}

// KindOf names the JSON kind of v for error messages.
func KindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case string:
		return "a string"
	case json.Number, float64, int, int64:
		return "a number"
	case []any:
		return "an array"
	case *Object:
		return "an object"
	default:
		return "an unsupported value"
	}
}

// wrap lets json.Marshal handle values that are not themselves Marshalers.
func wrap(v any) json.Marshaler {
	return rawValue{v: v}
}

type rawValue struct{ v any }

func (r rawValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, r.v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
