package jsonvalue

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ErrUnsupported is returned by Normalize for values that have no JSON
// representation, such as channels and functions.
var ErrUnsupported = errors.New("value has no JSON representation")

// Kind is the JSON type of a value.
type Kind int

const (
	Invalid Kind = iota
	Null
	Boolean
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "invalid"
}

// KindOf classifies a normalized value.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Boolean
	case string:
		return String
	case []any:
		return Array
	case map[string]any:
		return Object
	}
	if IsNumber(v) {
		return Number
	}
	return Invalid
}

// TypeName names the JSON type of a normalized value, distinguishing
// integers from other numbers.
func TypeName(v any) string {
	k := KindOf(v)
	if k == Number && IsInteger(v) {
		return "integer"
	}
	return k.String()
}

var (
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Normalize converts v into the generic shape produced by encoding/json:
// map[string]any, []any, string, bool, nil and numbers. Values already in
// that shape are returned without copying. yaml.v3 map[any]any keys are
// stringified; structs and other marshalers are inspected through their
// JSON encoding, decoded with UseNumber.
func Normalize(v any) (any, error) {
	out, _, err := normalize(v)
	return out, err
}

func normalize(v any) (any, bool, error) {
	switch t := v.(type) {
	case nil, bool, string, json.Number, float64, float32,
		int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v, false, nil
	case []any:
		var out []any
		for i, item := range t {
			n, changed, err := normalize(item)
			if err != nil {
				return nil, false, err
			}
			if changed && out == nil {
				out = make([]any, len(t))
				copy(out, t[:i])
			}
			if out != nil {
				out[i] = n
			}
		}
		if out == nil {
			return t, false, nil
		}
		return out, true, nil
	case map[string]any:
		var out map[string]any
		for k, item := range t {
			n, changed, err := normalize(item)
			if err != nil {
				return nil, false, err
			}
			if changed && out == nil {
				out = make(map[string]any, len(t))
				for k2, v2 := range t {
					out[k2] = v2
				}
			}
			if out != nil {
				out[k] = n
			}
		}
		if out == nil {
			return t, false, nil
		}
		return out, true, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			n, _, err := normalize(item)
			if err != nil {
				return nil, false, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, true, nil
	}
	n, err := normalizeReflect(reflect.ValueOf(v))
	return n, true, err
}

func normalizeReflect(rv reflect.Value) (any, error) {
	rt := rv.Type()
	if rt.Implements(jsonMarshalerType) || rt.Implements(textMarshalerType) {
		return viaJSON(rv.Interface())
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		n, _, err := normalize(rv.Elem().Interface())
		return n, err
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		if rt.Elem().Kind() == reflect.Uint8 {
			return viaJSON(rv.Interface())
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			n, _, err := normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		if rt.Key().Kind() != reflect.String {
			return viaJSON(rv.Interface())
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			n, _, err := normalize(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = n
		}
		return out, nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Struct:
		return viaJSON(rv.Interface())
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, rt)
}

func viaJSON(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return Decode(data)
}

// Decode parses JSON text into the generic shape, keeping numbers as
// json.Number.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after top-level value")
	}
	return out, nil
}

// Equal reports deep structural equality of two normalized values.
// Numbers compare by value, so 1 equals 1.0.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case Null:
		return true
	case Boolean:
		return a.(bool) == b.(bool)
	case String:
		return a.(string) == b.(string)
	case Number:
		return CompareNumbers(a, b) == 0
	case Array:
		aa, ba := a.([]any), b.([]any)
		if len(aa) != len(ba) {
			return false
		}
		for i := range aa {
			if !Equal(aa[i], ba[i]) {
				return false
			}
		}
		return true
	case Object:
		am, bm := a.(map[string]any), b.(map[string]any)
		if len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// Canonical renders a normalized value as compact JSON with sorted object
// keys and canonical numbers. Two values are Equal exactly when their
// canonical forms match.
func Canonical(v any) string {
	var b strings.Builder
	writeCanonical(&b, v)
	return b.String()
}

func writeCanonical(b *strings.Builder, v any) {
	switch KindOf(v) {
	case Null:
		b.WriteString("null")
	case Boolean:
		b.WriteString(strconv.FormatBool(v.(bool)))
	case String:
		b.WriteString(strconv.Quote(v.(string)))
	case Number:
		b.WriteString(FormatNumber(v))
	case Array:
		b.WriteByte('[')
		for i, item := range v.([]any) {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, item)
		}
		b.WriteByte(']')
	case Object:
		m := v.(map[string]any)
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			writeCanonical(b, m[k])
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "%#v", v)
	}
}
