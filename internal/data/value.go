// Package data models the caller-supplied payload as a tagged variant and
// resolves access paths against it.
package data

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind is the variant tag of a Value.
type Kind uint8

const (
	// Absent marks a value that could not be found. It is the zero Value.
	Absent Kind = iota
	Null
	String
	Number
	Bool
	Time
	Sequence
	Mapping
)

var kindNames = [...]string{
	Absent:   "absent",
	Null:     "null",
	String:   "string",
	Number:   "number",
	Bool:     "bool",
	Time:     "time",
	Sequence: "sequence",
	Mapping:  "mapping",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an immutable node of the data context.
type Value struct {
	kind  Kind
	str   string
	num   float64
	i64   int64
	isInt bool
	b     bool
	t     time.Time
	seq   []Value
	m     map[string]Value
}

// AbsentValue is returned by lookups that find nothing.
var AbsentValue = Value{}

// NullValue is an explicit nil.
var NullValue = Value{kind: Null}

func StringValue(s string) Value { return Value{kind: String, str: s} }

func FloatValue(f float64) Value { return Value{kind: Number, num: f} }

func IntValue(i int64) Value { return Value{kind: Number, num: float64(i), i64: i, isInt: true} }

func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

func TimeValue(t time.Time) Value { return Value{kind: Time, t: t} }

// SequenceValue builds a sequence. The slice is owned by the Value afterwards.
func SequenceValue(items ...Value) Value { return Value{kind: Sequence, seq: items} }

// MappingValue builds a mapping. The map is owned by the Value afterwards.
func MappingValue(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: Mapping, m: m}
}

func (v Value) Kind() Kind { return v.kind }

// IsBlank reports whether v carries no data (absent or null).
func (v Value) IsBlank() bool { return v.kind == Absent || v.kind == Null }

// IsScalar reports whether v is a string, number, bool or time.
func (v Value) IsScalar() bool {
	switch v.kind {
	case String, Number, Bool, Time:
		return true
	}
	return false
}

// Len returns the number of elements of a sequence or entries of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case Sequence:
		return len(v.seq)
	case Mapping:
		return len(v.m)
	}
	return 0
}

// Index returns the i-th element of a sequence, or Absent.
func (v Value) Index(i int) Value {
	if v.kind != Sequence || i < 0 || i >= len(v.seq) {
		return AbsentValue
	}
	return v.seq[i]
}

// Key returns the entry stored under k in a mapping, or Absent.
func (v Value) Key(k string) Value {
	if v.kind != Mapping {
		return AbsentValue
	}
	if e, ok := v.m[k]; ok {
		return e
	}
	return AbsentValue
}

// Keys returns the mapping keys in sorted order.
func (v Value) Keys() []string {
	if v.kind != Mapping {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Str returns the string payload of a String value.
func (v Value) Str() (string, bool) { return v.str, v.kind == String }

// Float returns the numeric payload. Numeric strings are parsed.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case Number:
		return v.num, true
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Time returns the payload of a Time value.
func (v Value) Time() (time.Time, bool) { return v.t, v.kind == Time }

// Native returns the scalar as a plain Go value (string, int64, float64,
// bool or time.Time). Blank and composite values yield nil.
func (v Value) Native() any {
	switch v.kind {
	case String:
		return v.str
	case Number:
		if v.isInt {
			return v.i64
		}
		return v.num
	case Bool:
		return v.b
	case Time:
		return v.t
	}
	return nil
}

// Text renders a scalar as text. Blank and composite values render empty.
func (v Value) Text() string {
	switch v.kind {
	case String:
		return v.str
	case Number:
		if v.isInt {
			return strconv.FormatInt(v.i64, 10)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case Bool:
		return strconv.FormatBool(v.b)
	case Time:
		return v.t.Format(time.RFC3339)
	}
	return ""
}

func (v Value) String() string {
	switch v.kind {
	case Absent, Null:
		return "<" + v.kind.String() + ">"
	case Sequence:
		parts := make([]string, len(v.seq))
		for i, e := range v.seq {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case Mapping:
		keys := v.Keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ":" + v.m[k].String()
		}
		return "map[" + strings.Join(parts, " ") + "]"
	}
	return v.Text()
}

var (
	timeType          = reflect.TypeOf(time.Time{})
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// From converts an arbitrary Go value into a Value. Maps, slices, structs
// and pointers are walked recursively; the input is never modified.
func From(x any) Value {
	switch t := x.(type) {
	case nil:
		return NullValue
	case Value:
		return t
	case string:
		return StringValue(t)
	case []byte:
		return StringValue(string(t))
	case bool:
		return BoolValue(t)
	case float64:
		return FloatValue(t)
	case float32:
		return FloatValue(float64(t))
	case int:
		return IntValue(int64(t))
	case int64:
		return IntValue(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return IntValue(i)
		}
		if f, err := t.Float64(); err == nil {
			return FloatValue(f)
		}
		return StringValue(t.String())
	case time.Time:
		return TimeValue(t)
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			m[k] = From(e)
		}
		return MappingValue(m)
	case []any:
		seq := make([]Value, len(t))
		for i, e := range t {
			seq[i] = From(e)
		}
		return SequenceValue(seq...)
	}
	return fromReflect(reflect.ValueOf(x))
}

func fromReflect(rv reflect.Value) Value {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return NullValue
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return NullValue
	}
	if rv.Type() == timeType {
		return TimeValue(rv.Interface().(time.Time))
	}

	switch rv.Kind() {
	case reflect.String:
		return StringValue(rv.String())
	case reflect.Bool:
		return BoolValue(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntValue(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return IntValue(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return FloatValue(rv.Float())
	case reflect.Slice:
		if rv.IsNil() {
			return NullValue
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return StringValue(string(rv.Bytes()))
		}
		fallthrough
	case reflect.Array:
		seq := make([]Value, rv.Len())
		for i := range seq {
			seq[i] = fromReflect(rv.Index(i))
		}
		return SequenceValue(seq...)
	case reflect.Map:
		if rv.IsNil() {
			return NullValue
		}
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[mapKey(iter.Key())] = fromReflect(iter.Value())
		}
		return MappingValue(m)
	case reflect.Struct:
		return fromStruct(rv)
	}

	if rv.CanInterface() {
		return StringValue(fmt.Sprint(rv.Interface()))
	}
	return AbsentValue
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.Type().Implements(textMarshalerType) {
		if b, err := k.Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(k.Interface())
}

func fromStruct(rv reflect.Value) Value {
	rt := rv.Type()
	m := make(map[string]Value, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		tag, tagged := field.Tag.Lookup("json")
		if field.Anonymous && !tagged {
			if embedded := fromReflect(rv.Field(i)); embedded.kind == Mapping {
				for k, e := range embedded.m {
					if _, ok := m[k]; !ok {
						m[k] = e
					}
				}
				continue
			}
		}
		if tagged {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		m[name] = fromReflect(rv.Field(i))
	}
	return MappingValue(m)
}
