package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindList:
		return "array"
	case KindMap:
		return "object"
	}
	return "unknown"
}

// Value is a single configuration value: a closed sum over the JSON kinds
// (null, string, number, boolean, array, object). The zero Value is null.
// Validators switch on Kind() so type checks stay exhaustive instead of
// probing interface{} at runtime.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	obj  *Config
}

// NullValue returns the null value. Equivalent to the zero Value.
func NullValue() Value { return Value{} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue wraps a float64. Integral workflow values (versions, limits)
// are numbers too, matching JSON semantics.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// ListValue wraps a list of values.
func ListValue(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// MapValue wraps a nested configuration object.
func MapValue(cfg *Config) Value {
	if cfg == nil {
		cfg = NewConfig()
	}
	return Value{kind: KindMap, obj: cfg}
}

// Kind reports which variant this value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string payload when the value is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the numeric payload when the value is a number.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsBool returns the boolean payload when the value is a boolean.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsList returns the element slice when the value is a list.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsMap returns the nested object when the value is a map.
func (v Value) AsMap() (*Config, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.obj, true
}

// Equal reports deep equality. Objects compare by key set and per-key value,
// ignoring insertion order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		equal := true
		v.obj.Range(func(key string, val Value) bool {
			o, ok := other.obj.Get(key)
			if !ok || !val.Equal(o) {
				equal = false
				return false
			}
			return true
		})
		return equal
	}
	return false
}

// String renders the value for diagnostics: scalars verbatim, containers as
// compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return v.kind.String()
		}
		return string(raw)
	}
}

// MarshalJSON renders the underlying JSON value.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindMap:
		return v.obj.MarshalJSON()
	}
	return nil, fmt.Errorf("value: unknown kind %d", v.kind)
}

// UnmarshalJSON parses any JSON value. Object key order is preserved.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("value: empty JSON input")
	}
	switch trimmed[0] {
	case 'n':
		*v = NullValue()
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
		return nil
	case '[':
		var items []Value
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*v = Value{kind: KindList, list: items}
		return nil
	case '{':
		cfg := NewConfig()
		if err := cfg.UnmarshalJSON(trimmed); err != nil {
			return err
		}
		*v = MapValue(cfg)
		return nil
	default:
		f, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return fmt.Errorf("value: invalid JSON literal %q", string(trimmed))
		}
		*v = NumberValue(f)
		return nil
	}
}

// UnmarshalYAML parses any YAML value, used by the embedded node catalog.
func (v *Value) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// FromAny converts a dynamically typed value (as produced by encoding/json or
// yaml.v3) into a Value. Map key order is not recoverable from Go maps, so
// keys are sorted for determinism.
func FromAny(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return NullValue()
	case Value:
		return t
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case float64:
		return NumberValue(t)
	case float32:
		return NumberValue(float64(t))
	case int:
		return NumberValue(float64(t))
	case int64:
		return NumberValue(float64(t))
	case uint64:
		return NumberValue(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return StringValue(t.String())
		}
		return NumberValue(f)
	case []any:
		items := make([]Value, 0, len(t))
		for _, el := range t {
			items = append(items, FromAny(el))
		}
		return Value{kind: KindList, list: items}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		cfg := NewConfig()
		for _, k := range keys {
			cfg.Set(k, FromAny(t[k]))
		}
		return MapValue(cfg)
	default:
		return StringValue(fmt.Sprint(t))
	}
}

// IsExpression reports whether a string value uses the workflow expression
// syntax. Expressions are resolved by the engine at run time, so their
// eventual type is unknowable here and type checks must let them through.
func IsExpression(s string) bool {
	if strings.HasPrefix(s, "=") {
		return true
	}
	return strings.Contains(s, "{{") && strings.Contains(s, "}}")
}
