package domain

import (
	"encoding/json"
	"testing"
)

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{KindNull, "null"},
		{KindString, "string"},
		{KindNumber, "number"},
		{KindBool, "boolean"},
		{KindList, "array"},
		{KindMap, "object"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("expected %s, got %s", tc.want, got)
		}
	}
}

func TestValueAccessors(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		v := NullValue()
		if !v.IsNull() {
			t.Error("expected IsNull to be true")
		}
		if _, ok := v.AsString(); ok {
			t.Error("expected AsString to fail on null")
		}
	})

	t.Run("string", func(t *testing.T) {
		v := StringValue("hello")
		s, ok := v.AsString()
		if !ok || s != "hello" {
			t.Errorf("expected hello, got %q (ok=%v)", s, ok)
		}
		if _, ok := v.AsNumber(); ok {
			t.Error("expected AsNumber to fail on string")
		}
	})

	t.Run("number", func(t *testing.T) {
		v := NumberValue(4.2)
		f, ok := v.AsNumber()
		if !ok || f != 4.2 {
			t.Errorf("expected 4.2, got %v (ok=%v)", f, ok)
		}
	})

	t.Run("bool", func(t *testing.T) {
		v := BoolValue(true)
		b, ok := v.AsBool()
		if !ok || !b {
			t.Errorf("expected true, got %v (ok=%v)", b, ok)
		}
	})

	t.Run("list", func(t *testing.T) {
		v := ListValue(StringValue("a"), NumberValue(1))
		items, ok := v.AsList()
		if !ok || len(items) != 2 {
			t.Fatalf("expected 2 items, got %d (ok=%v)", len(items), ok)
		}
		if items[0].Kind() != KindString || items[1].Kind() != KindNumber {
			t.Errorf("unexpected item kinds: %s, %s", items[0].Kind(), items[1].Kind())
		}
	})

	t.Run("map defaults to empty config", func(t *testing.T) {
		v := MapValue(nil)
		cfg, ok := v.AsMap()
		if !ok {
			t.Fatal("expected AsMap to succeed")
		}
		if cfg.Len() != 0 {
			t.Errorf("expected empty config, got %d entries", cfg.Len())
		}
	})
}

func TestValueEqual(t *testing.T) {
	t.Run("scalars", func(t *testing.T) {
		if !StringValue("x").Equal(StringValue("x")) {
			t.Error("expected equal strings to match")
		}
		if NumberValue(1).Equal(StringValue("1")) {
			t.Error("expected number and string to differ")
		}
		if BoolValue(true).Equal(BoolValue(false)) {
			t.Error("expected true and false to differ")
		}
	})

	t.Run("lists", func(t *testing.T) {
		a := ListValue(NumberValue(1), NumberValue(2))
		b := ListValue(NumberValue(1), NumberValue(2))
		if !a.Equal(b) {
			t.Error("expected identical lists to match")
		}
		if a.Equal(ListValue(NumberValue(1))) {
			t.Error("expected lists of different length to differ")
		}
		if a.Equal(ListValue(NumberValue(1), NumberValue(3))) {
			t.Error("expected lists with different elements to differ")
		}
	})

	t.Run("maps ignore insertion order", func(t *testing.T) {
		a := MapValue(NewConfig().Set("x", NumberValue(1)).Set("y", StringValue("v")))
		b := MapValue(NewConfig().Set("y", StringValue("v")).Set("x", NumberValue(1)))
		if !a.Equal(b) {
			t.Error("expected maps with same entries to match regardless of order")
		}
		c := MapValue(NewConfig().Set("x", NumberValue(2)).Set("y", StringValue("v")))
		if a.Equal(c) {
			t.Error("expected maps with different values to differ")
		}
	})
}

func TestValueString(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"null", NullValue(), "null"},
		{"string verbatim", StringValue("hello world"), "hello world"},
		{"fractional number", NumberValue(4.2), "4.2"},
		{"integral number", NumberValue(3), "3"},
		{"bool", BoolValue(true), "true"},
		{"list as compact JSON", ListValue(StringValue("a"), NumberValue(1)), `["a",1]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.String(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}

	t.Run("map keeps insertion order", func(t *testing.T) {
		v := MapValue(NewConfig().Set("b", NumberValue(1)).Set("a", StringValue("x")))
		want := `{"b":1,"a":"x"}`
		if got := v.String(); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})
}

func TestValueMarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"null", NullValue(), "null"},
		{"string", StringValue("hi"), `"hi"`},
		{"empty list", ListValue(), "[]"},
		{"empty map", MapValue(nil), "{}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.v)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(raw) != tc.want {
				t.Errorf("expected %s, got %s", tc.want, string(raw))
			}
		})
	}
}

func TestValueUnmarshalJSON(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		var v Value
		if err := json.Unmarshal([]byte("null"), &v); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if !v.IsNull() {
			t.Error("expected null value")
		}
	})

	t.Run("string", func(t *testing.T) {
		var v Value
		if err := json.Unmarshal([]byte(`"abc"`), &v); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if s, _ := v.AsString(); s != "abc" {
			t.Errorf("expected abc, got %q", s)
		}
	})

	t.Run("bool", func(t *testing.T) {
		var v Value
		if err := json.Unmarshal([]byte("false"), &v); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if b, ok := v.AsBool(); !ok || b {
			t.Errorf("expected false, got %v (ok=%v)", b, ok)
		}
	})

	t.Run("number", func(t *testing.T) {
		var v Value
		if err := json.Unmarshal([]byte("4.25"), &v); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if f, _ := v.AsNumber(); f != 4.25 {
			t.Errorf("expected 4.25, got %v", f)
		}
	})

	t.Run("list", func(t *testing.T) {
		var v Value
		if err := json.Unmarshal([]byte(`[1,"two",true]`), &v); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		items, ok := v.AsList()
		if !ok || len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
		if items[1].String() != "two" {
			t.Errorf("expected two, got %s", items[1])
		}
	})

	t.Run("object preserves key order", func(t *testing.T) {
		var v Value
		if err := json.Unmarshal([]byte(`{"b":1,"a":2}`), &v); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		cfg, ok := v.AsMap()
		if !ok {
			t.Fatal("expected map value")
		}
		keys := cfg.Keys()
		if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
			t.Errorf("expected keys [b a], got %v", keys)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		var v Value
		err := v.UnmarshalJSON([]byte("  "))
		if err == nil {
			t.Fatal("expected error for empty input")
		}
		if err.Error() != "value: empty JSON input" {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("invalid literal", func(t *testing.T) {
		var v Value
		err := v.UnmarshalJSON([]byte("bogus"))
		if err == nil {
			t.Fatal("expected error for invalid literal")
		}
		if err.Error() != `value: invalid JSON literal "bogus"` {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestFromAny(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, NullValue()},
		{"value passthrough", NumberValue(2), NumberValue(2)},
		{"string", "s", StringValue("s")},
		{"bool", true, BoolValue(true)},
		{"float64", 3.5, NumberValue(3.5)},
		{"float32", float32(2), NumberValue(2)},
		{"int", 7, NumberValue(7)},
		{"int64", int64(8), NumberValue(8)},
		{"uint64", uint64(9), NumberValue(9)},
		{"json number", json.Number("12.5"), NumberValue(12.5)},
		{"malformed json number", json.Number("not-a-number"), StringValue("not-a-number")},
		{"slice", []any{1, "a"}, ListValue(NumberValue(1), StringValue("a"))},
		{"fallback to Sprint", []string{"a"}, StringValue("[a]")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromAny(tc.in)
			if !got.Equal(tc.want) {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}

	t.Run("map keys are sorted", func(t *testing.T) {
		got := FromAny(map[string]any{"b": 1, "a": 2})
		cfg, ok := got.AsMap()
		if !ok {
			t.Fatal("expected map value")
		}
		keys := cfg.Keys()
		if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
			t.Errorf("expected keys [a b], got %v", keys)
		}
	})
}

func TestIsExpression(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"=$json.field", true},
		{"prefix {{ $json.name }} suffix", true},
		{"{{unclosed", false},
		{"plain text", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsExpression(tc.in); got != tc.want {
			t.Errorf("IsExpression(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
