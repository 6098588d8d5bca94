package domain

import (
	"encoding/json"
	"testing"
)

func TestPropTypeKnown(t *testing.T) {
	for pt := range knownPropTypes {
		if !pt.Known() {
			t.Errorf("expected %s to be known", pt)
		}
	}
	if PropType("customUpstreamType").Known() {
		t.Error("expected unknown type to report Known false")
	}
}

func TestConditionMatchesLiteral(t *testing.T) {
	cond := LiteralCondition(StringValue("message"))

	if !cond.Matches(StringValue("message"), true) {
		t.Error("expected matching literal to pass")
	}
	if cond.Matches(StringValue("channel"), true) {
		t.Error("expected different value to fail")
	}
	if cond.Matches(StringValue("message"), false) {
		t.Error("expected absent value to fail a literal condition")
	}
}

func TestConditionMatchesComparators(t *testing.T) {
	cases := []struct {
		name    string
		cond    Condition
		current Value
		present bool
		want    bool
	}{
		{"eq match", ComparatorCondition(CmpEq, NumberValue(2)), NumberValue(2), true, true},
		{"eq mismatch", ComparatorCondition(CmpEq, NumberValue(2)), NumberValue(3), true, false},
		{"not match", ComparatorCondition(CmpNot, StringValue("none")), StringValue("basic"), true, true},
		{"not mismatch", ComparatorCondition(CmpNot, StringValue("none")), StringValue("none"), true, false},
		{"gt", ComparatorCondition(CmpGt, NumberValue(1)), NumberValue(1.5), true, true},
		{"gt equal fails", ComparatorCondition(CmpGt, NumberValue(1)), NumberValue(1), true, false},
		{"gte equal", ComparatorCondition(CmpGte, NumberValue(1.1)), NumberValue(1.1), true, true},
		{"lt", ComparatorCondition(CmpLt, NumberValue(3)), NumberValue(2), true, true},
		{"lte", ComparatorCondition(CmpLte, NumberValue(3)), NumberValue(3), true, true},
		{"numeric against version string", ComparatorCondition(CmpGte, NumberValue(2)), StringValue("2.1"), true, true},
		{"numeric against text", ComparatorCondition(CmpGte, NumberValue(2)), StringValue("latest"), true, false},
		{"numeric absent", ComparatorCondition(CmpGte, NumberValue(2)), Value{}, false, false},
		{"between low bound", BetweenCondition(NumberValue(1), NumberValue(2)), NumberValue(1), true, true},
		{"between high bound", BetweenCondition(NumberValue(1), NumberValue(2)), NumberValue(2), true, true},
		{"between outside", BetweenCondition(NumberValue(1), NumberValue(2)), NumberValue(2.5), true, false},
		{"exists true present", ComparatorCondition(CmpExists, BoolValue(true)), StringValue("x"), true, true},
		{"exists true absent", ComparatorCondition(CmpExists, BoolValue(true)), Value{}, false, false},
		{"exists false absent", ComparatorCondition(CmpExists, BoolValue(false)), Value{}, false, true},
		{"exists false present", ComparatorCondition(CmpExists, BoolValue(false)), StringValue("x"), true, false},
		{"startsWith", ComparatorCondition(CmpStartsWith, StringValue("http")), StringValue("https://x"), true, true},
		{"startsWith mismatch", ComparatorCondition(CmpStartsWith, StringValue("http")), StringValue("ftp://x"), true, false},
		{"endsWith", ComparatorCondition(CmpEndsWith, StringValue(".json")), StringValue("data.json"), true, true},
		{"includes", ComparatorCondition(CmpIncludes, StringValue("auth")), StringValue("oauth2"), true, true},
		{"string comparator on number", ComparatorCondition(CmpIncludes, StringValue("auth")), NumberValue(1), true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cond.Matches(tc.current, tc.present); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestConditionJSON(t *testing.T) {
	t.Run("scalar literal round trip", func(t *testing.T) {
		var c Condition
		if err := json.Unmarshal([]byte(`"manual"`), &c); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		lit, ok := c.Literal()
		if !ok {
			t.Fatal("expected literal condition")
		}
		if s, _ := lit.AsString(); s != "manual" {
			t.Errorf("expected manual, got %q", s)
		}

		raw, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(raw) != `"manual"` {
			t.Errorf("expected \"manual\", got %s", string(raw))
		}
	})

	t.Run("comparator round trip", func(t *testing.T) {
		var c Condition
		if err := json.Unmarshal([]byte(`{"_cnd":{"gte":1.1}}`), &c); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		cmp, ok := c.Comparator()
		if !ok {
			t.Fatal("expected comparator condition")
		}
		if cmp.Op != CmpGte {
			t.Errorf("expected gte, got %s", cmp.Op)
		}
		if f, _ := cmp.Operand.AsNumber(); f != 1.1 {
			t.Errorf("expected operand 1.1, got %v", f)
		}

		raw, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(raw) != `{"_cnd":{"gte":1.1}}` {
			t.Errorf("unexpected serialization: %s", string(raw))
		}
	})

	t.Run("between round trip", func(t *testing.T) {
		var c Condition
		if err := json.Unmarshal([]byte(`{"_cnd":{"between":{"from":1,"to":2}}}`), &c); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		cmp, ok := c.Comparator()
		if !ok || cmp.Op != CmpBetween {
			t.Fatalf("expected between comparator, got %+v (ok=%v)", cmp, ok)
		}
		if lo, _ := cmp.Operand.AsNumber(); lo != 1 {
			t.Errorf("expected from 1, got %v", lo)
		}
		if hi, _ := cmp.Upper.AsNumber(); hi != 2 {
			t.Errorf("expected to 2, got %v", hi)
		}

		raw, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(raw) != `{"_cnd":{"between":{"from":1,"to":2}}}` {
			t.Errorf("unexpected serialization: %s", string(raw))
		}
	})

	t.Run("plain object is a literal", func(t *testing.T) {
		var c Condition
		if err := json.Unmarshal([]byte(`{"mode":"list"}`), &c); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		lit, ok := c.Literal()
		if !ok {
			t.Fatal("expected object without _cnd to parse as a literal")
		}
		if lit.Kind() != KindMap {
			t.Errorf("expected map literal, got %s", lit.Kind())
		}
	})

	t.Run("multiple operators rejected", func(t *testing.T) {
		var c Condition
		err := json.Unmarshal([]byte(`{"_cnd":{"gte":1,"lt":2}}`), &c)
		if err == nil {
			t.Fatal("expected error for two operators")
		}
	})

	t.Run("unknown operator rejected", func(t *testing.T) {
		var c Condition
		err := json.Unmarshal([]byte(`{"_cnd":{"almost":1}}`), &c)
		if err == nil {
			t.Fatal("expected error for unknown operator")
		}
	})
}

func TestConditionListJSON(t *testing.T) {
	t.Run("scalar becomes single element list", func(t *testing.T) {
		var l ConditionList
		if err := json.Unmarshal([]byte(`"message"`), &l); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if len(l) != 1 {
			t.Fatalf("expected 1 condition, got %d", len(l))
		}
		if !l[0].Matches(StringValue("message"), true) {
			t.Error("expected parsed condition to match its literal")
		}
	})

	t.Run("list stays a list", func(t *testing.T) {
		var l ConditionList
		if err := json.Unmarshal([]byte(`["create","update"]`), &l); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if len(l) != 2 {
			t.Fatalf("expected 2 conditions, got %d", len(l))
		}
	})

	t.Run("marshal is always the list form", func(t *testing.T) {
		l := ConditionList{LiteralCondition(StringValue("create"))}
		raw, err := json.Marshal(l)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(raw) != `["create"]` {
			t.Errorf("expected [\"create\"], got %s", string(raw))
		}
	})
}
