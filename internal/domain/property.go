package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PropType is the declared type of a node property. The set is closed from
// the validator's point of view: anything outside the known constants is an
// extension type and must degrade to "opaque, assumed valid".
type PropType string

const (
	TypeString               PropType = "string"
	TypeNumber               PropType = "number"
	TypeBoolean              PropType = "boolean"
	TypeOptions              PropType = "options"
	TypeMultiOptions         PropType = "multiOptions"
	TypeCollection           PropType = "collection"
	TypeFixedCollection      PropType = "fixedCollection"
	TypeResourceLocator      PropType = "resourceLocator"
	TypeFilter               PropType = "filter"
	TypeResourceMapper       PropType = "resourceMapper"
	TypeAssignmentCollection PropType = "assignmentCollection"
	TypeJSON                 PropType = "json"
	TypeDateTime             PropType = "dateTime"
	TypeColor                PropType = "color"
	TypeHidden               PropType = "hidden"
	TypeNotice               PropType = "notice"
	TypeCredentialsSelect    PropType = "credentialsSelect"
	TypeCurlImport           PropType = "curlImport"
	TypeWorkflowSelector     PropType = "workflowSelector"
	TypeButton               PropType = "button"
	TypeCallout              PropType = "callout"
)

var knownPropTypes = map[PropType]struct{}{
	TypeString: {}, TypeNumber: {}, TypeBoolean: {}, TypeOptions: {},
	TypeMultiOptions: {}, TypeCollection: {}, TypeFixedCollection: {},
	TypeResourceLocator: {}, TypeFilter: {}, TypeResourceMapper: {},
	TypeAssignmentCollection: {}, TypeJSON: {}, TypeDateTime: {},
	TypeColor: {}, TypeHidden: {}, TypeNotice: {}, TypeCredentialsSelect: {},
	TypeCurlImport: {}, TypeWorkflowSelector: {}, TypeButton: {}, TypeCallout: {},
}

// Known reports whether the type is one of the closed constants. Unknown
// types are extension types contributed by upstream packages.
func (t PropType) Known() bool {
	_, ok := knownPropTypes[t]
	return ok
}

// NodeProperty is one configurable field of a node. Within a node version the
// property set is immutable; slice order is UI order.
type NodeProperty struct {
	Name        string   `json:"name" yaml:"name"`
	DisplayName string   `json:"displayName" yaml:"displayName"`
	Type        PropType `json:"type" yaml:"type"`
	Default     Value    `json:"default,omitempty" yaml:"default,omitempty"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	// Options holds the selectable values for options/multiOptions.
	Options []Choice `json:"options,omitempty" yaml:"options,omitempty"`

	// Properties holds the nested parameters of a collection.
	Properties []NodeProperty `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Sections holds the named groups of a fixedCollection.
	Sections []PropertySection `json:"sections,omitempty" yaml:"sections,omitempty"`

	// Display gates visibility on other property values. Nil means always
	// visible.
	Display *DisplayOptions `json:"displayOptions,omitempty" yaml:"displayOptions,omitempty"`

	// MultipleValues marks collections/fixedCollections that accept repeated
	// entries.
	MultipleValues bool `json:"multipleValues,omitempty" yaml:"multipleValues,omitempty"`

	// Internal marks plumbing fields excluded from the essentials view.
	Internal bool `json:"internal,omitempty" yaml:"internal,omitempty"`

	// Meta carries upstream metadata the validator does not interpret.
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Choice is one selectable value of an enum-like property.
type Choice struct {
	Name        string `json:"name" yaml:"name"`
	Value       Value  `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PropertySection is one named group inside a fixedCollection.
type PropertySection struct {
	Name           string         `json:"name" yaml:"name"`
	DisplayName    string         `json:"displayName" yaml:"displayName"`
	Values         []NodeProperty `json:"values" yaml:"values"`
	MultipleValues bool           `json:"multipleValues,omitempty" yaml:"multipleValues,omitempty"`
}

// DisplayOptions is a conditional-visibility predicate over the in-progress
// configuration. All show conditions must hold (AND); any hide condition
// hides the property regardless of show.
type DisplayOptions struct {
	Show map[string]ConditionList `json:"show,omitempty" yaml:"show,omitempty"`
	Hide map[string]ConditionList `json:"hide,omitempty" yaml:"hide,omitempty"`
}

// ConditionList is the accepted-values side of one show/hide entry. A scalar
// in the source serialization is treated as a single-element list.
type ConditionList []Condition

// Condition is either a literal accepted value or a comparator object
// (the `_cnd` form), e.g. {"_cnd": {"gte": 1.1}}.
type Condition struct {
	lit Value
	cmp *Comparator
}

// CmpOp names a comparator operator.
type CmpOp string

const (
	CmpEq         CmpOp = "eq"
	CmpNot        CmpOp = "not"
	CmpGt         CmpOp = "gt"
	CmpGte        CmpOp = "gte"
	CmpLt         CmpOp = "lt"
	CmpLte        CmpOp = "lte"
	CmpBetween    CmpOp = "between"
	CmpExists     CmpOp = "exists"
	CmpStartsWith CmpOp = "startsWith"
	CmpEndsWith   CmpOp = "endsWith"
	CmpIncludes   CmpOp = "includes"
)

// Comparator is the payload of a `_cnd` condition.
type Comparator struct {
	Op      CmpOp
	Operand Value
	// Upper is the high bound of a between comparator.
	Upper Value
}

// LiteralCondition builds an exact-match condition.
func LiteralCondition(v Value) Condition { return Condition{lit: v} }

// ComparatorCondition builds a `_cnd` condition.
func ComparatorCondition(op CmpOp, operand Value) Condition {
	return Condition{cmp: &Comparator{Op: op, Operand: operand}}
}

// BetweenCondition builds a between comparator with inclusive bounds.
func BetweenCondition(from, to Value) Condition {
	return Condition{cmp: &Comparator{Op: CmpBetween, Operand: from, Upper: to}}
}

// Literal returns the literal payload for plain conditions.
func (c Condition) Literal() (Value, bool) {
	if c.cmp != nil {
		return Value{}, false
	}
	return c.lit, true
}

// Comparator returns the comparator payload for `_cnd` conditions.
func (c Condition) Comparator() (*Comparator, bool) {
	return c.cmp, c.cmp != nil
}

// Matches reports whether the condition accepts the given configuration
// value. present is false when the key is absent from the configuration;
// absent values satisfy nothing except an exists=false comparator.
func (c Condition) Matches(current Value, present bool) bool {
	if c.cmp == nil {
		return present && c.lit.Equal(current)
	}
	cmp := c.cmp
	if cmp.Op == CmpExists {
		want, _ := cmp.Operand.AsBool()
		return present == want
	}
	if !present {
		return false
	}
	switch cmp.Op {
	case CmpEq:
		return cmp.Operand.Equal(current)
	case CmpNot:
		return !cmp.Operand.Equal(current)
	case CmpGt, CmpGte, CmpLt, CmpLte:
		have, ok1 := numericValue(current)
		want, ok2 := numericValue(cmp.Operand)
		if !ok1 || !ok2 {
			return false
		}
		switch cmp.Op {
		case CmpGt:
			return have > want
		case CmpGte:
			return have >= want
		case CmpLt:
			return have < want
		default:
			return have <= want
		}
	case CmpBetween:
		have, ok := numericValue(current)
		lo, okLo := numericValue(cmp.Operand)
		hi, okHi := numericValue(cmp.Upper)
		return ok && okLo && okHi && have >= lo && have <= hi
	case CmpStartsWith:
		s, ok1 := current.AsString()
		p, ok2 := cmp.Operand.AsString()
		return ok1 && ok2 && strings.HasPrefix(s, p)
	case CmpEndsWith:
		s, ok1 := current.AsString()
		p, ok2 := cmp.Operand.AsString()
		return ok1 && ok2 && strings.HasSuffix(s, p)
	case CmpIncludes:
		s, ok1 := current.AsString()
		p, ok2 := cmp.Operand.AsString()
		return ok1 && ok2 && strings.Contains(s, p)
	}
	return false
}

// numericValue widens a value to float64 for comparison. Version strings
// like "2.1" are accepted because upstream definitions are inconsistent
// about quoting versions.
func numericValue(v Value) (float64, bool) {
	if f, ok := v.AsNumber(); ok {
		return f, true
	}
	if s, ok := v.AsString(); ok {
		var f float64
		if _, err := fmt.Sscanf(s, "%g", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

type cndEnvelope struct {
	Cnd map[string]json.RawMessage `json:"_cnd"`
}

// MarshalJSON renders the canonical serialized form: the literal itself, or
// a single-operator `_cnd` object.
func (c Condition) MarshalJSON() ([]byte, error) {
	if c.cmp == nil {
		return json.Marshal(c.lit)
	}
	var payload any
	if c.cmp.Op == CmpBetween {
		payload = map[string]any{"from": c.cmp.Operand, "to": c.cmp.Upper}
	} else {
		payload = c.cmp.Operand
	}
	return json.Marshal(map[string]any{"_cnd": map[string]any{string(c.cmp.Op): payload}})
}

// UnmarshalJSON parses a literal or a `_cnd` comparator object.
func (c *Condition) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env cndEnvelope
		if err := json.Unmarshal(trimmed, &env); err == nil && env.Cnd != nil {
			return c.fromComparatorMap(env.Cnd)
		}
	}
	var v Value
	if err := v.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	*c = Condition{lit: v}
	return nil
}

// UnmarshalYAML parses the same scalar-or-`_cnd` shape from catalog specs.
func (c *Condition) UnmarshalYAML(unmarshal func(any) error) error {
	var probe map[string]map[string]any
	if err := unmarshal(&probe); err == nil {
		if cnd, ok := probe["_cnd"]; ok {
			raw := make(map[string]json.RawMessage, len(cnd))
			for op, operand := range cnd {
				enc, err := json.Marshal(FromAny(operand))
				if err != nil {
					return err
				}
				raw[op] = enc
			}
			return c.fromComparatorMap(raw)
		}
	}
	var any0 any
	if err := unmarshal(&any0); err != nil {
		return err
	}
	*c = Condition{lit: FromAny(any0)}
	return nil
}

func (c *Condition) fromComparatorMap(cnd map[string]json.RawMessage) error {
	if len(cnd) != 1 {
		return fmt.Errorf("displayOptions: _cnd must hold exactly one operator, got %d", len(cnd))
	}
	for op, rawOperand := range cnd {
		cmp := &Comparator{Op: CmpOp(op)}
		switch cmp.Op {
		case CmpEq, CmpNot, CmpGt, CmpGte, CmpLt, CmpLte, CmpExists,
			CmpStartsWith, CmpEndsWith, CmpIncludes:
			if err := cmp.Operand.UnmarshalJSON(rawOperand); err != nil {
				return err
			}
		case CmpBetween:
			var bounds struct {
				From Value `json:"from"`
				To   Value `json:"to"`
			}
			if err := json.Unmarshal(rawOperand, &bounds); err != nil {
				return err
			}
			cmp.Operand = bounds.From
			cmp.Upper = bounds.To
		default:
			return fmt.Errorf("displayOptions: unknown _cnd operator %q", op)
		}
		*c = Condition{cmp: cmp}
	}
	return nil
}

// MarshalJSON always renders the list form. Scalars are accepted on input
// only; the canonical serialization is a list.
func (l ConditionList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]Condition(l))
}

// UnmarshalJSON accepts a scalar condition or a list of conditions.
func (l *ConditionList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Condition
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var single Condition
	if err := single.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	*l = ConditionList{single}
	return nil
}

// UnmarshalYAML accepts a scalar condition or a sequence of conditions.
func (l *ConditionList) UnmarshalYAML(unmarshal func(any) error) error {
	var items []Condition
	if err := unmarshal(&items); err == nil {
		*l = items
		return nil
	}
	var single Condition
	if err := single.UnmarshalYAML(unmarshal); err != nil {
		return err
	}
	*l = ConditionList{single}
	return nil
}
