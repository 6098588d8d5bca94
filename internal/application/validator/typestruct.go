package validator

import "nodedex/internal/domain"

// ValueShape is the JSON-level shape a property value is expected to take.
type ValueShape string

const (
	ShapeString  ValueShape = "string"
	ShapeNumber  ValueShape = "number"
	ShapeBoolean ValueShape = "boolean"
	ShapeObject  ValueShape = "object"
	ShapeArray   ValueShape = "array"
	ShapeAny     ValueShape = "any"
)

// TypeStructure describes the runtime shape contract for one property type:
// the top-level shape, sub-fields that must be present for composite types,
// whether keys beyond the declared ones are tolerated, and the wording used
// in mismatch messages.
type TypeStructure struct {
	Shape            ValueShape
	RequiredFields   []string
	OpenKeys         bool
	AllowExpressions bool
	Describe         string
}

var complexTypes = map[domain.PropType]struct{}{
	domain.TypeCollection:           {},
	domain.TypeFixedCollection:      {},
	domain.TypeResourceLocator:      {},
	domain.TypeFilter:               {},
	domain.TypeResourceMapper:       {},
	domain.TypeAssignmentCollection: {},
	domain.TypeWorkflowSelector:     {},
}

var typeStructures = map[domain.PropType]TypeStructure{
	domain.TypeString: {
		Shape: ShapeString, AllowExpressions: true,
		Describe: "a plain string",
	},
	domain.TypeNumber: {
		Shape: ShapeNumber, AllowExpressions: true,
		Describe: "a number",
	},
	domain.TypeBoolean: {
		Shape: ShapeBoolean, AllowExpressions: true,
		Describe: "a boolean",
	},
	domain.TypeOptions: {
		Shape: ShapeAny, AllowExpressions: true,
		Describe: "one of the allowed option values",
	},
	domain.TypeMultiOptions: {
		Shape: ShapeArray, AllowExpressions: true,
		Describe: "an array of allowed option values",
	},
	domain.TypeCollection: {
		Shape: ShapeObject, OpenKeys: true, AllowExpressions: true,
		Describe: "an object of optional fields",
	},
	domain.TypeFixedCollection: {
		Shape: ShapeObject, AllowExpressions: true,
		Describe: "an object keyed by section name",
	},
	domain.TypeResourceLocator: {
		Shape: ShapeObject, RequiredFields: []string{"mode", "value"},
		OpenKeys: true, AllowExpressions: true,
		Describe: "a resource locator object with mode and value",
	},
	domain.TypeFilter: {
		Shape: ShapeObject, RequiredFields: []string{"conditions", "combinator"},
		OpenKeys: true, AllowExpressions: false,
		Describe: "a filter object with conditions and a combinator",
	},
	domain.TypeResourceMapper: {
		Shape: ShapeObject, RequiredFields: []string{"mappingMode"},
		OpenKeys: true, AllowExpressions: false,
		Describe: "a column mapping object",
	},
	domain.TypeAssignmentCollection: {
		Shape: ShapeObject, RequiredFields: []string{"assignments"},
		OpenKeys: true, AllowExpressions: false,
		Describe: "an assignments object",
	},
	domain.TypeJSON: {
		Shape: ShapeString, AllowExpressions: true,
		Describe: "a JSON-encoded string",
	},
	domain.TypeDateTime: {
		Shape: ShapeString, AllowExpressions: true,
		Describe: "a date string",
	},
	domain.TypeColor: {
		Shape: ShapeString, AllowExpressions: true,
		Describe: "a hex color string",
	},
	domain.TypeHidden: {
		Shape: ShapeAny, AllowExpressions: true,
		Describe: "an internal value",
	},
	domain.TypeNotice: {
		Shape: ShapeAny,
		Describe: "a display-only notice",
	},
	domain.TypeCredentialsSelect: {
		Shape: ShapeString,
		Describe: "a credential type identifier",
	},
	domain.TypeCurlImport: {
		Shape: ShapeString,
		Describe: "a curl command string",
	},
	domain.TypeWorkflowSelector: {
		Shape: ShapeObject, RequiredFields: []string{"value"},
		OpenKeys: true, AllowExpressions: true,
		Describe: "a workflow reference object",
	},
	domain.TypeButton: {
		Shape: ShapeAny,
		Describe: "a display-only button",
	},
	domain.TypeCallout: {
		Shape: ShapeAny,
		Describe: "a display-only callout",
	},
}

// GetStructure returns the shape contract for a property type. Unknown types
// report ok=false and are skipped by shape validation.
func GetStructure(t domain.PropType) (TypeStructure, bool) {
	s, ok := typeStructures[t]
	return s, ok
}

// IsComplexType reports whether values of this type are composite objects
// with their own structural validator.
func IsComplexType(t domain.PropType) bool {
	_, ok := complexTypes[t]
	return ok
}

// IsPrimitiveType reports whether this is a known scalar-shaped type.
// Unknown extension types are neither primitive nor complex.
func IsPrimitiveType(t domain.PropType) bool {
	return t.Known() && !IsComplexType(t)
}
