package validator

import (
	"fmt"
	"strings"

	"nodedex/internal/domain"
)

// Structural validators for composite property values. Each takes the dotted
// path of the property being checked and returns error-class findings; an
// empty slice means the value is structurally sound.

var filterCombinators = []string{"and", "or"}

var mappingModes = []string{"defineBelow", "autoMapInputData"}

func validateFilter(path string, v domain.Value) []domain.Finding {
	obj, ok := v.AsMap()
	if !ok {
		return []domain.Finding{mismatch(path,
			fmt.Sprintf("%s must be a filter object with conditions and a combinator", path),
			fmt.Sprintf(`Use {"conditions": [...], "combinator": "and"} for %s`, path))}
	}
	var out []domain.Finding
	conds, present := obj.Get("conditions")
	if !present {
		out = append(out, mismatch(path+".conditions",
			fmt.Sprintf("%s is missing the conditions array", path),
			fmt.Sprintf("Add a conditions array to %s", path)))
	} else if list, ok := conds.AsList(); !ok {
		out = append(out, mismatch(path+".conditions",
			fmt.Sprintf("%s.conditions must be an array", path),
			"Wrap the condition in an array"))
	} else {
		for i, c := range list {
			out = append(out, validateFilterCondition(fmt.Sprintf("%s.conditions[%d]", path, i), c)...)
		}
	}
	comb, present := obj.Get("combinator")
	if !present {
		out = append(out, mismatch(path+".combinator",
			fmt.Sprintf("%s is missing the combinator", path),
			fmt.Sprintf(`Set %s.combinator to "and" or "or"`, path)))
	} else if s, ok := comb.AsString(); !ok || !contains(filterCombinators, s) {
		out = append(out, invalid(path+".combinator",
			fmt.Sprintf("%s.combinator must be one of: %s", path, strings.Join(filterCombinators, ", ")),
			fmt.Sprintf(`Set %s.combinator to "and" or "or"`, path)))
	}
	return out
}

func validateFilterCondition(path string, v domain.Value) []domain.Finding {
	obj, ok := v.AsMap()
	if !ok {
		return []domain.Finding{mismatch(path,
			fmt.Sprintf("%s must be a condition object", path),
			`Use {"leftValue": ..., "rightValue": ..., "operator": {"type": "string", "operation": "equals"}}`)}
	}
	var out []domain.Finding
	op, present := obj.Get("operator")
	if !present {
		out = append(out, mismatch(path+".operator",
			fmt.Sprintf("%s is missing its operator", path),
			`Add an operator object such as {"type": "string", "operation": "equals"}`))
		return out
	}
	opObj, ok := op.AsMap()
	if !ok {
		out = append(out, mismatch(path+".operator",
			fmt.Sprintf("%s.operator must be an object with type and operation", path),
			`Use {"type": "string", "operation": "equals"}`))
		return out
	}
	for _, field := range []string{"type", "operation"} {
		fv, present := opObj.Get(field)
		if !present {
			out = append(out, mismatch(path+".operator."+field,
				fmt.Sprintf("%s.operator is missing %s", path, field), ""))
		} else if _, ok := fv.AsString(); !ok {
			out = append(out, mismatch(path+".operator."+field,
				fmt.Sprintf("%s.operator.%s must be a string", path, field), ""))
		}
	}
	return out
}

func validateResourceLocator(path string, v domain.Value) []domain.Finding {
	obj, ok := v.AsMap()
	if !ok {
		return []domain.Finding{mismatch(path,
			fmt.Sprintf("%s must be a resource locator object, not a bare value", path),
			fmt.Sprintf(`Use {"mode": "id", "value": %s} for %s`, v.String(), path))}
	}
	var out []domain.Finding
	mode, present := obj.Get("mode")
	if !present {
		out = append(out, mismatch(path+".mode",
			fmt.Sprintf("%s is missing its mode", path),
			fmt.Sprintf(`Set %s.mode (commonly "id", "url" or "list")`, path)))
	} else if _, ok := mode.AsString(); !ok {
		out = append(out, mismatch(path+".mode",
			fmt.Sprintf("%s.mode must be a string", path), ""))
	}
	if _, present := obj.Get("value"); !present {
		out = append(out, mismatch(path+".value",
			fmt.Sprintf("%s is missing its value", path),
			fmt.Sprintf("Set %s.value to the resource being referenced", path)))
	}
	return out
}

func validateResourceMapper(path string, v domain.Value) []domain.Finding {
	obj, ok := v.AsMap()
	if !ok {
		return []domain.Finding{mismatch(path,
			fmt.Sprintf("%s must be a column mapping object", path),
			fmt.Sprintf(`Use {"mappingMode": "defineBelow", "value": {...}} for %s`, path))}
	}
	var out []domain.Finding
	mode, present := obj.Get("mappingMode")
	modeStr, isStr := mode.AsString()
	switch {
	case !present:
		out = append(out, mismatch(path+".mappingMode",
			fmt.Sprintf("%s is missing mappingMode", path),
			fmt.Sprintf("Set %s.mappingMode to one of: %s", path, strings.Join(mappingModes, ", "))))
	case !isStr || !contains(mappingModes, modeStr):
		out = append(out, invalid(path+".mappingMode",
			fmt.Sprintf("%s.mappingMode must be one of: %s", path, strings.Join(mappingModes, ", ")),
			fmt.Sprintf(`Set %s.mappingMode to "defineBelow"`, path)))
	case modeStr == "defineBelow":
		val, present := obj.Get("value")
		if !present {
			out = append(out, mismatch(path+".value",
				fmt.Sprintf("%s uses defineBelow but has no value object", path),
				fmt.Sprintf("Add %s.value mapping column names to values", path)))
		} else if _, ok := val.AsMap(); !ok {
			out = append(out, mismatch(path+".value",
				fmt.Sprintf("%s.value must be an object of column values", path), ""))
		}
	}
	if cols, present := obj.Get("matchingColumns"); present {
		if _, ok := cols.AsList(); !ok {
			out = append(out, mismatch(path+".matchingColumns",
				fmt.Sprintf("%s.matchingColumns must be an array of column names", path), ""))
		}
	}
	return out
}

func validateAssignmentCollection(path string, v domain.Value) []domain.Finding {
	obj, ok := v.AsMap()
	if !ok {
		return []domain.Finding{mismatch(path,
			fmt.Sprintf("%s must be an assignments object", path),
			fmt.Sprintf(`Use {"assignments": [{"name": ..., "value": ..., "type": "string"}]} for %s`, path))}
	}
	assignments, present := obj.Get("assignments")
	if !present {
		return []domain.Finding{mismatch(path+".assignments",
			fmt.Sprintf("%s is missing the assignments array", path),
			fmt.Sprintf("Add an assignments array to %s", path))}
	}
	list, ok := assignments.AsList()
	if !ok {
		return []domain.Finding{mismatch(path+".assignments",
			fmt.Sprintf("%s.assignments must be an array", path), "")}
	}
	var out []domain.Finding
	for i, a := range list {
		entryPath := fmt.Sprintf("%s.assignments[%d]", path, i)
		entry, ok := a.AsMap()
		if !ok {
			out = append(out, mismatch(entryPath,
				fmt.Sprintf("%s must be an object", entryPath), ""))
			continue
		}
		name, present := entry.Get("name")
		if s, ok := name.AsString(); !present || !ok || s == "" {
			out = append(out, mismatch(entryPath+".name",
				fmt.Sprintf("%s needs a non-empty name", entryPath),
				"Set name to the field being assigned"))
		}
		if _, present := entry.Get("value"); !present {
			out = append(out, mismatch(entryPath+".value",
				fmt.Sprintf("%s is missing its value", entryPath), ""))
		}
	}
	return out
}

func validateWorkflowSelector(path string, v domain.Value) []domain.Finding {
	obj, ok := v.AsMap()
	if !ok {
		return []domain.Finding{mismatch(path,
			fmt.Sprintf("%s must be a workflow reference object", path),
			fmt.Sprintf(`Use {"value": "<workflow id>", "mode": "id"} for %s`, path))}
	}
	if _, present := obj.Get("value"); !present {
		return []domain.Finding{mismatch(path+".value",
			fmt.Sprintf("%s is missing the workflow id under value", path), "")}
	}
	return nil
}

func validateFixedCollection(p domain.NodeProperty, path string, v domain.Value) []domain.Finding {
	obj, ok := v.AsMap()
	if !ok {
		return []domain.Finding{mismatch(path,
			fmt.Sprintf("%s must be an object keyed by section name", path),
			fixedCollectionHint(p, path))}
	}
	var out []domain.Finding
	obj.Range(func(key string, val domain.Value) bool {
		sec, ok := sectionByName(p, key)
		if !ok {
			out = append(out, invalid(path+"."+key,
				fmt.Sprintf("%s has no section named %q", path, key),
				misplacedSectionHint(p, path, key)))
			return true
		}
		secPath := path + "." + key
		if sec.MultipleValues {
			entries, ok := val.AsList()
			if !ok {
				// a single entry object where an array is expected is the
				// most common malformed shape
				if _, isObj := val.AsMap(); isObj {
					out = append(out, mismatch(secPath,
						fmt.Sprintf("%s holds repeated entries and must be an array", secPath),
						fmt.Sprintf("Wrap the entry in an array: {%q: [{...}]}", key)))
				} else {
					out = append(out, mismatch(secPath,
						fmt.Sprintf("%s must be an array of objects", secPath), ""))
				}
				return true
			}
			for i, entry := range entries {
				out = append(out, validateSectionEntry(sec, fmt.Sprintf("%s[%d]", secPath, i), entry)...)
			}
			return true
		}
		out = append(out, validateSectionEntry(sec, secPath, val)...)
		return true
	})
	return out
}

func validateSectionEntry(sec domain.PropertySection, path string, v domain.Value) []domain.Finding {
	entry, ok := v.AsMap()
	if !ok {
		return []domain.Finding{mismatch(path,
			fmt.Sprintf("%s must be an object", path), "")}
	}
	return checkNested(sec.Values, path, entry)
}

func validateCollection(p domain.NodeProperty, path string, v domain.Value) []domain.Finding {
	if p.MultipleValues {
		entries, ok := v.AsList()
		if !ok {
			return []domain.Finding{mismatch(path,
				fmt.Sprintf("%s must be an array of objects", path), "")}
		}
		var out []domain.Finding
		for i, entry := range entries {
			entryPath := fmt.Sprintf("%s[%d]", path, i)
			obj, ok := entry.AsMap()
			if !ok {
				out = append(out, mismatch(entryPath,
					fmt.Sprintf("%s must be an object", entryPath), ""))
				continue
			}
			out = append(out, checkNested(p.Properties, entryPath, obj)...)
		}
		return out
	}
	obj, ok := v.AsMap()
	if !ok {
		return []domain.Finding{mismatch(path,
			fmt.Sprintf("%s must be an object of optional fields", path),
			fmt.Sprintf(`Use {"fieldName": value} for %s`, path))}
	}
	return checkNested(p.Properties, path, obj)
}

// checkNested validates the declared sub-properties of a composite value:
// required presence, then shape checks for the entries actually present.
// Visibility of nested properties is evaluated against the entry itself, so
// sibling-gated fields behave the same as top-level ones.
func checkNested(props []domain.NodeProperty, path string, entry *domain.Config) []domain.Finding {
	var out []domain.Finding
	for _, np := range props {
		if !IsVisible(np, entry) {
			continue
		}
		nested := path + "." + np.Name
		val, present := entry.Get(np.Name)
		if !present {
			if np.Required {
				out = append(out, domain.Finding{
					Type:     domain.FindingRequired,
					Property: nested,
					Message:  fmt.Sprintf("%s is required", nested),
					Fix:      fmt.Sprintf("Provide a value for %q", np.Name),
				})
			}
			continue
		}
		out = append(out, checkShape(np, nested, val)...)
	}
	return out
}

func sectionByName(p domain.NodeProperty, name string) (domain.PropertySection, bool) {
	for _, s := range p.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return domain.PropertySection{}, false
}

func fixedCollectionHint(p domain.NodeProperty, path string) string {
	if len(p.Sections) == 0 {
		return ""
	}
	names := make([]string, 0, len(p.Sections))
	for _, s := range p.Sections {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("%s accepts sections: %s", path, strings.Join(names, ", "))
}

// misplacedSectionHint recognizes the case where a nested field name was used
// in place of its section, and suggests the wrapped form.
func misplacedSectionHint(p domain.NodeProperty, path, key string) string {
	for _, s := range p.Sections {
		for _, np := range s.Values {
			if np.Name == key {
				if s.MultipleValues {
					return fmt.Sprintf("Nest %q inside %s.%s: {%q: [{%q: ...}]}", key, path, s.Name, s.Name, key)
				}
				return fmt.Sprintf("Nest %q inside %s.%s", key, path, s.Name)
			}
		}
	}
	return fixedCollectionHint(p, path)
}

func mismatch(prop, msg, fix string) domain.Finding {
	return domain.Finding{Type: domain.FindingTypeMismatch, Property: prop, Message: msg, Fix: fix}
}

func invalid(prop, msg, fix string) domain.Finding {
	return domain.Finding{Type: domain.FindingInvalidValue, Property: prop, Message: msg, Fix: fix}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
