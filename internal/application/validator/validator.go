package validator

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"nodedex/internal/domain"
)

// Request carries one validation call. Version 0 means unresolved: the
// typeVersion key in the configuration wins, then 1.
type Request struct {
	NodeType   string
	Version    float64
	Config     *domain.Config
	Properties []domain.NodeProperty
	Mode       domain.ValidationMode
	Profile    domain.ValidationProfile
}

// Validator checks node configurations against property schemas. It holds no
// state and is safe for concurrent use.
type Validator struct{}

func New() *Validator { return &Validator{} }

// ValidateWithMode is the string-typed surface used by the tool layer.
func (v *Validator) ValidateWithMode(nodeType string, cfg *domain.Config, props []domain.NodeProperty, mode domain.ValidationMode, profile domain.ValidationProfile) domain.ValidationResult {
	return v.Validate(Request{
		NodeType:   nodeType,
		Config:     cfg,
		Properties: props,
		Mode:       mode,
		Profile:    profile,
	})
}

// ValidateMinimal runs only the required-presence pass and reports the
// display names of missing fields. Its verdict always agrees with a minimal
// mode Validate call on the same input.
func (v *Validator) ValidateMinimal(nodeType string, cfg *domain.Config, props []domain.NodeProperty) domain.MinimalResult {
	if cfg == nil {
		cfg = domain.NewConfig()
	}
	working := injectVersion(cfg, resolveVersion(0, cfg))
	missing := missingRequired(props, cfg, working)
	names := make([]string, 0, len(missing))
	for _, p := range missing {
		names = append(names, displayName(p))
	}
	return domain.MinimalResult{Valid: len(names) == 0, MissingRequiredFields: names}
}

// Validate runs the full pipeline: version injection, visibility filtering,
// required presence, then mode-dependent shape checks and profile-gated
// advisories. The result is valid exactly when the error list is empty.
func (v *Validator) Validate(req Request) domain.ValidationResult {
	cfg := req.Config
	if cfg == nil {
		cfg = domain.NewConfig()
	}
	mode := req.Mode
	if mode == "" {
		mode = domain.ModeFull
	}
	profile := req.Profile
	if profile == "" {
		profile = domain.ProfileAIFriendly
	}

	working := injectVersion(cfg, resolveVersion(req.Version, cfg))

	visible := VisibleProperties(req.Properties, working)

	var errors, warnings []domain.Finding
	var suggestions []string

	for _, p := range missingRequired(req.Properties, cfg, working) {
		errors = append(errors, domain.Finding{
			Type:     domain.FindingRequired,
			Property: p.Name,
			Message:  fmt.Sprintf("Required property %q is missing", displayName(p)),
			Fix:      fmt.Sprintf("Provide a value for %q", p.Name),
		})
	}

	if mode == domain.ModeMinimal {
		return applyProfile(assemble(errors, nil, nil), profile)
	}

	if mode == domain.ModeFull {
		for _, p := range visible {
			val, present := cfg.Get(p.Name)
			if !present {
				continue
			}
			errors = append(errors, checkShape(p, p.Name, val)...)
		}
		warnings = append(warnings, surplusKeyFindings(req.Properties, visible, cfg)...)
	}

	warnings = append(warnings, deprecationFindings(cfg)...)
	warnings = append(warnings, securityFindings(cfg)...)
	warnings = append(warnings, pairRuleFindings(cfg)...)
	suggestions = commonPropertySuggestions(visible, cfg, mode)

	return applyProfile(assemble(errors, warnings, suggestions), profile)
}

func assemble(errors, warnings []domain.Finding, suggestions []string) domain.ValidationResult {
	return domain.ValidationResult{
		Valid:       len(errors) == 0,
		Errors:      errors,
		Warnings:    warnings,
		Suggestions: suggestions,
	}
}

func resolveVersion(explicit float64, cfg *domain.Config) float64 {
	if explicit > 0 {
		return explicit
	}
	if tv, ok := cfg.Get("typeVersion"); ok {
		if n, isNum := tv.AsNumber(); isNum && n > 0 {
			return n
		}
	}
	return 1
}

func injectVersion(cfg *domain.Config, version float64) *domain.Config {
	return cfg.Clone().Set(domain.VersionKey, domain.NumberValue(version))
}

// missingRequired evaluates visibility against the version-injected working
// copy but presence against the caller's original configuration.
func missingRequired(props []domain.NodeProperty, cfg, working *domain.Config) []domain.NodeProperty {
	var out []domain.NodeProperty
	for _, p := range props {
		if !p.Required || !IsVisible(p, working) {
			continue
		}
		if !cfg.Has(p.Name) {
			out = append(out, p)
		}
	}
	return out
}

// surplusKeyFindings flags configured keys that either match no property at
// all or match one hidden under the current settings. Both are warnings: the
// engine ignores such keys at run time.
func surplusKeyFindings(all, visible []domain.NodeProperty, cfg *domain.Config) []domain.Finding {
	byName := make(map[string]struct{}, len(all))
	for _, p := range all {
		byName[p.Name] = struct{}{}
	}
	shown := make(map[string]struct{}, len(visible))
	for _, p := range visible {
		shown[p.Name] = struct{}{}
	}
	var out []domain.Finding
	cfg.Range(func(key string, _ domain.Value) bool {
		if key == domain.VersionKey || key == "typeVersion" {
			return true
		}
		if _, known := byName[key]; !known {
			out = append(out, domain.Finding{
				Type:     domain.FindingUnknownKey,
				Property: key,
				Message:  fmt.Sprintf("%s is not a property of this node", key),
				Fix:      fmt.Sprintf("Remove %s or check the property name", key),
			})
			return true
		}
		if _, ok := shown[key]; !ok {
			out = append(out, domain.Finding{
				Type:     domain.FindingBestPractice,
				Property: key,
				Message:  fmt.Sprintf("%s is set but hidden by the current settings, so it is ignored", key),
				Fix:      fmt.Sprintf("Remove %s or change the settings that hide it", key),
			})
		}
		return true
	})
	return out
}

// checkShape dispatches the per-type structural check for one present value.
// Unknown extension types are tolerated without findings. Expression strings
// bypass shape checks for types that accept them.
func checkShape(p domain.NodeProperty, path string, v domain.Value) []domain.Finding {
	st, known := GetStructure(p.Type)
	if !known {
		return nil
	}
	if s, isStr := v.AsString(); isStr && st.AllowExpressions && domain.IsExpression(s) {
		return nil
	}
	switch p.Type {
	case domain.TypeString, domain.TypeDateTime, domain.TypeColor,
		domain.TypeCredentialsSelect, domain.TypeCurlImport:
		return checkString(st, path, v)
	case domain.TypeNumber:
		return checkNumber(path, v)
	case domain.TypeBoolean:
		return checkBoolean(path, v)
	case domain.TypeJSON:
		return checkJSONString(path, v)
	case domain.TypeOptions:
		return checkOptions(p, path, v)
	case domain.TypeMultiOptions:
		return checkMultiOptions(p, path, v)
	case domain.TypeCollection:
		return validateCollection(p, path, v)
	case domain.TypeFixedCollection:
		return validateFixedCollection(p, path, v)
	case domain.TypeResourceLocator:
		return validateResourceLocator(path, v)
	case domain.TypeFilter:
		return validateFilter(path, v)
	case domain.TypeResourceMapper:
		return validateResourceMapper(path, v)
	case domain.TypeAssignmentCollection:
		return validateAssignmentCollection(path, v)
	case domain.TypeWorkflowSelector:
		return validateWorkflowSelector(path, v)
	}
	return nil
}

func checkString(st TypeStructure, path string, v domain.Value) []domain.Finding {
	if _, ok := v.AsString(); ok {
		return nil
	}
	fix := ""
	switch v.Kind() {
	case domain.KindNumber, domain.KindBool:
		fix = fmt.Sprintf("Quote the value: %q", v.String())
	}
	return []domain.Finding{mismatch(path,
		fmt.Sprintf("%s must be %s, got %s", path, st.Describe, v.Kind()), fix)}
}

func checkNumber(path string, v domain.Value) []domain.Finding {
	if _, ok := v.AsNumber(); ok {
		return nil
	}
	if s, ok := v.AsString(); ok {
		if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return []domain.Finding{mismatch(path,
				fmt.Sprintf("%s must be a number, got string %q", path, s),
				fmt.Sprintf("Use %s instead of %q", strings.TrimSpace(s), s))}
		}
	}
	return []domain.Finding{mismatch(path,
		fmt.Sprintf("%s must be a number, got %s", path, v.Kind()), "")}
}

func checkBoolean(path string, v domain.Value) []domain.Finding {
	if _, ok := v.AsBool(); ok {
		return nil
	}
	if s, ok := v.AsString(); ok {
		if s == "true" || s == "false" {
			return []domain.Finding{mismatch(path,
				fmt.Sprintf("%s must be a boolean, got string %q", path, s),
				fmt.Sprintf("Use %s instead of %q", s, s))}
		}
	}
	return []domain.Finding{mismatch(path,
		fmt.Sprintf("%s must be a boolean, got %s", path, v.Kind()), "")}
}

func checkJSONString(path string, v domain.Value) []domain.Finding {
	if s, ok := v.AsString(); ok {
		if json.Valid([]byte(s)) {
			return nil
		}
		return []domain.Finding{invalid(path,
			fmt.Sprintf("%s is not parseable as JSON", path),
			"Fix the JSON syntax so the string parses")}
	}
	switch v.Kind() {
	case domain.KindMap, domain.KindList:
		return []domain.Finding{mismatch(path,
			fmt.Sprintf("%s must be a JSON-encoded string, got a raw %s", path, v.Kind()),
			"JSON-encode the value into a string")}
	}
	return []domain.Finding{mismatch(path,
		fmt.Sprintf("%s must be a JSON-encoded string, got %s", path, v.Kind()), "")}
}

func checkOptions(p domain.NodeProperty, path string, v domain.Value) []domain.Finding {
	if len(p.Options) == 0 {
		return nil
	}
	for _, c := range p.Options {
		if v.Equal(c.Value) {
			return nil
		}
	}
	fix := fmt.Sprintf("Set %s to one of the allowed values", path)
	if s, ok := v.AsString(); ok {
		if closest, ok := closestChoice(s, p.Options); ok {
			fix = fmt.Sprintf("Did you mean %q?", closest)
		}
	}
	return []domain.Finding{invalid(path,
		fmt.Sprintf("%s must be one of: %s", path, choiceList(p.Options)), fix)}
}

func checkMultiOptions(p domain.NodeProperty, path string, v domain.Value) []domain.Finding {
	list, ok := v.AsList()
	if !ok {
		for _, c := range p.Options {
			if v.Equal(c.Value) {
				return []domain.Finding{mismatch(path,
					fmt.Sprintf("%s must be an array of values", path),
					fmt.Sprintf("Wrap the value in an array: [%s]", v.String()))}
			}
		}
		return []domain.Finding{mismatch(path,
			fmt.Sprintf("%s must be an array of allowed values", path), "")}
	}
	if len(p.Options) == 0 {
		return nil
	}
	var out []domain.Finding
	for i, item := range list {
		valid := false
		for _, c := range p.Options {
			if item.Equal(c.Value) {
				valid = true
				break
			}
		}
		if !valid {
			out = append(out, invalid(fmt.Sprintf("%s[%d]", path, i),
				fmt.Sprintf("%s[%d] must be one of: %s", path, i, choiceList(p.Options)), ""))
		}
	}
	return out
}

func choiceList(options []domain.Choice) string {
	const maxShown = 10
	vals := make([]string, 0, len(options))
	for _, c := range options {
		vals = append(vals, c.Value.String())
	}
	if len(vals) > maxShown {
		return strings.Join(vals[:maxShown], ", ") + fmt.Sprintf(" (+%d more)", len(vals)-maxShown)
	}
	return strings.Join(vals, ", ")
}

func closestChoice(s string, options []domain.Choice) (string, bool) {
	best, bestSim := "", 0.0
	for _, c := range options {
		cs, ok := c.Value.AsString()
		if !ok {
			continue
		}
		if sim := similarity(strings.ToLower(s), strings.ToLower(cs)); sim > bestSim {
			bestSim, best = sim, cs
		}
	}
	return best, bestSim >= 0.5
}

func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

// commonPropertySuggestions points at visible, unset, optional properties
// worth knowing about. Operation mode narrows the pool to properties gated on
// the selected resource or operation branch, keeping the guidance close to
// what the caller is configuring.
func commonPropertySuggestions(visible []domain.NodeProperty, cfg *domain.Config, mode domain.ValidationMode) []string {
	const maxNames = 5
	var names []string
	for _, p := range visible {
		if p.Required || p.Internal || cfg.Has(p.Name) {
			continue
		}
		switch p.Type {
		case domain.TypeHidden, domain.TypeNotice, domain.TypeButton,
			domain.TypeCallout, domain.TypeCurlImport:
			continue
		}
		if p.DisplayName == "" {
			continue
		}
		if mode == domain.ModeOperation && !branchScoped(p) {
			continue
		}
		names = append(names, p.Name)
		if len(names) == maxNames {
			break
		}
	}
	if len(names) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("Commonly configured: %s", strings.Join(names, ", "))}
}

func branchScoped(p domain.NodeProperty) bool {
	if p.Display == nil {
		return false
	}
	for _, key := range []string{"resource", "operation"} {
		if _, ok := p.Display.Show[key]; ok {
			return true
		}
	}
	return false
}

func displayName(p domain.NodeProperty) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}
