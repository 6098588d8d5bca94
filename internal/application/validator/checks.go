package validator

import (
	"fmt"
	"regexp"
	"strings"

	"nodedex/internal/domain"
)

type deprecatedProperty struct {
	Replacement string
	Message     string
}

// Properties retired from the engine's node surface. Presence is a warning,
// never an error: old workflows still run.
var deprecatedProperties = map[string]deprecatedProperty{
	"continueOnFail": {
		Replacement: "onError",
		Message:     "continueOnFail is deprecated",
	},
	"alwaysOutputData": {
		Replacement: "",
		Message:     "alwaysOutputData has no effect on current engine versions",
	},
}

// Retired option values keyed by property name. Mostly model identifiers the
// upstream providers no longer serve.
var retiredOptionValues = map[string]map[string]string{
	"model": {
		"text-davinci-003":   "gpt-4o-mini",
		"gpt-3.5-turbo-16k":  "gpt-4o-mini",
		"gpt-4-32k":          "gpt-4o",
		"claude-instant-1.2": "claude-3-5-haiku-latest",
	},
}

func deprecationFindings(cfg *domain.Config) []domain.Finding {
	var out []domain.Finding
	cfg.Range(func(key string, val domain.Value) bool {
		if dep, ok := deprecatedProperties[key]; ok {
			fix := ""
			if dep.Replacement != "" {
				fix = fmt.Sprintf("Use %s instead", dep.Replacement)
			}
			out = append(out, domain.Finding{
				Type:     domain.FindingDeprecated,
				Property: key,
				Message:  dep.Message,
				Fix:      fix,
			})
		}
		if retired, ok := retiredOptionValues[key]; ok {
			if s, isStr := val.AsString(); isStr {
				if replacement, gone := retired[s]; gone {
					out = append(out, domain.Finding{
						Type:     domain.FindingDeprecated,
						Property: key,
						Message:  fmt.Sprintf("%s %q has been retired", key, s),
						Fix:      fmt.Sprintf("Switch to %q", replacement),
					})
				}
			}
		}
		return true
	})
	return out
}

var secretKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|token|secret|password|passphrase|authorization|credential)`)

var secretValuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^sk-[A-Za-z0-9_-]{20,}`),
	regexp.MustCompile(`^xox[baprs]-[A-Za-z0-9-]{10,}`),
	regexp.MustCompile(`^gh[ps]_[A-Za-z0-9]{20,}`),
	regexp.MustCompile(`^AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`^Bearer\s+\S{16,}`),
	regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`),
}

// securityFindings walks the whole configuration value tree looking for
// credential material embedded as literals. Expression values are exempt:
// they resolve at runtime, typically from bound credentials.
func securityFindings(cfg *domain.Config) []domain.Finding {
	var out []domain.Finding
	scanConfig(cfg, "", &out)
	return out
}

func scanConfig(cfg *domain.Config, prefix string, out *[]domain.Finding) {
	cfg.Range(func(key string, val domain.Value) bool {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		scanValue(key, path, val, out)
		return true
	})
}

func scanValue(key, path string, val domain.Value, out *[]domain.Finding) {
	switch val.Kind() {
	case domain.KindString:
		s, _ := val.AsString()
		if domain.IsExpression(s) {
			return
		}
		if secretKeyPattern.MatchString(key) && len(s) >= 8 {
			*out = append(*out, domain.Finding{
				Type:     domain.FindingSecurity,
				Property: path,
				Message:  fmt.Sprintf("%s appears to contain a hardcoded secret", path),
				Fix:      "Bind a credential instead of embedding the secret in the configuration",
			})
			return
		}
		for _, p := range secretValuePatterns {
			if p.MatchString(s) {
				*out = append(*out, domain.Finding{
					Type:     domain.FindingSecurity,
					Property: path,
					Message:  fmt.Sprintf("%s looks like literal credential material", path),
					Fix:      "Bind a credential instead of embedding the secret in the configuration",
				})
				return
			}
		}
	case domain.KindMap:
		obj, _ := val.AsMap()
		scanConfig(obj, path, out)
	case domain.KindList:
		list, _ := val.AsList()
		for i, item := range list {
			scanValue(key, fmt.Sprintf("%s[%d]", path, i), item, out)
		}
	}
}

// pairRule encodes a cross-property expectation: when a toggle carries a
// given value, at least one of the listed companions should be set too.
type pairRule struct {
	When      string
	Equals    domain.Value
	ThenAnyOf []string
	Message   string
	Fix       string
}

var pairRules = []pairRule{
	{
		When: "sendBody", Equals: domain.BoolValue(true),
		ThenAnyOf: []string{"jsonBody", "bodyParameters", "body", "binaryPropertyName"},
		Message:   "sendBody is enabled but no body is configured",
		Fix:       "Set jsonBody or bodyParameters, or disable sendBody",
	},
	{
		When: "sendHeaders", Equals: domain.BoolValue(true),
		ThenAnyOf: []string{"headerParameters"},
		Message:   "sendHeaders is enabled but headerParameters is empty",
		Fix:       "Add entries under headerParameters, or disable sendHeaders",
	},
	{
		When: "sendQuery", Equals: domain.BoolValue(true),
		ThenAnyOf: []string{"queryParameters"},
		Message:   "sendQuery is enabled but queryParameters is empty",
		Fix:       "Add entries under queryParameters, or disable sendQuery",
	},
	{
		When: "authentication", Equals: domain.StringValue("genericCredentialType"),
		ThenAnyOf: []string{"genericAuthType"},
		Message:   "authentication is generic but no genericAuthType is selected",
		Fix:       "Set genericAuthType to the credential kind to use",
	},
	{
		When: "retryOnFail", Equals: domain.BoolValue(true),
		ThenAnyOf: []string{"maxTries"},
		Message:   "retryOnFail is enabled without maxTries",
		Fix:       "Set maxTries to bound the retry loop",
	},
}

func pairRuleFindings(cfg *domain.Config) []domain.Finding {
	var out []domain.Finding
	for _, r := range pairRules {
		v, present := cfg.Get(r.When)
		if !present || !v.Equal(r.Equals) {
			continue
		}
		satisfied := false
		for _, name := range r.ThenAnyOf {
			if companion, ok := cfg.Get(name); ok && !companion.IsNull() && !emptyComposite(companion) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			out = append(out, domain.Finding{
				Type:     domain.FindingBestPractice,
				Property: r.When,
				Message:  r.Message,
				Fix:      r.Fix,
			})
		}
	}
	return out
}

func emptyComposite(v domain.Value) bool {
	if obj, ok := v.AsMap(); ok {
		return obj.Len() == 0
	}
	if list, ok := v.AsList(); ok {
		return len(list) == 0
	}
	if s, ok := v.AsString(); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
