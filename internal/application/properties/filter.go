package properties

import (
	"strings"

	"nodedex/internal/domain"
)

const (
	maxCommon          = 10
	maxDescriptionLen  = 200
	defaultMaxMatches  = 20
	truncationEllipsis = "..."
)

// EssentialProperty is the trimmed view served to assistants: enough to
// write a working configuration without the full schema payload.
type EssentialProperty struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"displayName"`
	Type        domain.PropType `json:"type"`
	Description string          `json:"description,omitempty"`
	Default     domain.Value    `json:"default,omitempty"`
	Options     []string        `json:"options,omitempty"`
	Required    bool            `json:"required,omitempty"`
}

// curatedCommon pins the hand-picked "what you actually set" list for
// high-traffic nodes, in presentation order. Nodes without an entry fall
// back to the heuristic.
var curatedCommon = map[string][]string{
	domain.HTTPRequestNode: {"method", "url", "authentication", "sendBody", "contentType", "jsonBody", "sendHeaders", "headerParameters"},
	domain.WebhookNode:     {"httpMethod", "path", "responseMode", "responseData"},
	"nodes-base.slack":     {"resource", "operation", "channel", "text", "attachments"},
	"nodes-base.set":       {"mode", "assignments", "includeOtherFields"},
	"nodes-base.if":        {"conditions", "combineOperation"},
	"nodes-base.code":      {"language", "jsCode", "mode"},
}

// Essentials partitions a node's property surface into the required set and
// a curated or heuristic "commonly used" set. Display-only and internal
// properties never appear in either.
func Essentials(nodeType string, props []domain.NodeProperty) (required, common []EssentialProperty) {
	informative := make([]domain.NodeProperty, 0, len(props))
	byName := make(map[string]domain.NodeProperty, len(props))
	for _, p := range props {
		if !informativeProperty(p) {
			continue
		}
		informative = append(informative, p)
		byName[p.Name] = p
	}

	for _, p := range informative {
		if p.Required {
			required = append(required, simplify(p))
		}
	}

	if curated, ok := curatedCommon[nodeType]; ok {
		for _, name := range curated {
			p, exists := byName[name]
			if !exists || p.Required {
				continue
			}
			common = append(common, simplify(p))
		}
		return required, common
	}

	for _, p := range informative {
		if p.Required {
			continue
		}
		common = append(common, simplify(p))
		if len(common) == maxCommon {
			break
		}
	}
	return required, common
}

func informativeProperty(p domain.NodeProperty) bool {
	if p.Internal || p.DisplayName == "" {
		return false
	}
	switch p.Type {
	case domain.TypeHidden, domain.TypeNotice, domain.TypeButton,
		domain.TypeCallout, domain.TypeCurlImport:
		return false
	}
	return true
}

func simplify(p domain.NodeProperty) EssentialProperty {
	out := EssentialProperty{
		Name:        p.Name,
		DisplayName: p.DisplayName,
		Type:        p.Type,
		Description: truncate(p.Description),
		Default:     p.Default,
		Required:    p.Required,
	}
	for _, c := range p.Options {
		out.Options = append(out.Options, c.Value.String())
	}
	return out
}

func truncate(s string) string {
	if len(s) <= maxDescriptionLen {
		return s
	}
	return s[:maxDescriptionLen-len(truncationEllipsis)] + truncationEllipsis
}

// Match is one property found by SearchProperties, with the dotted path to
// its location in the schema.
type Match struct {
	Path        string          `json:"path"`
	Name        string          `json:"name"`
	DisplayName string          `json:"displayName,omitempty"`
	Type        domain.PropType `json:"type,omitempty"`
	Description string          `json:"description,omitempty"`
}

// SearchProperties walks the full schema, nested collections included, and
// returns properties whose name, display name or description contains the
// query. Matching is case-insensitive. maxResults <= 0 applies the default
// cap.
func SearchProperties(props []domain.NodeProperty, query string, maxResults int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if maxResults <= 0 {
		maxResults = defaultMaxMatches
	}
	var out []Match
	walkProperties(props, "", q, maxResults, &out)
	return out
}

func walkProperties(props []domain.NodeProperty, prefix, q string, maxResults int, out *[]Match) {
	for _, p := range props {
		if len(*out) >= maxResults {
			return
		}
		path := p.Name
		if prefix != "" {
			path = prefix + "." + p.Name
		}
		if matchesQuery(p, q) {
			*out = append(*out, Match{
				Path:        path,
				Name:        p.Name,
				DisplayName: p.DisplayName,
				Type:        p.Type,
				Description: truncate(p.Description),
			})
		}
		walkProperties(p.Properties, path, q, maxResults, out)
		for _, sec := range p.Sections {
			walkProperties(sec.Values, path+"."+sec.Name, q, maxResults, out)
		}
	}
}

func matchesQuery(p domain.NodeProperty, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.DisplayName), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}
