package domain

import (
	"strings"
	"time"
)

// Package prefixes. Node types are stored in the short internal form
// ("nodes-base.slack"); workflows reference the full package form
// ("loom-nodes-base.slack", "@loom/loom-nodes-ai.agent"). Community packages
// use their full npm-style name in both places.
const (
	CorePackage     = "loom-nodes-base"
	AIPackage       = "@loom/loom-nodes-ai"
	corePrefix      = "nodes-base."
	aiPrefix        = "nodes-ai."
	coreWirePrefix  = "loom-nodes-base."
	aiWirePrefix    = "@loom/loom-nodes-ai."
	aiShortPrefix   = "loom-nodes-ai."
	HTTPRequestNode = "nodes-base.httpRequest"
	WebhookNode     = "nodes-base.webhook"
)

// NodeDefinition is one node type: metadata plus the full property schema of
// its latest version. Immutable once loaded.
type NodeDefinition struct {
	NodeType      string          `json:"nodeType"`
	PackageName   string          `json:"package"`
	DisplayName   string          `json:"displayName"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Version       float64         `json:"version,omitempty"`
	IsVersioned   bool            `json:"isVersioned,omitempty"`
	IsTrigger     bool            `json:"isTrigger,omitempty"`
	IsWebhook     bool            `json:"isWebhook,omitempty"`
	IsAITool      bool            `json:"isAITool,omitempty"`
	Properties    []NodeProperty  `json:"properties"`
	Operations    []Operation     `json:"operations,omitempty"`
	Credentials   []CredentialRef `json:"credentials,omitempty"`
	Documentation string          `json:"documentation,omitempty"`
	Community     *CommunityInfo  `json:"community,omitempty"`
}

// Operation is one resource/operation pair a node supports.
type Operation struct {
	Resource    string `json:"resource,omitempty" yaml:"resource,omitempty"`
	Operation   string `json:"operation" yaml:"operation"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// CredentialRef names a credential type the node can bind.
type CredentialRef struct {
	Name     string `json:"name" yaml:"name"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// CommunityInfo is present on community-sourced nodes only.
type CommunityInfo struct {
	AuthorName     string `json:"authorName,omitempty" yaml:"authorName,omitempty"`
	AuthorUsername string `json:"authorUsername,omitempty" yaml:"authorUsername,omitempty"`
	Verified       bool   `json:"verified,omitempty" yaml:"verified,omitempty"`
	Downloads      int    `json:"downloads,omitempty" yaml:"downloads,omitempty"`
}

// NodeSummary is the row shape search ranks over: everything needed for
// scoring and presentation, without the property schema payload.
type NodeSummary struct {
	NodeType    string         `json:"nodeType"`
	PackageName string         `json:"package"`
	DisplayName string         `json:"displayName"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category,omitempty"`
	Version     float64        `json:"version,omitempty"`
	IsTrigger   bool           `json:"isTrigger,omitempty"`
	IsAITool    bool           `json:"isAITool,omitempty"`
	Community   *CommunityInfo `json:"community,omitempty"`
}

// Summary projects the definition onto its searchable row.
func (d *NodeDefinition) Summary() NodeSummary {
	return NodeSummary{
		NodeType:    d.NodeType,
		PackageName: d.PackageName,
		DisplayName: d.DisplayName,
		Description: d.Description,
		Category:    d.Category,
		Version:     d.Version,
		IsTrigger:   d.IsTrigger,
		IsAITool:    d.IsAITool,
		Community:   d.Community,
	}
}

// IsCore reports whether the node ships with the engine rather than a
// community package.
func (s NodeSummary) IsCore() bool {
	return s.PackageName == CorePackage || s.PackageName == AIPackage
}

// SearchCandidate is a ranked search hit.
type SearchCandidate struct {
	NodeSummary
	RelevanceScore   int             `json:"relevanceScore"`
	Relevance        string          `json:"relevance"`
	WorkflowNodeType string          `json:"workflowNodeType"`
	Examples         []ConfigExample `json:"examples,omitempty"`
}

// RelevanceLabel maps a 0-1000 score onto the coarse label exposed to
// callers.
func RelevanceLabel(score int) string {
	switch {
	case score >= 700:
		return "high"
	case score >= 400:
		return "medium"
	default:
		return "low"
	}
}

// Template is one example workflow from the template library.
type Template struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	AuthorName     string    `json:"authorName,omitempty"`
	AuthorUsername string    `json:"authorUsername,omitempty"`
	AuthorVerified bool      `json:"authorVerified,omitempty"`
	NodesUsed      []string  `json:"nodesUsed"`
	Workflow       []byte    `json:"-"`
	Views          int       `json:"views"`
	URL            string    `json:"url,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// ConfigExample is one real configuration for a node, extracted from a
// template workflow.
type ConfigExample struct {
	TemplateID   int64   `json:"templateId"`
	TemplateName string  `json:"templateName"`
	Views        int     `json:"views"`
	NodeName     string  `json:"nodeName,omitempty"`
	TypeVersion  float64 `json:"typeVersion,omitempty"`
	Config       *Config `json:"config"`
}

// WorkflowNodeType converts a stored internal node type to the identifier
// workflows actually use.
func WorkflowNodeType(internal string) string {
	switch {
	case strings.HasPrefix(internal, corePrefix):
		return coreWirePrefix + strings.TrimPrefix(internal, corePrefix)
	case strings.HasPrefix(internal, aiPrefix):
		return aiWirePrefix + strings.TrimPrefix(internal, aiPrefix)
	default:
		return internal
	}
}

// NormalizeNodeType converts any accepted spelling of a node type to the
// internal storage form. Unknown shapes pass through unchanged.
func NormalizeNodeType(raw string) string {
	switch {
	case strings.HasPrefix(raw, coreWirePrefix):
		return corePrefix + strings.TrimPrefix(raw, coreWirePrefix)
	case strings.HasPrefix(raw, aiWirePrefix):
		return aiPrefix + strings.TrimPrefix(raw, aiWirePrefix)
	case strings.HasPrefix(raw, aiShortPrefix):
		return aiPrefix + strings.TrimPrefix(raw, aiShortPrefix)
	default:
		return raw
	}
}

// NodeTypeAlternatives lists the candidate internal identifiers to try for a
// user-supplied node type, most specific first. A bare name like "slack"
// expands into both engine packages.
func NodeTypeAlternatives(raw string) []string {
	normalized := NormalizeNodeType(strings.TrimSpace(raw))
	if normalized == "" {
		return nil
	}
	alts := []string{normalized}
	if !strings.Contains(normalized, ".") {
		alts = append(alts, corePrefix+normalized, aiPrefix+normalized)
	}
	return alts
}

// BareNodeName strips the package prefix from an internal node type:
// "nodes-base.httpRequest" yields "httpRequest".
func BareNodeName(nodeType string) string {
	if i := strings.LastIndex(nodeType, "."); i >= 0 {
		return nodeType[i+1:]
	}
	return nodeType
}
