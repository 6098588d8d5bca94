package application

import (
	"errors"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"nodedex/internal/application/properties"
	"nodedex/internal/domain"
	"nodedex/internal/ports"
)

// NodeService answers node lookups over the repository, accepting every
// documented spelling of a node type: internal form, wire form, or bare
// name.
type NodeService struct {
	repo ports.NodeRepository
}

func NewNodeService(repo ports.NodeRepository) *NodeService {
	return &NodeService{repo: repo}
}

// Resolve returns the definition behind any accepted spelling. A miss is the
// one hard error of the query surface and comes back as a NodeNotFoundError
// carrying near-miss suggestions.
func (s *NodeService) Resolve(nodeType string) (*domain.NodeDefinition, error) {
	trimmed := strings.TrimSpace(nodeType)
	for _, candidate := range domain.NodeTypeAlternatives(trimmed) {
		def, err := s.repo.GetNode(candidate)
		if err == nil {
			return def, nil
		}
		if !errors.Is(err, ErrNodeNotFound) {
			return nil, err
		}
	}
	return nil, &NodeNotFoundError{NodeType: nodeType, Suggestions: s.nearMisses(trimmed)}
}

// nearMisses offers up to three close node types for a failed lookup.
// Failures here degrade to no suggestions; the lookup error stands either
// way.
func (s *NodeService) nearMisses(nodeType string) []string {
	rows, err := s.repo.ListNodes(ports.NodeFilter{})
	if err != nil {
		return nil
	}
	bare := strings.ToLower(domain.BareNodeName(domain.NormalizeNodeType(nodeType)))
	type scored struct {
		nodeType string
		sim      float64
	}
	var near []scored
	for _, r := range rows {
		sim := editSimilarity(bare, strings.ToLower(domain.BareNodeName(r.NodeType)))
		if sim >= 0.5 {
			near = append(near, scored{r.NodeType, sim})
		}
	}
	sort.SliceStable(near, func(i, j int) bool { return near[i].sim > near[j].sim })
	out := make([]string, 0, 3)
	for _, c := range near {
		out = append(out, c.nodeType)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func editSimilarity(a, b string) float64 {
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

// NodeEssentials is the condensed node view for assistants.
type NodeEssentials struct {
	NodeType    string                         `json:"nodeType"`
	DisplayName string                         `json:"displayName"`
	Description string                         `json:"description,omitempty"`
	Version     float64                        `json:"version,omitempty"`
	Required    []properties.EssentialProperty `json:"requiredProperties"`
	Common      []properties.EssentialProperty `json:"commonProperties"`
	Operations  []domain.Operation             `json:"operations,omitempty"`
}

// Essentials condenses a node to its required and commonly used properties.
func (s *NodeService) Essentials(nodeType string) (*NodeEssentials, error) {
	def, err := s.Resolve(nodeType)
	if err != nil {
		return nil, err
	}
	required, common := properties.Essentials(def.NodeType, def.Properties)
	return &NodeEssentials{
		NodeType:    def.NodeType,
		DisplayName: def.DisplayName,
		Description: def.Description,
		Version:     def.Version,
		Required:    required,
		Common:      common,
		Operations:  def.Operations,
	}, nil
}

// SearchProperties finds properties of one node by name fragment.
func (s *NodeService) SearchProperties(nodeType, query string, maxResults int) ([]properties.Match, error) {
	def, err := s.Resolve(nodeType)
	if err != nil {
		return nil, err
	}
	return properties.SearchProperties(def.Properties, query, maxResults), nil
}

// Documentation returns the stored documentation, falling back to a short
// synthesized summary when none was imported.
func (s *NodeService) Documentation(nodeType string) (string, error) {
	def, err := s.Resolve(nodeType)
	if err != nil {
		return "", err
	}
	if def.Documentation != "" {
		return def.Documentation, nil
	}
	var b strings.Builder
	b.WriteString("# " + def.DisplayName + "\n\n")
	if def.Description != "" {
		b.WriteString(def.Description + "\n\n")
	}
	b.WriteString("Node type: `" + domain.WorkflowNodeType(def.NodeType) + "`\n")
	if len(def.Operations) > 0 {
		b.WriteString("\n## Operations\n\n")
		for _, op := range def.Operations {
			line := "- " + op.Name
			if op.Resource != "" {
				line = "- " + op.Resource + ": " + op.Name
			}
			if op.Description != "" {
				line += " - " + op.Description
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String(), nil
}
