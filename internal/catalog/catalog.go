// Package catalog ships the built-in node definitions and workflow templates
// as embedded YAML and loads them into a store.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"nodedex/internal/domain"
)

//go:embed data/*.yaml
var seedFS embed.FS

// Version identifies the embedded catalog revision. Seeding is skipped when
// the store already carries this version.
const Version = "2025.08.1"

// catalogFile is the shape of one data/*.yaml file. A file may carry nodes,
// templates or both.
type catalogFile struct {
	Nodes     []nodeSpec     `yaml:"nodes"`
	Templates []templateSpec `yaml:"templates"`
}

type nodeSpec struct {
	NodeType      string                 `yaml:"nodeType"`
	Package       string                 `yaml:"package"`
	DisplayName   string                 `yaml:"displayName"`
	Description   string                 `yaml:"description"`
	Category      string                 `yaml:"category"`
	Version       float64                `yaml:"version"`
	IsVersioned   bool                   `yaml:"isVersioned"`
	IsTrigger     bool                   `yaml:"isTrigger"`
	IsWebhook     bool                   `yaml:"isWebhook"`
	IsAITool      bool                   `yaml:"isAITool"`
	Properties    []domain.NodeProperty  `yaml:"properties"`
	Operations    []domain.Operation     `yaml:"operations"`
	Credentials   []domain.CredentialRef `yaml:"credentials"`
	Documentation string                 `yaml:"documentation"`
	Community     *domain.CommunityInfo  `yaml:"community"`
}

func (n nodeSpec) definition() *domain.NodeDefinition {
	return &domain.NodeDefinition{
		NodeType:      n.NodeType,
		PackageName:   n.Package,
		DisplayName:   n.DisplayName,
		Description:   n.Description,
		Category:      n.Category,
		Version:       n.Version,
		IsVersioned:   n.IsVersioned,
		IsTrigger:     n.IsTrigger,
		IsWebhook:     n.IsWebhook,
		IsAITool:      n.IsAITool,
		Properties:    n.Properties,
		Operations:    n.Operations,
		Credentials:   n.Credentials,
		Documentation: n.Documentation,
		Community:     n.Community,
	}
}

type templateSpec struct {
	ID             int64        `yaml:"id"`
	Name           string       `yaml:"name"`
	Description    string       `yaml:"description"`
	AuthorName     string       `yaml:"authorName"`
	AuthorUsername string       `yaml:"authorUsername"`
	AuthorVerified bool         `yaml:"authorVerified"`
	Views          int          `yaml:"views"`
	URL            string       `yaml:"url"`
	CreatedAt      string       `yaml:"createdAt"`
	Workflow       workflowSpec `yaml:"workflow"`
}

type workflowSpec struct {
	Nodes []struct {
		Name        string         `yaml:"name" json:"name"`
		Type        string         `yaml:"type" json:"type"`
		TypeVersion float64        `yaml:"typeVersion" json:"typeVersion"`
		Parameters  map[string]any `yaml:"parameters" json:"parameters"`
	} `yaml:"nodes" json:"nodes"`
}

// marshalWorkflow stores the graph in the wire shape template extraction
// reads back.
func marshalWorkflow(w workflowSpec) ([]byte, error) {
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("failed to encode workflow: %w", err)
	}
	return raw, nil
}

func (t templateSpec) template() (*domain.Template, error) {
	workflow, err := marshalWorkflow(t.Workflow)
	if err != nil {
		return nil, fmt.Errorf("template %d: %w", t.ID, err)
	}

	// nodes_used is derived from the graph rather than declared twice.
	seen := make(map[string]struct{})
	var nodesUsed []string
	for _, n := range t.Workflow.Nodes {
		if _, ok := seen[n.Type]; ok {
			continue
		}
		seen[n.Type] = struct{}{}
		nodesUsed = append(nodesUsed, n.Type)
	}
	sort.Strings(nodesUsed)

	created, err := time.Parse(time.RFC3339, t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("template %d: bad createdAt %q: %w", t.ID, t.CreatedAt, err)
	}

	return &domain.Template{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		AuthorName:     t.AuthorName,
		AuthorUsername: t.AuthorUsername,
		AuthorVerified: t.AuthorVerified,
		NodesUsed:      nodesUsed,
		Workflow:       workflow,
		Views:          t.Views,
		URL:            t.URL,
		CreatedAt:      created,
	}, nil
}

// Load parses every embedded catalog file. Files load in name order so the
// result is stable.
func Load() ([]*domain.NodeDefinition, []*domain.Template, error) {
	names, err := fs.Glob(seedFS, "data/*.yaml")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list catalog files: %w", err)
	}
	sort.Strings(names)

	var (
		nodes     []*domain.NodeDefinition
		templates []*domain.Template
	)
	for _, name := range names {
		raw, err := seedFS.ReadFile(name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		for _, spec := range file.Nodes {
			if spec.NodeType == "" {
				return nil, nil, fmt.Errorf("%s: node without nodeType", name)
			}
			nodes = append(nodes, spec.definition())
		}
		for _, spec := range file.Templates {
			t, err := spec.template()
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %w", name, err)
			}
			templates = append(templates, t)
		}
	}
	return nodes, templates, nil
}
