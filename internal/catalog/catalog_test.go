package catalog

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodedex/internal/adapters/sqlite"
	"nodedex/internal/application/validator"
	"nodedex/internal/domain"
)

func TestLoad(t *testing.T) {
	nodes, templates, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, nodes)
	require.NotEmpty(t, templates)

	byType := make(map[string]*domain.NodeDefinition, len(nodes))
	for _, def := range nodes {
		require.NotContains(t, byType, def.NodeType, "duplicate node type in catalog")
		byType[def.NodeType] = def
	}

	// The canonical HTTP node must always ship; search treats its absence
	// as a broken index.
	http, ok := byType[domain.HTTPRequestNode]
	require.True(t, ok)
	assert.Equal(t, domain.CorePackage, http.PackageName)
	assert.True(t, http.IsVersioned)
	assert.NotEmpty(t, http.Documentation)

	var method *domain.NodeProperty
	for i := range http.Properties {
		if http.Properties[i].Name == "method" {
			method = &http.Properties[i]
		}
	}
	require.NotNil(t, method)
	assert.True(t, method.Required)
	assert.Len(t, method.Options, 7)

	webhook, ok := byType[domain.WebhookNode]
	require.True(t, ok)
	assert.True(t, webhook.IsTrigger)
	assert.True(t, webhook.IsWebhook)
}

func TestLoadDecodesVersionGates(t *testing.T) {
	nodes, _, err := Load()
	require.NoError(t, err)

	var notice *domain.NodeProperty
	for _, def := range nodes {
		if def.NodeType != domain.HTTPRequestNode {
			continue
		}
		for i := range def.Properties {
			if def.Properties[i].Name == "infoMessage" {
				notice = &def.Properties[i]
			}
		}
	}
	require.NotNil(t, notice)
	require.NotNil(t, notice.Display)

	conds, ok := notice.Display.Show["@version"]
	require.True(t, ok)
	require.Len(t, conds, 1)
	cmp, ok := conds[0].Comparator()
	require.True(t, ok)
	assert.Equal(t, domain.CmpGte, cmp.Op)
	operand, _ := cmp.Operand.AsNumber()
	assert.InDelta(t, 4.1, operand, 1e-9)
}

func TestLoadCommunityNodes(t *testing.T) {
	nodes, _, err := Load()
	require.NoError(t, err)

	var community []*domain.NodeDefinition
	for _, def := range nodes {
		if def.Community != nil {
			community = append(community, def)
		}
	}
	require.NotEmpty(t, community)
	for _, def := range community {
		assert.False(t, def.Summary().IsCore(), "%s carries community info but a core package", def.NodeType)
		assert.NotEmpty(t, def.Community.AuthorName)
	}
}

func TestLoadDerivesNodesUsed(t *testing.T) {
	_, templates, err := Load()
	require.NoError(t, err)

	byID := make(map[int64]*domain.Template, len(templates))
	for _, tpl := range templates {
		byID[tpl.ID] = tpl
	}
	alerts, ok := byID[1001]
	require.True(t, ok)
	assert.Equal(t, []string{
		"loom-nodes-base.set",
		"loom-nodes-base.slack",
		"loom-nodes-base.webhook",
	}, alerts.NodesUsed)
	assert.False(t, alerts.CreatedAt.IsZero())
}

func TestSeed(t *testing.T) {
	s, err := sqlite.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	result, err := Seed(s, zerolog.Nop(), false)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Greater(t, result.Nodes, 10)
	assert.Equal(t, 4, result.Templates)

	count, err := s.CountNodes()
	require.NoError(t, err)
	assert.Equal(t, result.Nodes, count)

	version, err := s.GetMeta("catalog_version")
	require.NoError(t, err)
	assert.Equal(t, Version, version)

	// A second run is a no-op until the catalog version changes.
	again, err := Seed(s, zerolog.Nop(), false)
	require.NoError(t, err)
	assert.True(t, again.Skipped)

	forced, err := Seed(s, zerolog.Nop(), true)
	require.NoError(t, err)
	assert.False(t, forced.Skipped)
	assert.Equal(t, result.Nodes, forced.Nodes)
}

// Every shipped template must validate cleanly against the shipped node
// definitions; the templates double as the example configurations served to
// callers.
func TestTemplatesValidateAgainstCatalog(t *testing.T) {
	nodes, templates, err := Load()
	require.NoError(t, err)

	byType := make(map[string]*domain.NodeDefinition, len(nodes))
	for _, def := range nodes {
		byType[def.NodeType] = def
	}

	v := validator.New()
	for _, tpl := range templates {
		var graph struct {
			Nodes []struct {
				Name        string         `json:"name"`
				Type        string         `json:"type"`
				TypeVersion float64        `json:"typeVersion"`
				Parameters  map[string]any `json:"parameters"`
			} `json:"nodes"`
		}
		require.NoError(t, json.Unmarshal(tpl.Workflow, &graph))
		require.NotEmpty(t, graph.Nodes)

		for _, n := range graph.Nodes {
			def, ok := byType[domain.NormalizeNodeType(n.Type)]
			require.True(t, ok, "template %d references unknown node %s", tpl.ID, n.Type)

			result := v.Validate(validator.Request{
				NodeType:   def.NodeType,
				Version:    n.TypeVersion,
				Config:     domain.ConfigFromAny(n.Parameters),
				Properties: def.Properties,
				Mode:       domain.ModeFull,
				Profile:    domain.ProfileAIFriendly,
			})
			assert.True(t, result.Valid,
				"template %d node %q is invalid: %+v", tpl.ID, n.Name, result.Errors)
		}
	}
}
