package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nodedex/internal/application"
	"nodedex/internal/application/search"
	"nodedex/internal/application/validator"
	"nodedex/internal/domain"
	"nodedex/internal/ports"
)

// Deps bundles the services the tool handlers call.
type Deps struct {
	Nodes     *application.NodeService
	Search    *search.Engine
	Validator *validator.Validator
	Catalog   ports.NodeRepository
	Templates ports.TemplateSource
	Stats     ports.StatsProvider
}

// RegisterReadTools adds all catalog query tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, d Deps) {
	s.AddTool(searchNodesTool(), searchNodesHandler(d))
	s.AddTool(getNodeTool(), getNodeHandler(d))
	s.AddTool(getNodeEssentialsTool(), getNodeEssentialsHandler(d))
	s.AddTool(searchNodePropertiesTool(), searchNodePropertiesHandler(d))
	s.AddTool(listNodesTool(), listNodesHandler(d))
	s.AddTool(getNodeDocumentationTool(), getNodeDocumentationHandler(d))
	s.AddTool(getNodeExamplesTool(), getNodeExamplesHandler(d))
	s.AddTool(getTemplateTool(), getTemplateHandler(d))
	s.AddTool(getStatisticsTool(), getStatisticsHandler(d))
}

// --- search_nodes ---

func searchNodesTool() mcp.Tool {
	return mcp.NewTool("search_nodes",
		mcp.WithDescription("Search the node catalog by keyword. Results are ranked by relevance (0-1000) with common automation nodes boosted."),
		mcp.WithString("query",
			mcp.Description("Search terms. Quote the whole query for an exact phrase."),
			mcp.Required(),
		),
		mcp.WithString("mode",
			mcp.Description("How multiple terms combine: OR (default), AND, or FUZZY for typo-tolerant matching"),
			mcp.Enum("OR", "AND", "FUZZY"),
		),
		mcp.WithString("source",
			mcp.Description("Restrict results by origin: all (default), core, community, or verified community authors"),
			mcp.Enum("all", "core", "community", "verified"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default 20, max 100)"),
		),
		mcp.WithBoolean("include_examples",
			mcp.Description("Attach real configuration examples from popular templates to each result"),
		),
	)
}

func searchNodesHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		resp, err := d.Search.Search(query, search.Options{
			Mode:            search.ParseMode(req.GetString("mode", "")),
			Source:          search.ParseSource(req.GetString("source", "")),
			Limit:           req.GetInt("limit", 0),
			IncludeExamples: req.GetBool("include_examples", false),
		})
		if err != nil {
			return toolError(err)
		}
		return toolJSON(resp)
	}
}

// --- get_node ---

func getNodeTool() mcp.Tool {
	return mcp.NewTool("get_node",
		mcp.WithDescription("Get the full definition of a node: metadata, property schema, operations and credentials."),
		mcp.WithString("node_type",
			mcp.Description(`Node type in any accepted spelling, e.g. "nodes-base.slack", "loom-nodes-base.slack" or just "slack"`),
			mcp.Required(),
		),
	)
}

func getNodeHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		def, err := resolveNode(d, req)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(def)
	}
}

// --- get_node_essentials ---

func getNodeEssentialsTool() mcp.Tool {
	return mcp.NewTool("get_node_essentials",
		mcp.WithDescription("Get a condensed node view: required properties plus the 10-20 commonly used ones, with defaults and allowed values. Start here instead of get_node."),
		mcp.WithString("node_type",
			mcp.Description("Node type in any accepted spelling"),
			mcp.Required(),
		),
	)
}

func getNodeEssentialsHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nodeType := req.GetString("node_type", "")
		if nodeType == "" {
			return toolError(fmt.Errorf("node_type is required"))
		}
		essentials, err := d.Nodes.Essentials(nodeType)
		if err != nil {
			return toolError(err)
		}
		return toolJSON(essentials)
	}
}

// --- search_node_properties ---

func searchNodePropertiesTool() mcp.Tool {
	return mcp.NewTool("search_node_properties",
		mcp.WithDescription("Find properties of one node by name fragment, including nested ones. Returns dotted paths like options.timeout."),
		mcp.WithString("node_type",
			mcp.Description("Node type in any accepted spelling"),
			mcp.Required(),
		),
		mcp.WithString("query",
			mcp.Description(`Property name fragment, e.g. "auth" or "header"`),
			mcp.Required(),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum matches to return (default 20)"),
		),
	)
}

func searchNodePropertiesHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nodeType := req.GetString("node_type", "")
		query := req.GetString("query", "")
		if nodeType == "" || query == "" {
			return toolError(fmt.Errorf("node_type and query are required"))
		}
		matches, err := d.Nodes.SearchProperties(nodeType, query, req.GetInt("max_results", 0))
		if err != nil {
			return toolError(err)
		}
		return toolJSON(map[string]any{
			"nodeType": nodeType,
			"query":    query,
			"matches":  matches,
		})
	}
}

// --- list_nodes ---

func listNodesTool() mcp.Tool {
	return mcp.NewTool("list_nodes",
		mcp.WithDescription("List catalog nodes, optionally filtered by package or category."),
		mcp.WithString("package",
			mcp.Description(`Package filter, e.g. "loom-nodes-base" or a community package name`),
		),
		mcp.WithString("category",
			mcp.Description(`Category filter, e.g. "trigger", "communication", "data"`),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum nodes to return; omit for all"),
		),
	)
}

func listNodesHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nodes, err := d.Catalog.ListNodes(ports.NodeFilter{
			Package:  req.GetString("package", ""),
			Category: req.GetString("category", ""),
			Limit:    req.GetInt("limit", 0),
		})
		if err != nil {
			return toolError(err)
		}
		return toolJSON(map[string]any{
			"totalCount": len(nodes),
			"nodes":      nodes,
		})
	}
}

// --- get_node_documentation ---

func getNodeDocumentationTool() mcp.Tool {
	return mcp.NewTool("get_node_documentation",
		mcp.WithDescription("Get readable markdown documentation for a node, with a generated summary as fallback."),
		mcp.WithString("node_type",
			mcp.Description("Node type in any accepted spelling"),
			mcp.Required(),
		),
	)
}

func getNodeDocumentationHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		nodeType := req.GetString("node_type", "")
		if nodeType == "" {
			return toolError(fmt.Errorf("node_type is required"))
		}
		docs, err := d.Nodes.Documentation(nodeType)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(docs), nil
	}
}

// --- get_node_examples ---

func getNodeExamplesTool() mcp.Tool {
	return mcp.NewTool("get_node_examples",
		mcp.WithDescription("Get real configuration examples for a node, extracted from the most popular workflow templates that use it."),
		mcp.WithString("node_type",
			mcp.Description("Node type in any accepted spelling"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum examples to return (default 3)"),
		),
	)
}

func getNodeExamplesHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		def, err := resolveNode(d, req)
		if err != nil {
			return toolError(err)
		}
		wireType := domain.WorkflowNodeType(def.NodeType)
		examples, err := d.Templates.ExamplesForNode(wireType, req.GetInt("limit", 3))
		if err != nil {
			return toolError(err)
		}
		return toolJSON(map[string]any{
			"nodeType":         def.NodeType,
			"workflowNodeType": wireType,
			"examples":         examples,
		})
	}
}

// --- get_template ---

func getTemplateTool() mcp.Tool {
	return mcp.NewTool("get_template",
		mcp.WithDescription("Get one workflow template by ID, including its full workflow JSON."),
		mcp.WithNumber("template_id",
			mcp.Description("Numeric template ID"),
			mcp.Required(),
		),
	)
}

func getTemplateHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetInt("template_id", 0)
		if id <= 0 {
			return toolError(fmt.Errorf("template_id is required"))
		}
		tpl, err := d.Templates.GetTemplate(int64(id))
		if err != nil {
			return toolError(err)
		}
		return toolJSON(map[string]any{
			"template": tpl,
			"workflow": json.RawMessage(tpl.Workflow),
		})
	}
}

// --- get_statistics ---

func getStatisticsTool() mcp.Tool {
	return mcp.NewTool("get_statistics",
		mcp.WithDescription("Get catalog coverage statistics: node counts by package and category, trigger/AI-tool counts and template count."),
	)
}

func getStatisticsHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := d.Stats.Stats()
		if err != nil {
			return toolError(err)
		}
		return toolJSON(stats)
	}
}

// --- helpers ---

func resolveNode(d Deps, req mcp.CallToolRequest) (*domain.NodeDefinition, error) {
	nodeType := req.GetString("node_type", "")
	if nodeType == "" {
		return nil, fmt.Errorf("node_type is required")
	}
	return d.Nodes.Resolve(nodeType)
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(fmt.Errorf("failed to encode result: %w", err))
	}
	return mcp.NewToolResultText(string(raw)), nil
}
