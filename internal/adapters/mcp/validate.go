package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"nodedex/internal/application/validator"
	"nodedex/internal/domain"
)

// RegisterValidationTools adds the configuration validation tools to the
// MCP server.
func RegisterValidationTools(s *server.MCPServer, d Deps) {
	s.AddTool(validateNodeTool(), validateNodeHandler(d))
	s.AddTool(validateNodeMinimalTool(), validateNodeMinimalHandler(d))
}

// --- validate_node ---

func validateNodeTool() mcp.Tool {
	return mcp.NewTool("validate_node",
		mcp.WithDescription("Validate a node configuration against its schema. Reports missing required fields, type mismatches, deprecated usage, embedded secrets and improvement suggestions."),
		mcp.WithString("node_type",
			mcp.Description("Node type in any accepted spelling"),
			mcp.Required(),
		),
		mcp.WithObject("config",
			mcp.Description("The node parameters to validate, as they would appear in a workflow"),
			mcp.Required(),
		),
		mcp.WithString("mode",
			mcp.Description("Validation depth: minimal (required fields only), operation (scoped to the active resource/operation) or full (default)"),
			mcp.Enum("minimal", "operation", "full"),
		),
		mcp.WithString("profile",
			mcp.Description("Advisory verbosity: minimal, runtime, ai-friendly (default) or strict. Never changes validity."),
			mcp.Enum("minimal", "runtime", "ai-friendly", "strict"),
		),
		mcp.WithNumber("version",
			mcp.Description("Node type version the workflow pins; defaults to the typeVersion in config, then 1"),
		),
	)
}

func validateNodeHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		def, err := resolveNode(d, req)
		if err != nil {
			return toolError(err)
		}
		cfg, err := configArg(req)
		if err != nil {
			return toolError(err)
		}
		mode, err := domain.ParseMode(req.GetString("mode", ""))
		if err != nil {
			return toolError(err)
		}
		profile, err := domain.ParseProfile(req.GetString("profile", ""))
		if err != nil {
			return toolError(err)
		}

		result := d.Validator.Validate(validator.Request{
			NodeType:   def.NodeType,
			Version:    req.GetFloat("version", 0),
			Config:     cfg,
			Properties: def.Properties,
			Mode:       mode,
			Profile:    profile,
		})
		return toolJSON(map[string]any{
			"nodeType":    def.NodeType,
			"displayName": def.DisplayName,
			"mode":        mode,
			"profile":     profile,
			"result":      result,
		})
	}
}

// --- validate_node_minimal ---

func validateNodeMinimalTool() mcp.Tool {
	return mcp.NewTool("validate_node_minimal",
		mcp.WithDescription("Fast required-fields check. Returns only the list of missing required properties, honoring visibility rules."),
		mcp.WithString("node_type",
			mcp.Description("Node type in any accepted spelling"),
			mcp.Required(),
		),
		mcp.WithObject("config",
			mcp.Description("The node parameters to check"),
			mcp.Required(),
		),
	)
}

func validateNodeMinimalHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		def, err := resolveNode(d, req)
		if err != nil {
			return toolError(err)
		}
		cfg, err := configArg(req)
		if err != nil {
			return toolError(err)
		}

		result := d.Validator.ValidateMinimal(def.NodeType, cfg, def.Properties)
		return toolJSON(map[string]any{
			"nodeType": def.NodeType,
			"result":   result,
		})
	}
}

// configArg reads the config object argument. A missing config validates as
// an empty configuration; a non-object is an error.
func configArg(req mcp.CallToolRequest) (*domain.Config, error) {
	raw, ok := req.GetArguments()["config"]
	if !ok || raw == nil {
		return domain.NewConfig(), nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config must be a JSON object")
	}
	return domain.ConfigFromAny(m), nil
}
