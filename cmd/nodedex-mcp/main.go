package main

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	mcpadapter "nodedex/internal/adapters/mcp"
	"nodedex/internal/adapters/sqlite"
	"nodedex/internal/application"
	"nodedex/internal/application/search"
	"nodedex/internal/application/validator"
	"nodedex/internal/catalog"
	"nodedex/internal/config"
	"nodedex/internal/logging"
)

const version = "0.1.0"

func main() {
	flags := pflag.NewFlagSet("nodedex-mcp", pflag.ExitOnError)
	flags.String("database", "", "path to the node database")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	reseed := flags.Bool("reseed", false, "rebuild the node catalog before serving")
	flags.Parse(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		fallback := logging.New("info")
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}
	cfg.ApplyFlags(flags)

	log := logging.New(cfg.LogLevel)

	store, err := sqlite.Open(cfg.DatabasePath, log)
	if err != nil {
		log.Fatal().Err(err).Str("database", cfg.DatabasePath).Msg("failed to open database")
	}
	defer store.Close()

	if cfg.AutoSeed || *reseed {
		if _, err := catalog.Seed(store, log, *reseed); err != nil {
			log.Fatal().Err(err).Msg("failed to seed catalog")
		}
	}

	deps := mcpadapter.Deps{
		Nodes:     application.NewNodeService(store),
		Search:    search.NewEngine(store, store, log),
		Validator: validator.New(),
		Catalog:   store,
		Templates: store,
		Stats:     store,
	}

	mcpServer := server.NewMCPServer(
		"nodedex-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check that returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterValidationTools(mcpServer, deps)

	log.Info().Str("database", cfg.DatabasePath).Msg("serving MCP on stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
