package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"nodedex/internal/adapters/sqlite"
	"nodedex/internal/application"
	"nodedex/internal/application/search"
	"nodedex/internal/catalog"
	"nodedex/internal/config"
	"nodedex/internal/logging"
)

var (
	logger zerolog.Logger
	store  *sqlite.Store
	svc    *application.NodeService
	eng    *search.Engine
)

var rootCmd = &cobra.Command{
	Use:   "nodedex-cli",
	Short: "CLI for the workflow node knowledge base",
	Long: `nodedex-cli inspects the catalog of workflow automation nodes.

It provides commands to search nodes, show their schemas, validate
node configurations, and browse the workflow templates that use them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.ApplyFlags(cmd.Root().PersistentFlags())

		logger = logging.New(cfg.LogLevel)
		store, err = sqlite.Open(cfg.DatabasePath, logger)
		if err != nil {
			return err
		}
		if cfg.AutoSeed {
			if _, err := catalog.Seed(store, logger, false); err != nil {
				return err
			}
		}
		svc = application.NewNodeService(store)
		eng = search.NewEngine(store, store, logger)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	if store != nil {
		store.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("database", "d", "", "path to the node database")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
