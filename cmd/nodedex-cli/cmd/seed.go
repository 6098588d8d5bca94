package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nodedex/internal/catalog"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled node catalog into the database",
	Long: `Load the bundled node definitions and workflow templates into the
database. Seeding is skipped when the stored catalog is already at the
bundled version; --force rebuilds it anyway.

Examples:
  nodedex-cli seed
  nodedex-cli seed --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := catalog.Seed(store, logger, seedForce)
		if err != nil {
			return err
		}

		if res.Skipped {
			fmt.Println("Catalog already up to date")
			return nil
		}
		fmt.Printf("Seeded %d nodes and %d templates in %s\n",
			res.Nodes, res.Templates, res.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "reseed even when the catalog is current")
}
