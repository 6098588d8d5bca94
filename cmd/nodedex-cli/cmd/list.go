package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nodedex/internal/ports"
)

var (
	listPackage  string
	listCategory string
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List nodes in the catalog",
	Long: `List node summaries, optionally filtered by package or category.

Examples:
  nodedex-cli list
  nodedex-cli list --category trigger
  nodedex-cli list --package loom-nodes-base --limit 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, err := store.ListNodes(ports.NodeFilter{
			Package:  listPackage,
			Category: listCategory,
			Limit:    listLimit,
		})
		if err != nil {
			return err
		}

		if len(nodes) == 0 {
			fmt.Println("No nodes found")
			return nil
		}

		for _, n := range nodes {
			fmt.Printf("[%s] %s %s\n", n.PackageName, n.NodeType, n.DisplayName)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listPackage, "package", "", "filter by package name")
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of rows (0 for all)")
}
