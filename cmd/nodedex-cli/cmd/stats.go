package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	Long: `Show counts of stored nodes and templates, broken down by package
and category.

Example:
  nodedex-cli stats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Stats()
		if err != nil {
			return err
		}

		fmt.Printf("nodes:      %d\n", s.TotalNodes)
		fmt.Printf("triggers:   %d\n", s.TriggerNodes)
		fmt.Printf("webhooks:   %d\n", s.WebhookNodes)
		fmt.Printf("ai tools:   %d\n", s.AITools)
		fmt.Printf("versioned:  %d\n", s.VersionedNodes)
		fmt.Printf("templates:  %d\n", s.Templates)
		fmt.Printf("full-text:  %v\n", s.FTSEnabled)

		fmt.Println("\nby package:")
		for _, pkg := range sortedKeys(s.ByPackage) {
			fmt.Printf("  %-32s %d\n", pkg, s.ByPackage[pkg])
		}
		fmt.Println("\nby category:")
		for _, cat := range sortedKeys(s.ByCategory) {
			fmt.Printf("  %-32s %d\n", cat, s.ByCategory[cat])
		}
		return nil
	},
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
