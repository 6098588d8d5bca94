package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var propertiesMax int

var propertiesCmd = &cobra.Command{
	Use:   "properties <node-type> <query>",
	Short: "Search a node's properties by name",
	Long: `Search the properties of a node, including those nested inside
collections. Matches are reported with their full dotted path.

Examples:
  nodedex-cli properties httpRequest auth
  nodedex-cli properties googleSheets sheet`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		matches, err := svc.SearchProperties(args[0], args[1], propertiesMax)
		if err != nil {
			return err
		}

		if len(matches) == 0 {
			fmt.Println("No matching properties")
			return nil
		}

		for _, m := range matches {
			fmt.Printf("%-48s %-18s %s\n", m.Path, m.Type, m.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(propertiesCmd)
	propertiesCmd.Flags().IntVar(&propertiesMax, "max", 20, "maximum number of matches")
}
