package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs <node-type>",
	Short: "Show a node's documentation",
	Long: `Print the markdown documentation for a node.

Example:
  nodedex-cli docs httpRequest`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := svc.Documentation(args[0])
		if err != nil {
			return err
		}
		if docs == "" {
			fmt.Println("No documentation available")
			return nil
		}
		fmt.Println(docs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
