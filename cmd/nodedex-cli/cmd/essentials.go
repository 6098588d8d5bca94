package cmd

import (
	"github.com/spf13/cobra"
)

var essentialsCmd = &cobra.Command{
	Use:   "essentials <node-type>",
	Short: "Show a node's required and commonly used properties",
	Long: `Show a condensed view of a node: required properties, the most
commonly configured optional ones, and the operations it supports.

Example:
  nodedex-cli essentials httpRequest`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ess, err := svc.Essentials(args[0])
		if err != nil {
			return err
		}
		return printJSON(ess)
	},
}

func init() {
	rootCmd.AddCommand(essentialsCmd)
}
