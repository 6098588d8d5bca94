package cmd

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <node-type>",
	Short: "Show a node's full definition",
	Long: `Show the complete definition of a node: properties, operations,
credentials, and metadata.

The node type is resolved case-insensitively and accepts the short name,
the internal prefix, or the workflow prefix.

Examples:
  nodedex-cli show slack
  nodedex-cli show nodes-base.httpRequest
  nodedex-cli show loom-nodes-base.webhook`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := svc.Resolve(args[0])
		if err != nil {
			return err
		}
		return printJSON(def)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
