package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nodedex/internal/domain"
)

var (
	templatesLimit    int
	templatesExamples int
)

var templatesCmd = &cobra.Command{
	Use:   "templates [show|for|examples]",
	Short: "Browse workflow templates",
	Long: `Browse the workflow templates bundled with the catalog.

Examples:
  nodedex-cli templates show 1001
  nodedex-cli templates for slack
  nodedex-cli templates examples httpRequest`,
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <template-id>",
	Short: "Show one template with its workflow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid template id %q", args[0])
		}
		tpl, err := store.GetTemplate(id)
		if err != nil {
			return err
		}
		return printJSON(tpl)
	},
}

var templatesForCmd = &cobra.Command{
	Use:   "for <node-type>",
	Short: "List templates that use a node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := svc.Resolve(args[0])
		if err != nil {
			return err
		}
		tpls, err := store.TemplatesForNode(domain.WorkflowNodeType(def.NodeType), templatesLimit)
		if err != nil {
			return err
		}

		if len(tpls) == 0 {
			fmt.Println("No templates found")
			return nil
		}

		for _, t := range tpls {
			fmt.Printf("%d %s (%d views)\n", t.ID, t.Name, t.Views)
		}
		return nil
	},
}

var templatesExamplesCmd = &cobra.Command{
	Use:   "examples <node-type>",
	Short: "Show node configurations extracted from templates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := svc.Resolve(args[0])
		if err != nil {
			return err
		}
		examples, err := store.ExamplesForNode(domain.WorkflowNodeType(def.NodeType), templatesExamples)
		if err != nil {
			return err
		}

		if len(examples) == 0 {
			fmt.Println("No examples found")
			return nil
		}
		return printJSON(examples)
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesForCmd)
	templatesCmd.AddCommand(templatesExamplesCmd)
	templatesForCmd.Flags().IntVar(&templatesLimit, "limit", 10, "maximum number of templates")
	templatesExamplesCmd.Flags().IntVar(&templatesExamples, "limit", 3, "maximum number of examples")
}
