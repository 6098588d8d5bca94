package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nodedex/internal/application/search"
)

var (
	searchMode     string
	searchSource   string
	searchLimit    int
	searchExamples bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the node catalog",
	Long: `Search nodes by type, name, description, or category.

Results are ranked by relevance. OR mode matches any term, AND requires
every term, FUZZY tolerates typos.

Examples:
  nodedex-cli search slack
  nodedex-cli search "http request" --mode AND
  nodedex-cli search slak --mode FUZZY --source core`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := eng.Search(args[0], search.Options{
			Mode:            search.ParseMode(searchMode),
			Source:          search.ParseSource(searchSource),
			Limit:           searchLimit,
			IncludeExamples: searchExamples,
		})
		if err != nil {
			return err
		}

		if len(resp.Results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range resp.Results {
			fmt.Printf("[%s] %s %s\n", r.Relevance, r.NodeType, r.DisplayName)
			for _, e := range r.Examples {
				fmt.Printf("      e.g. %s (%d views)\n", e.TemplateName, e.Views)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchMode, "mode", "OR", "match mode (OR, AND, FUZZY)")
	searchCmd.Flags().StringVar(&searchSource, "source", "all", "node source (all, core, community, verified)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchExamples, "examples", false, "include configurations from popular templates")
}
