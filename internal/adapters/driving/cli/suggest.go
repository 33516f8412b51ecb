package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

var suggestJSON bool

var suggestCmd = &cobra.Command{
	Use:   "suggest [partial query]",
	Short: "Suggest completions for a partial query",
	Long: `Returns a few autocomplete suggestions for a partially typed query,
the same ones the interactive search shows while you type.

With no argument, prints example queries.`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output as a JSON array")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	partial := strings.TrimSpace(strings.Join(args, " "))

	var items []string
	if partial == "" {
		items = domain.SuggestedQueries()
	} else {
		svc, err := requireLookup()
		if err != nil {
			return lookupFailure(err)
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		items = svc.QuickSuggestions(ctx, partial)
	}

	if suggestJSON {
		return writeJSON(cmd.OutOrStdout(), items)
	}
	for _, item := range items {
		cmd.Println(item)
	}
	return nil
}
