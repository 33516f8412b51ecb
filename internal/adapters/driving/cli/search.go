package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

var (
	searchJSON  bool
	searchPlain bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Look up postal codes for a free-text query",
	Long: `Asks the model for the postal codes matching a place, address or code.

The query can be anything a person would type: a locality, a landmark, a
partial address or a postal code to reverse.

Examples:
  pincode search "Koramangala, Bangalore"
  pincode search 90210
  pincode search --json "Paris districts"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the result as JSON")
	searchCmd.Flags().BoolVar(&searchPlain, "plain", false, "output plain text without styling")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return domain.ErrEmptyQuery
	}
	return lookupAndRender(cmd, query, searchJSON, searchPlain)
}

// lookupAndRender runs one lookup and writes the answer to the command output.
func lookupAndRender(cmd *cobra.Command, query string, asJSON, plain bool) error {
	svc, err := requireLookup()
	if err != nil {
		return lookupFailure(err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := svc.Lookup(ctx, query)
	if err != nil {
		return lookupFailure(err)
	}

	out := cmd.OutOrStdout()
	return renderResult(out, result, resolveFormat(out, asJSON, plain))
}
