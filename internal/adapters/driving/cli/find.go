package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/session"
)

var (
	findValues     = map[domain.Level]*string{}
	findJSON       bool
	findPlain      bool
	findPrintQuery bool
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Look up a postal code from a structured location",
	Long: `Builds a lookup from country, state and district plus either an area
or a mandal and village.

Area search:
  pincode find --country India --state Karnataka \
    --district "Bangalore Urban" --area Koramangala

Mandal / village search:
  pincode find --country India --state Telangana --district Warangal \
    --mandal Hanamkonda --village Kazipet

Use 'pincode locations' to list valid values for each level.`,
	Args: cobra.NoArgs,
	RunE: runFind,
}

func init() {
	for _, l := range domain.AllLevels() {
		findValues[l] = new(string)
	}
	flags := findCmd.Flags()
	flags.StringVar(findValues[domain.LevelCountry], "country", "", "country")
	flags.StringVar(findValues[domain.LevelState], "state", "", "state or province")
	flags.StringVar(findValues[domain.LevelCity], "district", "", "district or city")
	flags.StringVar(findValues[domain.LevelArea], "area", "", "area or locality (area search)")
	flags.StringVar(findValues[domain.LevelMandal], "mandal", "", "mandal, tehsil or taluk (mandal search)")
	flags.StringVar(findValues[domain.LevelVillage], "village", "", "village or post office (mandal search)")
	flags.BoolVar(&findJSON, "json", false, "output the result as JSON")
	flags.BoolVar(&findPlain, "plain", false, "output plain text without styling")
	flags.BoolVar(&findPrintQuery, "print-query", false, "print the generated query without looking it up")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, _ []string) error {
	values := make(map[domain.Level]string, len(findValues))
	for l, v := range findValues {
		values[l] = strings.TrimSpace(*v)
	}

	query, err := buildFindQuery(values)
	if err != nil {
		return err
	}

	if findPrintQuery {
		cmd.Println(query)
		return nil
	}
	return lookupAndRender(cmd, query, findJSON, findPlain)
}

// buildFindQuery fills a form from flag values. Giving a mandal or village
// selects the mandal branch.
func buildFindQuery(values map[domain.Level]string) (string, error) {
	sel := domain.LocationSelection{
		Country: values[domain.LevelCountry],
		State:   values[domain.LevelState],
		City:    values[domain.LevelCity],
		Area:    values[domain.LevelArea],
		Mandal:  values[domain.LevelMandal],
		Village: values[domain.LevelVillage],
	}
	if sel.Area != "" && (sel.Mandal != "" || sel.Village != "") {
		return "", fmt.Errorf("%w: --area cannot be combined with --mandal or --village", domain.ErrInvalidInput)
	}

	form := session.FormFor(sel)
	query, ok := form.Query()
	if !ok {
		missing := form.Missing()
		flags := make([]string, len(missing))
		for i, l := range missing {
			flags[i] = "--" + levelFlag(l)
		}
		return "", fmt.Errorf("%w: %s search needs %s",
			domain.ErrInvalidInput, form.SubMode, strings.Join(flags, ", "))
	}
	return query, nil
}

// levelFlag returns the flag name used for a level.
func levelFlag(l domain.Level) string {
	if l == domain.LevelCity {
		return "district"
	}
	return l.String()
}
