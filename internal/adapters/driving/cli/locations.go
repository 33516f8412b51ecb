package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

var (
	locParent domain.LocationContext
	locJSON   bool
)

var locationsCmd = &cobra.Command{
	Use:   "locations <level>",
	Short: "List candidate names for one level of the location hierarchy",
	Long: `Lists the states, districts, areas, mandals or villages the model knows
for the given parent location. Countries come from a fixed list.

Levels: country, state, city (or district), area, mandal, village

Examples:
  pincode locations state --country India
  pincode locations mandal --country India --state Telangana --district Warangal
  pincode locations village --country India --state Telangana \
    --district Warangal --mandal Hanamkonda`,
	Args: cobra.ExactArgs(1),
	RunE: runLocations,
}

func init() {
	flags := locationsCmd.Flags()
	flags.StringVar(&locParent.Country, "country", "", "country")
	flags.StringVar(&locParent.State, "state", "", "state or province")
	flags.StringVar(&locParent.City, "district", "", "district or city")
	flags.StringVar(&locParent.Mandal, "mandal", "", "mandal, tehsil or taluk")
	flags.BoolVar(&locJSON, "json", false, "output as a JSON array")
	rootCmd.AddCommand(locationsCmd)
}

func runLocations(cmd *cobra.Command, args []string) error {
	level, err := domain.ParseLevel(args[0])
	if err != nil {
		return err
	}

	parent := domain.LocationContext{
		Country: strings.TrimSpace(locParent.Country),
		State:   strings.TrimSpace(locParent.State),
		City:    strings.TrimSpace(locParent.City),
		Mandal:  strings.TrimSpace(locParent.Mandal),
	}
	if !parent.Satisfies(level) {
		var need []string
		for _, a := range level.Ancestors() {
			need = append(need, "--"+levelFlag(a))
		}
		return fmt.Errorf("%w: listing %s needs %s", domain.ErrInvalidInput, level, strings.Join(need, ", "))
	}

	svc, err := requireLookup()
	if err != nil {
		return lookupFailure(err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	items := svc.ListLocations(ctx, level, parent)

	if locJSON {
		return writeJSON(cmd.OutOrStdout(), items)
	}
	if len(items) == 0 {
		cmd.Println("No locations found.")
		return nil
	}
	for _, item := range items {
		cmd.Println(item)
	}
	return nil
}
