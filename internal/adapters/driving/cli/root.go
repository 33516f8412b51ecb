package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driving"
	"github.com/worldpincode/pincode-cli/internal/logger"
)

var (
	version = "dev"

	verbose bool
	timeout time.Duration

	lookupService   driving.LookupService
	settingsService driving.SettingsService

	// lookupErr explains why lookupService is nil.
	lookupErr error
)

var rootCmd = &cobra.Command{
	Use:   "pincode",
	Short: "Find postal codes anywhere in the world",
	Long: domain.AppTitle + ` - ` + domain.AppDescription + `

Answers come from a generative model grounded with web search, so every
lookup shows the sources it relied on. Verify critical postal codes with
the official postal service.

Run 'pincode tui' for the interactive search, or 'pincode search' for a
one-off lookup.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 90*time.Second, "timeout for a single lookup")
}

// SetVersion sets the version reported by 'pincode version'.
func SetVersion(v string) {
	version = v
}

// SetServices injects the services the commands run against. When the
// lookup service could not be built, err is reported by every command
// that needs it.
func SetServices(lookup driving.LookupService, settings driving.SettingsService, err error) {
	lookupService = lookup
	settingsService = settings
	lookupErr = err
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which interactive
// commands watch for cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// requireLookup returns the lookup service or the reason it is missing.
func requireLookup() (driving.LookupService, error) {
	if lookupService != nil {
		return lookupService, nil
	}
	if lookupErr != nil {
		return nil, lookupErr
	}
	return nil, errors.New("lookup service not configured")
}
