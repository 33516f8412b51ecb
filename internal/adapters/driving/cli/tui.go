package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/worldpincode/pincode-cli/internal/adapters/driving/tui"
	"github.com/worldpincode/pincode-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive postal code finder.

Quick Search takes free text and suggests completions as you type.
Detailed Search walks you through country, state and district down to an
area, or a mandal and village.

Controls:
  ↑/↓      - Navigate
  Tab      - Next field
  Enter    - Search / Select
  Ctrl+T   - Switch Quick / Detailed
  m        - Switch Area / Mandal
  Esc      - Back / Cancel
  Ctrl+C   - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports, taking autocomplete tuning from settings
// when they can be read.
func tuiPorts() (*tui.Ports, error) {
	svc, err := requireLookup()
	if err != nil {
		return nil, lookupFailure(err)
	}

	ports := tui.NewPorts(svc, settingsService)
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			ports.Autocomplete = s.Autocomplete
		} else {
			logger.Warn("Using default autocomplete settings: %v", err)
		}
	}
	return ports, nil
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	ports, err := tuiPorts()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	if ctx := cmd.Context(); ctx != nil {
		app.WithContext(ctx)
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
