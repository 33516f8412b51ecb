// Command pincode finds postal codes with a grounded generative model.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/worldpincode/pincode-cli/internal/adapters/driven/ai"
	"github.com/worldpincode/pincode-cli/internal/adapters/driven/config/file"
	"github.com/worldpincode/pincode-cli/internal/adapters/driven/storage/memory"
	"github.com/worldpincode/pincode-cli/internal/adapters/driving/cli"
	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driven"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driving"
	"github.com/worldpincode/pincode-cli/internal/core/services"
	"github.com/worldpincode/pincode-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lookup, settings, err := buildServices("")
	cli.SetServices(lookup, settings, err)
	cli.SetVersion(version)

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// buildServices wires the driven adapters into the core services. dir
// overrides ~/.pincode. A lookup service that cannot be built is reported
// as the returned error while settings stay usable, so the user can fix
// the provider configuration.
func buildServices(dir string) (driving.LookupService, *services.SettingsService, error) {
	var store driven.ConfigStore
	fileStore, err := file.NewConfigStore(dir)
	if err != nil {
		logger.Warn("Config directory unavailable, settings will not persist: %v", err)
		store = memory.NewConfigStore()
	} else {
		store = fileStore
	}

	settingsService := services.NewSettingsService(store, ai.NewConfigValidator())

	promptDir := ""
	if dir != "" {
		promptDir = dir + string(os.PathSeparator) + "prompts"
	}
	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		return nil, settingsService, fmt.Errorf("prompt store: %w", err)
	}

	appSettings, err := settingsService.Get()
	if err != nil {
		return nil, settingsService, domain.NewConfigurationError(fmt.Errorf("load settings: %w", err))
	}

	llm, err := ai.CreateLLMService(&appSettings.LLM)
	if err != nil {
		return nil, settingsService, err
	}

	return services.NewLookupService(llm, prompts, *appSettings), settingsService, nil
}
