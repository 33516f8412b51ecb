// Package tui provides an interactive terminal user interface for pincode.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/worldpincode/pincode-cli/internal/core/domain"
	"github.com/worldpincode/pincode-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports and settings the TUI runs against.
type Ports struct {
	// Lookup answers searches, lists locations and suggests completions.
	Lookup driving.LookupService

	// Settings manages application settings. Optional; the settings view
	// reports it as unavailable when nil.
	Settings driving.SettingsService

	// Autocomplete tunes the quick-search dropdown. Zero values fall back
	// to the defaults.
	Autocomplete domain.AutocompleteSettings
}

// NewPorts creates a Ports aggregate with default autocomplete settings.
func NewPorts(lookup driving.LookupService, settings driving.SettingsService) *Ports {
	return &Ports{
		Lookup:       lookup,
		Settings:     settings,
		Autocomplete: domain.DefaultAppSettings().Autocomplete,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Lookup == nil {
		return ErrMissingLookupService
	}
	return nil
}
