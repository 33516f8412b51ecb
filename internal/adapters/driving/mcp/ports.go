package mcp

import (
	"github.com/worldpincode/pincode-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls.
type Ports struct {
	// Postcode answers lookups.
	Postcode driving.PostcodeService

	// Locations lists hierarchy candidates. Optional.
	Locations driving.LocationService

	// Suggestions completes partial queries. Optional.
	Suggestions driving.SuggestionService
}

// PortsFor uses one lookup service for every port.
func PortsFor(svc driving.LookupService) *Ports {
	return &Ports{Postcode: svc, Locations: svc, Suggestions: svc}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Postcode == nil {
		return ErrMissingPostcodeService
	}
	return nil
}
