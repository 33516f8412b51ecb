// Package mcp provides an MCP (Model Context Protocol) server adapter for pincode.
// It lets AI assistants look up postal codes and browse the location hierarchy.
package mcp

import "errors"

var (
	// ErrMissingPostcodeService is returned when the postcode service is not provided.
	ErrMissingPostcodeService = errors.New("mcp: postcode service is required")

	// ErrToolUnavailable is returned by tools whose port was not provided.
	ErrToolUnavailable = errors.New("mcp: tool not available")
)
