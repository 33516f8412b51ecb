// Package domain defines the core business entities for pincode.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - LocationSelection: The cascading country → village choice
//   - SubMode: Area-based or mandal/village-based detailed queries
//   - SearchResult: A model answer with its grounding sources
//   - AppSettings: Provider and autocomplete configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
