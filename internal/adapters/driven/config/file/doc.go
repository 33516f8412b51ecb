// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under ~/.pincode.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: Editable prompt templates with embedded defaults
package file
