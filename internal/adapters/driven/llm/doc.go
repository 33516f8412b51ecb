// Package llm holds the reply decoding and error classification shared by
// the provider adapters in its sub-packages.
package llm
