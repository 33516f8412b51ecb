// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - LLMService: Gemini, OpenAI or Ollama answering lookups and listings
//   - LLMFactory: Builds an LLMService from settings
//   - AIConfigValidator: Pings a provider to check credentials
//   - PromptStore: User-editable prompt templates
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
