package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestBuildServices_NoAPIKey(t *testing.T) {
	clearKeyEnv(t)

	lookup, settings, err := buildServices(t.TempDir())

	assert.Nil(t, lookup)
	require.NotNil(t, settings)
	assert.True(t, domain.IsConfigurationError(err))
}

func TestBuildServices_ConfiguredGemini(t *testing.T) {
	clearKeyEnv(t)
	dir := t.TempDir()

	_, settings, _ := buildServices(dir)
	require.NoError(t, settings.SetLLMProvider(domain.AIProviderGemini, "", "AIza-test-key-1234"))

	lookup, _, err := buildServices(dir)

	require.NoError(t, err)
	assert.NotNil(t, lookup)
}

func TestBuildServices_LocalOllama(t *testing.T) {
	clearKeyEnv(t)
	dir := t.TempDir()

	_, settings, _ := buildServices(dir)
	require.NoError(t, settings.Set("llm.provider", "ollama"))

	lookup, _, err := buildServices(dir)

	require.NoError(t, err)
	assert.NotNil(t, lookup)
}
