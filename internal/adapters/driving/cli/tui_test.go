package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Contains(t, tuiCmd.Long, "Detailed Search")
}

func TestTUIPorts_UsesAutocompleteSettings(t *testing.T) {
	settings := newMockSettingsService()
	settings.settings.Autocomplete.Debounce = 450 * time.Millisecond
	settings.settings.Autocomplete.MinChars = 4
	withServices(t, &mockLookupService{}, settings, nil)

	ports, err := tuiPorts()

	require.NoError(t, err)
	assert.Equal(t, 450*time.Millisecond, ports.Autocomplete.Debounce)
	assert.Equal(t, 4, ports.Autocomplete.MinChars)
	assert.Same(t, settings, ports.Settings)
}

func TestTUIPorts_SettingsFailureUsesDefaults(t *testing.T) {
	settings := newMockSettingsService()
	settings.getErr = errors.New("corrupt config")
	withServices(t, &mockLookupService{}, settings, nil)

	ports, err := tuiPorts()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings().Autocomplete, ports.Autocomplete)
}

func TestTUIPorts_NoLookupService(t *testing.T) {
	withServices(t, nil, nil, domain.NewConfigurationError(errors.New("no key")))

	_, err := tuiPorts()

	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestMCPServeCmd_NoLookupService(t *testing.T) {
	withServices(t, nil, nil, errors.New("no provider"))

	_, err := execute(t, "mcp", "serve")

	assert.EqualError(t, err, "no provider")
}
