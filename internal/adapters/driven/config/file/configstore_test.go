package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("llm.provider")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("llm.provider", "gemini"))
	require.NoError(t, store.Set("autocomplete.min_chars", 3))
	require.NoError(t, store.Set("llm.google_search", true))
	require.NoError(t, store.Set("rate_limit.rps", 1.5))

	assert.Equal(t, "gemini", store.GetString("llm.provider"))
	assert.Equal(t, 3, store.GetInt("autocomplete.min_chars"))
	assert.True(t, store.GetBool("llm.google_search"))
	assert.InDelta(t, 1.5, store.GetFloat("rate_limit.rps"), 1e-9)

	// Wrong types read as zero values
	assert.Empty(t, store.GetString("autocomplete.min_chars"))
	assert.Zero(t, store.GetInt("llm.provider"))
	assert.False(t, store.GetBool("llm.provider"))
	assert.Zero(t, store.GetFloat("llm.provider"))

	// Missing keys too
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
}

func TestConfigStore_GetFloatWidensIntegers(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("rate_limit.rps", 2))

	reloaded, err := NewConfigStore(filepath.Dir(store.Path()))
	require.NoError(t, err)

	assert.InDelta(t, 2.0, reloaded.GetFloat("rate_limit.rps"), 1e-9)
}

func TestConfigStore_Durations(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("autocomplete.debounce", 250*time.Millisecond))
	require.NoError(t, store.Set("bad", "soon"))

	assert.Equal(t, "250ms", store.GetString("autocomplete.debounce"))
	assert.Equal(t, 250*time.Millisecond, store.GetDuration("autocomplete.debounce"))
	assert.Zero(t, store.GetDuration("bad"))
	assert.Zero(t, store.GetDuration("missing"))
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("llm.provider", "ollama"))
	require.NoError(t, store.Set("llm.base_url", "http://localhost:11434"))
	require.NoError(t, store.Set("autocomplete.max_suggestions", 5))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[llm]")
	assert.Contains(t, string(raw), "[autocomplete]")

	reloaded, err := NewConfigStore(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Equal(t, "ollama", reloaded.GetString("llm.provider"))
	assert.Equal(t, "http://localhost:11434", reloaded.GetString("llm.base_url"))
	assert.Equal(t, 5, reloaded.GetInt("autocomplete.max_suggestions"))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[llm]
provider = "openai"
model = "gpt-4o"

[autocomplete]
debounce = "500ms"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, "gpt-4o", store.GetString("llm.model"))
	assert.Equal(t, 500*time.Millisecond, store.GetDuration("autocomplete.debounce"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("llm.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("llm.model", "x"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("llm.model", "y"))
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("valid", "data"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestConfigStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "k.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 7, store.GetInt("k.key7"))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a.b":   1,
		"a.c.d": "x",
		"top":   true,
	})

	assert.Equal(t, map[string]any{
		"a":   map[string]any{"b": 1, "c": map[string]any{"d": "x"}},
		"top": true,
	}, nested)
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"llm": map[string]any{"provider": "gemini"},
		"x":   1,
	}, "")

	assert.Equal(t, map[string]any{"llm.provider": "gemini", "x": 1}, flat)
}
