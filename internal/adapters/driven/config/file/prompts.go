package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/worldpincode/pincode-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptLookup: `Find the exact and accurate postal code/pincode for: "{{.Query}}".

Strict Data Accuracy Rules:
1. **Accuracy is paramount.** If the location is in India, ensure the Pincode matches the official Department of Posts data.
2. If the query specifies a Village or Mandal, return the specific Pincode for that locality, not just the District code.
3. Clearly state the hierarchy: Country -> State -> District -> Tehsil/Mandal -> Village.
4. If multiple pincodes apply to a city, list them broken down by area (e.g., "Bangalore North: 5600XX").
5. Present the data in a clean, easy-to-read table or bullet list using Markdown.`,

	driven.PromptListStates: `List the all official States and Union Territories of {{.Country}}. Return only a clean JSON array of names.`,

	driven.PromptListCities: `List the all administrative Districts (or major Cities if districts are not applicable) in {{.State}}, {{.Country}}. Return only a clean JSON array of names.`,

	driven.PromptListAreas: `List the major localities, areas, or neighborhoods within {{.City}}, {{.State}}. Return only a clean JSON array of names.`,

	driven.PromptListMandals: `List the all Mandals, Tehsils, Taluks, or Administrative Blocks in the {{.City}} district of {{.State}}, {{.Country}}. Return only a clean JSON array of names.`,

	driven.PromptListVillages: `List the significant Villages, Towns, or Post Office locations in {{.Mandal}} (Mandal/Tehsil), {{.City}} District, {{.State}}. Return only a clean JSON array of names.`,

	driven.PromptSuggest: `List {{.Limit}} valid geographical locations or pincode queries starting with "{{.Query}}".
Return only a JSON array of strings.`,
}

// DefaultPrompt returns the embedded template for name.
func DefaultPrompt(name string) (string, bool) {
	p, ok := defaultPrompts[name]
	return p, ok
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.pincode/prompts/.
//
// The constructor does not perform any I/O.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Falls back to the embedded default if the file is missing or empty.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// No lock held during I/O
	prompt, err := s.loadFromFile(name)
	if err != nil || prompt == "" {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		if err == nil {
			err = os.ErrNotExist
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+".txt"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	var b strings.Builder
	b.WriteString("# Pincode Prompts\n\n")
	b.WriteString("Each file holds the prompt sent to the model for one request kind.\n\n")
	b.WriteString("## Files\n\n")
	for _, name := range driven.AllPromptNames() {
		fmt.Fprintf(&b, "- `%s.txt`\n", name)
	}
	b.WriteString(`
## Placeholders

Prompts are Go text/template templates. Available fields:

- ` + "`{{.Query}}`" + ` - the search text or partial query
- ` + "`{{.Country}}`, `{{.State}}`, `{{.City}}`, `{{.Mandal}}`" + ` - the selected locations
- ` + "`{{.Limit}}`" + ` - the number of suggestions wanted

Delete a file to restore its default on the next run.
`)
	return os.WriteFile(path, []byte(b.String()), 0600)
}
