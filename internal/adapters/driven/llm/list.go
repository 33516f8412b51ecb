package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/worldpincode/pincode-cli/internal/core/domain"
)

// DecodeList parses a model reply that should be a JSON array of strings.
// Markdown code fences are stripped first. An object whose only array field
// holds strings is accepted too, since JSON modes of some providers refuse
// to emit a bare array. A blank reply is an empty list.
func DecodeList(text string) ([]string, error) {
	text = stripFence(strings.TrimSpace(text))
	if text == "" {
		return []string{}, nil
	}

	var items []string
	if strings.HasPrefix(text, "{") {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
		for _, raw := range obj {
			if err := json.Unmarshal(raw, &items); err == nil {
				return items, nil
			}
		}
		return nil, fmt.Errorf("%w: object has no string array", domain.ErrMalformedResponse)
	}

	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "json")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
