// Package prompts provides the externalized narrative prompt templates.
// Templates are stored as JSON and embedded at compile time.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "embed"
)

//go:embed narrative.json
var promptFile []byte

var loadOnce = sync.OnceValues(func() (map[string]string, error) {
	var prompts map[string]string
	if err := json.Unmarshal(promptFile, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse embedded prompt file: %w", err)
	}
	return prompts, nil
})

// Get retrieves a prompt template by key.
func Get(key string) (string, error) {
	prompts, err := loadOnce()
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return prompt, nil
}

// MustGet retrieves a prompt template by key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(key string) string {
	prompt, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces template placeholders in the form {{.Key}} with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}
