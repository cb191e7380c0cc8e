package ai

import (
	"context"
	"errors"
	"strings"
)

// Generator is a generative-AI completion backend.
type Generator interface {
	// Generate returns the free-text completion for prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateJSON returns a completion that is itself a JSON document
	// conforming to schema.
	GenerateJSON(ctx context.Context, prompt string, schema *Schema) (string, error)
}

var ErrNoJSON = errors.New("response contains no JSON object")

// ExtractJSONObject returns the JSON object embedded in s. Code fences are
// stripped first; failing that the text from the first '{' to the last '}'
// is used.
func ExtractJSONObject(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", ErrNoJSON
	}
	return s[start : end+1], nil
}
