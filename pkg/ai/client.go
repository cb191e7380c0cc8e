package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ServiceGenerator talks to the internal ai-service chat endpoint.
type ServiceGenerator struct {
	BaseURL string
	HTTP    *http.Client
	log     zerolog.Logger
}

func NewServiceGenerator(baseURL string, timeout time.Duration, log zerolog.Logger) *ServiceGenerator {
	if baseURL == "" {
		baseURL = "http://ai-service:8000"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ServiceGenerator{BaseURL: baseURL, HTTP: &http.Client{Timeout: timeout}, log: log}
}

type chatRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

type chatResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

func (c *ServiceGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return c.chat(ctx, prompt)
}

// GenerateJSON appends the JSON Schema to the prompt and returns the JSON
// object found in the reply.
func (c *ServiceGenerator) GenerateJSON(ctx context.Context, prompt string, schema *Schema) (string, error) {
	schemaBytes, err := json.Marshal(schema.JSONSchema())
	if err != nil {
		return "", err
	}
	input := prompt +
		"\n\nRespond with ONLY a single JSON object that conforms to the JSON Schema below. Do NOT include explanatory text, backticks or code fences." +
		"\n\nJSON-SCHEMA:\n" + string(schemaBytes)

	out, err := c.chat(ctx, input)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", nil
	}
	obj, err := ExtractJSONObject(out)
	if err != nil {
		return "", fmt.Errorf("ai-service returned non-json content: %w", err)
	}
	return obj, nil
}

func (c *ServiceGenerator) chat(ctx context.Context, input string) (string, error) {
	b, err := json.Marshal(chatRequest{Agent: "auto", Input: input})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/chat", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	c.log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(rb)).
		Dur("took", time.Since(start)).
		Msg("ai-service chat response")

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai-service returned non-200 status: %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(rb, &chatResp); err != nil {
		return "", fmt.Errorf("decode ai-service response: %w", err)
	}
	return chatResp.Output, nil
}
