// Package genai wraps the external text-generation service that turns
// team-written prompts into runnable code. The service is a black box to
// the rest of the system: a prompt goes in, code or a typed error comes
// out, and no game state is touched on the way.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wajih79/kia-python-game/internal/domain"
)

// Generator produces code from a natural-language prompt. SeedData carries
// any fixed inputs (variable values, lists) the generated code must use.
type Generator interface {
	Generate(ctx context.Context, promptText, contextDescription, seedData string) (string, error)
}

// Config holds the connection settings for the generation API.
type Config struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// HTTPClient calls an OpenAI-style chat-completions endpoint.
type HTTPClient struct {
	cfg    Config
	client *http.Client
}

func NewHTTPClient(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

const systemInstruction = "You write short Python scripts. Respond with code only, no explanations."

// Generate sends the prompt and returns the sanitized code. Every failure
// mode wraps domain.ErrGenerationFailed so callers surface one generic
// message and teams can simply retry.
func (c *HTTPClient) Generate(ctx context.Context, promptText, contextDescription, seedData string) (string, error) {
	user := promptText
	if contextDescription != "" {
		user = contextDescription + "\n\n" + user
	}
	if seedData != "" {
		user += "\n\nUse these values:\n" + seedData
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", domain.ErrGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", domain.ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrGenerationFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrGenerationFailed, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrGenerationFailed, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrGenerationFailed, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", domain.ErrGenerationFailed)
	}

	return Sanitize(parsed.Choices[0].Message.Content), nil
}
