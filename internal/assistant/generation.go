package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	nhatro_errors "nhatro-chat/pkg/errors"
)

const defaultGenerationEndpoint = "https://api.openai.com/v1/chat/completions"

// Turn is a single exchange in the assistant conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationClient calls an OpenAI-compatible chat completions endpoint.
type GenerationClient struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

func NewGenerationClient(apiKey, model string) *GenerationClient {
	return &GenerationClient{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultGenerationEndpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type completionRequest struct {
	Model       string  `json:"model"`
	Messages    []Turn  `json:"messages"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message Turn `json:"message"`
	} `json:"choices"`
}

// Complete sends the system prompt, the last turns of history and the user
// message, and returns the generated text. Any failure maps to
// ErrUpstreamUnavailable so callers fall through to the next tier.
func (c *GenerationClient) Complete(ctx context.Context, systemPrompt string, history []Turn, userMessage string) (string, error) {
	if c == nil || c.apiKey == "" {
		return "", nhatro_errors.ErrUpstreamUnavailable
	}

	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	messages := make([]Turn, 0, len(history)+2)
	messages = append(messages, Turn{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Turn{Role: "user", Content: userMessage})

	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", nhatro_errors.ErrUpstreamUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", nhatro_errors.ErrUpstreamUnavailable
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", nhatro_errors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", nhatro_errors.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", nhatro_errors.ErrUpstreamUnavailable, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", nhatro_errors.ErrUpstreamUnavailable
	}
	return parsed.Choices[0].Message.Content, nil
}
