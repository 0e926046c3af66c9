// Package llm provides text-generation adapters.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"faqdesk/internal/domain/entities"
	"faqdesk/internal/domain/ports"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"

	// Low temperature keeps replies close to the grounding context.
	chatTemperature = 0.4
)

// OpenAIAdapter implements ports.LLMService against an OpenAI-compatible
// chat completions endpoint. Failures are wrapped into the ports error
// classes so callers can tell auth from rate limiting from outages.
type OpenAIAdapter struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

// NewOpenAIAdapter creates a new chat completions adapter.
func NewOpenAIAdapter(baseURL, model, apiKey string) *OpenAIAdapter {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// chatMessage is one turn in the chat completions request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the chat completions API request.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the chat completions API response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the message sequence and returns the model's reply.
func (a *OpenAIAdapter) Complete(ctx context.Context, messages []entities.ChatMessage) (string, error) {
	reqBody := chatRequest{
		Model:       a.model,
		Temperature: chatTemperature,
		Messages:    make([]chatMessage, len(messages)),
	}
	for i, m := range messages {
		reqBody.Messages[i] = chatMessage{Role: m.Role, Content: m.Content}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: status %d", ports.ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: status %d", ports.ErrRateLimited, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d", ports.ErrUnavailable, resp.StatusCode)
	}

	var genResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ports.ErrMalformedReply, err)
	}
	if len(genResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ports.ErrMalformedReply)
	}

	return strings.TrimSpace(genResp.Choices[0].Message.Content), nil
}
