package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"

	"faqdesk/internal/domain/entities"
	"faqdesk/internal/domain/ports"
)

const defaultOllamaModel = "llama3.2"

// OllamaAdapter implements ports.LLMService against a local Ollama server.
// No credential is required; the host comes from config or OLLAMA_HOST.
type OllamaAdapter struct {
	client *api.Client
	model  string
}

// NewOllamaAdapter creates a new Ollama chat adapter.
func NewOllamaAdapter(host, model string) (*OllamaAdapter, error) {
	hostURL := envconfig.Host()
	if host != "" {
		u, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("parsing ollama host: %w", err)
		}
		hostURL = u
	}
	if model == "" {
		model = defaultOllamaModel
	}

	return &OllamaAdapter{
		client: api.NewClient(hostURL, http.DefaultClient),
		model:  model,
	}, nil
}

// Complete sends the message sequence through Ollama's chat API.
func (a *OllamaAdapter) Complete(ctx context.Context, messages []entities.ChatMessage) (string, error) {
	req := api.ChatRequest{
		Model:    a.model,
		Messages: make([]api.Message, len(messages)),
		Stream:   new(bool), // single response
		Options: map[string]any{
			"temperature": chatTemperature,
		},
	}
	for i, m := range messages {
		req.Messages[i] = api.Message{Role: m.Role, Content: m.Content}
	}

	var reply strings.Builder
	err := a.client.Chat(ctx, &req, func(resp api.ChatResponse) error {
		_, err := reply.WriteString(resp.Message.Content)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrUnavailable, err)
	}

	return strings.TrimSpace(reply.String()), nil
}
