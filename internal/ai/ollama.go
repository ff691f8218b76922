package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const (
	providerOllama     = "ollama"
	defaultOllamaModel = "llama3.1"
)

// chatter is the subset of *api.Client used by ollamaClient.
type chatter interface {
	Chat(ctx context.Context, req *api.ChatRequest, fn api.ChatResponseFunc) error
}

// ollamaClient реализует Generator для локального Ollama.
type ollamaClient struct {
	client chatter
	model  string
}

// NewOllamaClient creates a Generator for an Ollama server at baseURL.
func NewOllamaClient(baseURL, model string, httpClient *http.Client) (Generator, error) {
	// api.NewClient ожидает URL без суффикса /v1
	baseURL = strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/v1")
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return newOllamaClient(api.NewClient(parsedURL, httpClient), model), nil
}

func newOllamaClient(client chatter, model string) *ollamaClient {
	if model == "" {
		model = defaultOllamaModel
	}
	return &ollamaClient{client: client, model: model}
}

func (c *ollamaClient) Complete(ctx context.Context, prompt string) (Result, error) {
	return c.chat(ctx, []api.Message{{Role: "user", Content: prompt}})
}

func (c *ollamaClient) Chat(ctx context.Context, history []Turn) (Result, error) {
	messages := make([]api.Message, 0, len(history))
	for _, turn := range history {
		role := "user"
		if turn.IsModel() {
			role = "assistant"
		}
		messages = append(messages, api.Message{Role: role, Content: turn.Text()})
	}
	return c.chat(ctx, messages)
}

func (c *ollamaClient) chat(ctx context.Context, messages []api.Message) (Result, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
	}

	var content strings.Builder
	var promptTokens int
	err := c.client.Chat(ctx, req, func(r api.ChatResponse) error {
		content.WriteString(r.Message.Content)
		if r.Done {
			promptTokens = r.PromptEvalCount
		}
		return nil
	})
	if err != nil {
		return Result{}, newGenerationError(providerOllama, err)
	}
	if promptTokens > 0 {
		aiPromptTokens.WithLabelValues(providerOllama, c.model).Observe(float64(promptTokens))
	}
	return newResult(content.String()), nil
}
