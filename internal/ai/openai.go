package ai

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	openaigo "github.com/sashabaranov/go-openai"
)

const (
	providerOpenAI     = "openai"
	defaultOpenAIModel = openaigo.GPT4oMini
)

// chatCompleter is the subset of *openaigo.Client used by openAIClient.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openaigo.ChatCompletionRequest) (openaigo.ChatCompletionResponse, error)
}

// openAIClient реализует Generator для OpenAI-совместимых API.
type openAIClient struct {
	client chatCompleter
	model  string

	encOnce sync.Once
	enc     *tiktoken.Tiktoken
}

// OpenAIOptions configures NewOpenAIClient.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string // пусто - api.openai.com
	HTTPClient *http.Client
}

// NewOpenAIClient creates a Generator for any OpenAI-compatible chat completions endpoint.
func NewOpenAIClient(opts OpenAIOptions) (Generator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("openai api key is empty")
	}
	openaiConfig := openaigo.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		openaiConfig.BaseURL = opts.BaseURL
	}
	if opts.HTTPClient != nil {
		openaiConfig.HTTPClient = opts.HTTPClient
	}
	return newOpenAIClient(openaigo.NewClientWithConfig(openaiConfig), opts.Model), nil
}

func newOpenAIClient(client chatCompleter, model string) *openAIClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &openAIClient{client: client, model: model}
}

func (c *openAIClient) Complete(ctx context.Context, prompt string) (Result, error) {
	return c.create(ctx, []openaigo.ChatCompletionMessage{
		{Role: openaigo.ChatMessageRoleUser, Content: prompt},
	})
}

func (c *openAIClient) Chat(ctx context.Context, history []Turn) (Result, error) {
	messages := make([]openaigo.ChatCompletionMessage, 0, len(history))
	for _, turn := range history {
		role := openaigo.ChatMessageRoleUser
		if turn.IsModel() {
			role = openaigo.ChatMessageRoleAssistant
		}
		messages = append(messages, openaigo.ChatCompletionMessage{Role: role, Content: turn.Text()})
	}
	return c.create(ctx, messages)
}

func (c *openAIClient) create(ctx context.Context, messages []openaigo.ChatCompletionMessage) (Result, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return Result{}, newGenerationError(providerOpenAI, err)
	}

	promptTokens := resp.Usage.PromptTokens
	if promptTokens == 0 {
		promptTokens = c.estimateTokens(messages)
	}
	if promptTokens > 0 {
		aiPromptTokens.WithLabelValues(providerOpenAI, c.model).Observe(float64(promptTokens))
	}

	if len(resp.Choices) == 0 {
		return Result{}, nil
	}
	return newResult(resp.Choices[0].Message.Content), nil
}

// estimateTokens считает токены промпта локально, если API не вернул usage.
// Возвращает 0, если кодировщик для модели недоступен.
func (c *openAIClient) estimateTokens(messages []openaigo.ChatCompletionMessage) int {
	c.encOnce.Do(func() {
		enc, err := tiktoken.EncodingForModel(c.model)
		if err != nil {
			enc, err = tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
		}
		if err == nil {
			c.enc = enc
		}
	})
	if c.enc == nil {
		return 0
	}
	total := 0
	for _, m := range messages {
		total += len(c.enc.Encode(m.Content, nil, nil))
	}
	return total
}
