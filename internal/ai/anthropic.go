package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	providerAnthropic     = "anthropic"
	defaultAnthropicModel = "claude-3-5-haiku-latest"
	// Ответы - промпты и короткие списки, больших лимитов не нужно
	defaultAnthropicMaxTokens = 2048
)

// messageCreator is the subset of *anthropic.MessageService used by anthropicClient.
type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type anthropicClient struct {
	messages  messageCreator
	model     string
	maxTokens int64
}

// AnthropicOptions configures NewAnthropicClient.
type AnthropicOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewAnthropicClient creates a Generator backed by the Anthropic Messages API.
func NewAnthropicClient(opts AnthropicOptions) (Generator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("anthropic api key is empty")
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	client := anthropic.NewClient(reqOpts...)
	return newAnthropicClient(&client.Messages, opts.Model), nil
}

func newAnthropicClient(messages messageCreator, model string) *anthropicClient {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &anthropicClient{messages: messages, model: model, maxTokens: defaultAnthropicMaxTokens}
}

func (c *anthropicClient) Complete(ctx context.Context, prompt string) (Result, error) {
	return c.create(ctx, []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
	})
}

func (c *anthropicClient) Chat(ctx context.Context, history []Turn) (Result, error) {
	messages := make([]anthropic.MessageParam, 0, len(history))
	for _, turn := range history {
		block := anthropic.NewTextBlock(turn.Text())
		if turn.IsModel() {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}
	return c.create(ctx, messages)
}

func (c *anthropicClient) create(ctx context.Context, messages []anthropic.MessageParam) (Result, error) {
	msg, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  messages,
	})
	if err != nil {
		return Result{}, newGenerationError(providerAnthropic, err)
	}
	if msg == nil {
		return Result{}, nil
	}

	if msg.Usage.InputTokens > 0 {
		aiPromptTokens.WithLabelValues(providerAnthropic, c.model).Observe(float64(msg.Usage.InputTokens))
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return newResult(sb.String()), nil
}
