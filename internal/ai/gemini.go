package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

const (
	providerGemini     = "gemini"
	defaultGeminiModel = "gemini-2.0-flash"
)

// contentGenerator is the subset of *genai.Models used by geminiClient.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// geminiClient реализует Generator через Google Gen AI SDK.
type geminiClient struct {
	models contentGenerator
	model  string
}

// GeminiOptions configures NewGeminiClient.
type GeminiOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// NewGeminiClient creates a Generator backed by the Gemini API.
func NewGeminiClient(ctx context.Context, opts GeminiOptions) (Generator, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	clientCfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newGeminiClient(client.Models, opts.Model), nil
}

func newGeminiClient(models contentGenerator, model string) *geminiClient {
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiClient{models: models, model: model}
}

func (c *geminiClient) Complete(ctx context.Context, prompt string) (Result, error) {
	return c.generate(ctx, genai.Text(prompt))
}

func (c *geminiClient) Chat(ctx context.Context, history []Turn) (Result, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := RoleUser
		if turn.IsModel() {
			role = RoleModel
		}
		parts := make([]*genai.Part, 0, len(turn.Parts))
		for _, p := range turn.Parts {
			parts = append(parts, genai.NewPartFromText(p.Text))
		}
		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}
	return c.generate(ctx, contents)
}

func (c *geminiClient) generate(ctx context.Context, contents []*genai.Content) (Result, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return Result{}, newGenerationError(providerGemini, err)
	}
	if resp == nil {
		return Result{}, nil
	}
	return newResult(resp.Text()), nil
}
