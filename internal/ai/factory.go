package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"prompt-refiner/internal/config"

	"go.uber.org/zap"
)

// NewGenerator создает Generator для провайдера из конфигурации и оборачивает
// его в метрики и ограничитель частоты запросов.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Generator, error) {
	httpClient := &http.Client{Timeout: cfg.AIRequestTimeout}

	var (
		g     Generator
		model string
		err   error
	)
	switch strings.ToLower(cfg.AIProvider) {
	case config.ProviderGemini:
		model = orDefault(cfg.AIModel, defaultGeminiModel)
		g, err = NewGeminiClient(ctx, GeminiOptions{
			APIKey:     cfg.AIAPIKey,
			Model:      model,
			BaseURL:    cfg.AIBaseURL,
			HTTPClient: httpClient,
		})
	case config.ProviderOpenAI:
		model = orDefault(cfg.AIModel, defaultOpenAIModel)
		g, err = NewOpenAIClient(OpenAIOptions{
			APIKey:     cfg.AIAPIKey,
			Model:      model,
			BaseURL:    cfg.AIBaseURL,
			HTTPClient: httpClient,
		})
	case config.ProviderAnthropic:
		model = orDefault(cfg.AIModel, defaultAnthropicModel)
		g, err = NewAnthropicClient(AnthropicOptions{
			APIKey:     cfg.AIAPIKey,
			Model:      model,
			BaseURL:    cfg.AIBaseURL,
			HTTPClient: httpClient,
		})
	case config.ProviderOllama:
		model = orDefault(cfg.AIModel, defaultOllamaModel)
		g, err = NewOllamaClient(cfg.OllamaURL, model, httpClient)
	default:
		return nil, fmt.Errorf("unknown AI provider: '%s'", cfg.AIProvider)
	}
	if err != nil {
		return nil, err
	}

	provider := strings.ToLower(cfg.AIProvider)
	logger.Info("Generation client created",
		zap.String("provider", provider),
		zap.String("model", model),
		zap.Duration("timeout", cfg.AIRequestTimeout),
		zap.Float64("requests_per_second", cfg.AIRequestsPerSecond),
	)

	g = WithInstrumentation(g, provider, model, logger)
	return WithRateLimit(g, provider, cfg.AIRequestsPerSecond, cfg.AIBurst), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
