package ai

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// instrumented records metrics and logs around every provider call.
type instrumented struct {
	next     Generator
	provider string
	model    string
	logger   *zap.Logger
}

// WithInstrumentation wraps g with Prometheus metrics and zap logging.
func WithInstrumentation(g Generator, provider, model string, logger *zap.Logger) Generator {
	return &instrumented{next: g, provider: provider, model: model, logger: logger}
}

func (i *instrumented) Complete(ctx context.Context, prompt string) (Result, error) {
	start := time.Now()
	res, err := i.next.Complete(ctx, prompt)
	i.observe("complete", start, res, err, zap.Int("prompt_bytes", len(prompt)))
	return res, err
}

func (i *instrumented) Chat(ctx context.Context, history []Turn) (Result, error) {
	start := time.Now()
	res, err := i.next.Chat(ctx, history)
	i.observe("chat", start, res, err, zap.Int("turns", len(history)))
	return res, err
}

func (i *instrumented) observe(operation string, start time.Time, res Result, err error, extra zap.Field) {
	duration := time.Since(start)
	status := statusOK
	switch {
	case err != nil:
		status = statusError
	case res.Empty():
		status = statusEmpty
	}

	aiRequestsTotal.WithLabelValues(i.provider, i.model, operation, status).Inc()
	aiRequestDuration.WithLabelValues(i.provider, i.model, operation).Observe(duration.Seconds())

	fields := []zap.Field{
		zap.String("operation", operation),
		zap.String("status", status),
		zap.Duration("duration", duration),
		extra,
	}
	switch status {
	case statusError:
		i.logger.Error("Generation request failed", append(fields, zap.Error(err))...)
	case statusEmpty:
		i.logger.Warn("Generation returned no text", fields...)
	default:
		i.logger.Debug("Generation completed", append(fields, zap.Int("response_bytes", len(res.Text)))...)
	}
}
