package service

import (
	"context"
	"fmt"

	"prompt-refiner/internal/ai"
	"prompt-refiner/internal/models"

	"go.uber.org/zap"
)

// NoResponseText is returned when the model answers a chat with no usable text.
const NoResponseText = "No response from AI."

// ChatService forwards a client-held conversation to the model. Nothing is kept between calls.
type ChatService interface {
	Respond(ctx context.Context, history []ai.Turn) (string, error)
}

var _ ChatService = (*chatServiceImpl)(nil)

type chatServiceImpl struct {
	generator ai.Generator
	logger    *zap.Logger
}

func NewChatService(generator ai.Generator, logger *zap.Logger) ChatService {
	return &chatServiceImpl{
		generator: generator,
		logger:    logger.Named("ChatService"),
	}
}

func (s *chatServiceImpl) Respond(ctx context.Context, history []ai.Turn) (string, error) {
	if len(history) == 0 {
		return "", models.ErrEmptyHistory
	}

	res, err := s.generator.Chat(ctx, history)
	if err != nil {
		s.logger.Error("Chat generation failed", zap.Int("turns", len(history)), zap.Error(err))
		return "", fmt.Errorf("chat with %d turns: %w", len(history), err)
	}
	if res.Empty() {
		s.logger.Warn("Provider returned empty chat response", zap.Int("turns", len(history)))
	}
	return res.TextOr(NoResponseText), nil
}
