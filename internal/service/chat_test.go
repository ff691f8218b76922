package service_test

import (
	"context"
	"errors"
	"testing"

	"prompt-refiner/internal/ai"
	"prompt-refiner/internal/mocks"
	"prompt-refiner/internal/models"
	"prompt-refiner/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chatHistory() []ai.Turn {
	return []ai.Turn{
		{Role: ai.RoleUser, Parts: []ai.Part{{Text: "Hi"}}},
		{Role: ai.RoleModel, Parts: []ai.Part{{Text: "Hello! How can I help?"}}},
		{Role: ai.RoleUser, Parts: []ai.Part{{Text: "Tell me a joke"}}},
	}
}

func TestRespond_ForwardsHistoryInOrder(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	svc := service.NewChatService(gen, zap.NewNop())
	history := chatHistory()

	gen.On("Chat", mock.Anything, history).Return(ai.Result{Text: "Why did the gopher..."}, nil).Once()

	reply, err := svc.Respond(context.Background(), history)
	require.NoError(t, err)
	assert.Equal(t, "Why did the gopher...", reply)
}

func TestRespond_EmptyHistoryRejectedBeforeCall(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	svc := service.NewChatService(gen, zap.NewNop())

	_, err := svc.Respond(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrEmptyHistory)
	assert.True(t, models.IsValidationError(err))
	gen.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
}

func TestRespond_EmptyResultFallback(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	svc := service.NewChatService(gen, zap.NewNop())

	gen.On("Chat", mock.Anything, mock.Anything).Return(ai.Result{}, nil).Once()

	reply, err := svc.Respond(context.Background(), chatHistory())
	require.NoError(t, err)
	assert.Equal(t, service.NoResponseText, reply)
}

func TestRespond_ProviderFailure(t *testing.T) {
	gen := mocks.NewMockGenerator(t)
	svc := service.NewChatService(gen, zap.NewNop())

	gen.On("Chat", mock.Anything, mock.Anything).
		Return(ai.Result{}, &ai.GenerationError{Provider: "gemini", Err: errors.New("quota")}).Once()

	_, err := svc.Respond(context.Background(), chatHistory())
	assert.ErrorIs(t, err, models.ErrGenerationFailed)
	assert.False(t, models.IsValidationError(err))
}
