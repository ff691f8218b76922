package ai

import (
	"context"
	"errors"
	"testing"

	"prompt-refiner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {
	assert.True(t, newResult("  \n").Empty())
	assert.Equal(t, "fallback", newResult("").TextOr("fallback"))

	r := newResult("  text \n")
	assert.False(t, r.Empty())
	assert.Equal(t, "text", r.Text)
	assert.Equal(t, "text", r.TextOr("fallback"))
}

func TestGenerationError(t *testing.T) {
	cause := context.DeadlineExceeded
	err := newGenerationError(providerGemini, cause)

	assert.ErrorIs(t, err, models.ErrGenerationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, providerGemini, genErr.Provider)
	assert.Contains(t, err.Error(), "gemini")
}

func TestTurn(t *testing.T) {
	turn := Turn{Role: "Assistant", Parts: []Part{{Text: "a"}, {Text: "b"}}}
	assert.True(t, turn.IsModel())
	assert.Equal(t, "a\nb", turn.Text())

	assert.True(t, Turn{Role: RoleModel}.IsModel())
	assert.False(t, Turn{Role: RoleUser}.IsModel())
}
