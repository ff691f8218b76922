package ai

import (
	"context"
	"errors"
	"testing"

	"prompt-refiner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeContentGenerator struct {
	model    string
	contents []*genai.Content
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeContentGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: RoleModel, Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func TestGemini_Complete(t *testing.T) {
	fake := &fakeContentGenerator{resp: textResponse("  refined prompt \n")}
	c := newGeminiClient(fake, "")

	res, err := c.Complete(context.Background(), "compiled")
	require.NoError(t, err)
	assert.Equal(t, "refined prompt", res.Text)
	assert.Equal(t, defaultGeminiModel, fake.model)
	require.Len(t, fake.contents, 1)
	assert.Equal(t, RoleUser, fake.contents[0].Role)
	assert.Equal(t, "compiled", fake.contents[0].Parts[0].Text)
}

func TestGemini_ChatKeepsOrderAndRoles(t *testing.T) {
	fake := &fakeContentGenerator{resp: textResponse("next")}
	c := newGeminiClient(fake, "gemini-test")

	history := []Turn{
		{Role: RoleUser, Parts: []Part{{Text: "hi"}}},
		{Role: "assistant", Parts: []Part{{Text: "hello"}}},
		{Role: RoleUser, Parts: []Part{{Text: "one"}, {Text: "two"}}},
	}
	res, err := c.Chat(context.Background(), history)
	require.NoError(t, err)
	assert.Equal(t, "next", res.Text)

	require.Len(t, fake.contents, 3)
	assert.Equal(t, RoleUser, fake.contents[0].Role)
	assert.Equal(t, RoleModel, fake.contents[1].Role)
	assert.Equal(t, "hello", fake.contents[1].Parts[0].Text)
	require.Len(t, fake.contents[2].Parts, 2)
	assert.Equal(t, "two", fake.contents[2].Parts[1].Text)
}

func TestGemini_EmptyResponse(t *testing.T) {
	for name, resp := range map[string]*genai.GenerateContentResponse{
		"nil":           nil,
		"no candidates": {},
		"blank text":    textResponse("   "),
	} {
		t.Run(name, func(t *testing.T) {
			c := newGeminiClient(&fakeContentGenerator{resp: resp}, "")
			res, err := c.Complete(context.Background(), "p")
			require.NoError(t, err)
			assert.True(t, res.Empty())
		})
	}
}

func TestGemini_ProviderError(t *testing.T) {
	c := newGeminiClient(&fakeContentGenerator{err: errors.New("quota exceeded")}, "")

	_, err := c.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), GeminiOptions{})
	assert.Error(t, err)
}
