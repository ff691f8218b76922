package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"prompt-refiner/internal/ai"
	"prompt-refiner/internal/mocks"
	"prompt-refiner/internal/models"
	"prompt-refiner/internal/prompts"
	"prompt-refiner/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func containing(fragment string) interface{} {
	return mock.MatchedBy(func(prompt string) bool { return strings.Contains(prompt, fragment) })
}

var (
	explanationCall  = containing("Explain why the following prompt")
	suggestionsCall  = containing("suggest 2-3 actionable ways")
	modificationCall = containing("USER MODIFICATION INSTRUCTIONS")
)

func newPromptService(t *testing.T) (service.PromptService, *prompts.Registry, *mocks.MockGenerator) {
	t.Helper()
	registry, err := prompts.NewRegistry()
	require.NoError(t, err)
	gen := mocks.NewMockGenerator(t)
	return service.NewPromptService(registry, gen, zap.NewNop()), registry, gen
}

func TestRefine_EndToEnd(t *testing.T) {
	ctx := context.Background()
	svc, registry, gen := newPromptService(t)
	task := "write a blog post"

	gen.On("Complete", mock.Anything, registry.Compile("writing", task)).
		Return(ai.Result{Text: "You are a blog writer..."}, nil).Once()
	gen.On("Complete", mock.Anything, explanationCall).
		Return(ai.Result{Text: "* adds a role\n* sets tone"}, nil).Once()
	gen.On("Complete", mock.Anything, suggestionsCall).
		Return(ai.Result{Text: "* name the audience"}, nil).Once()

	res, err := svc.Refine(ctx, task, "writing")
	require.NoError(t, err)

	assert.Equal(t, "You are a blog writer...", res.OptimizedPrompt)
	assert.Equal(t, []string{"adds a role", "sets tone"}, res.Explanation)
	assert.Equal(t, []string{"name the audience"}, res.Suggestions)
	assert.Equal(t, task, res.OriginalTask)
	assert.Equal(t, "Writing & Content Creation", res.OriginalCategoryLabel)
	assert.Equal(t, "writing", res.CurrentCategoryID)
	gen.AssertNumberOfCalls(t, "Complete", 3)
}

func TestRefine_NoSelectionAndUnknownUseDefault(t *testing.T) {
	for categoryID, wantID := range map[string]string{
		prompts.NoSelectionID: "meta_prompting",
		"no_such_category":    "no_such_category",
	} {
		t.Run(categoryID, func(t *testing.T) {
			svc, registry, gen := newPromptService(t)
			def := registry.Default()

			gen.On("Complete", mock.Anything, registry.Compile(def.ID, "plan a trip")).
				Return(ai.Result{Text: "refined"}, nil).Once()
			gen.On("Complete", mock.Anything, mock.Anything).Return(ai.Result{}, nil)

			res, err := svc.Refine(context.Background(), "plan a trip", categoryID)
			require.NoError(t, err)
			assert.Equal(t, wantID, res.CurrentCategoryID)
			assert.Equal(t, def.Label, res.OriginalCategoryLabel)
			assert.Equal(t, []string{}, res.Explanation)
			assert.Equal(t, []string{}, res.Suggestions)
		})
	}
}

func TestRefine_ProviderFailure(t *testing.T) {
	svc, registry, gen := newPromptService(t)
	genErr := &ai.GenerationError{Provider: "gemini", Err: errors.New("connection reset")}

	gen.On("Complete", mock.Anything, registry.Compile("coding", "sort a list")).
		Return(ai.Result{}, genErr).Once()

	res, err := svc.Refine(context.Background(), "sort a list", "coding")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, models.ErrGenerationFailed)
	gen.AssertNumberOfCalls(t, "Complete", 1)
}

func TestRefine_EmptyResultStillAnalyzed(t *testing.T) {
	svc, registry, gen := newPromptService(t)

	gen.On("Complete", mock.Anything, registry.Compile("coding", "x")).Return(ai.Result{}, nil).Once()
	gen.On("Complete", mock.Anything, explanationCall).Return(ai.Result{Text: "plain reason"}, nil).Once()
	gen.On("Complete", mock.Anything, suggestionsCall).Return(ai.Result{}, nil).Once()

	res, err := svc.Refine(context.Background(), "x", "coding")
	require.NoError(t, err)
	assert.Empty(t, res.OptimizedPrompt)
	assert.Equal(t, []string{"plain reason"}, res.Explanation)
	assert.Equal(t, []string{}, res.Suggestions)
}

func TestAnalyze_OneSideFails(t *testing.T) {
	svc, _, gen := newPromptService(t)

	gen.On("Complete", mock.Anything, explanationCall).
		Return(ai.Result{}, &ai.GenerationError{Provider: "openai", Err: errors.New("429")}).Once()
	gen.On("Complete", mock.Anything, suggestionsCall).
		Return(ai.Result{Text: "* be specific\n* give examples"}, nil).Once()

	analysis := svc.Analyze(context.Background(), "prompt", "task", "Coding")
	assert.Equal(t, []string{}, analysis.Explanation)
	assert.Equal(t, []string{"be specific", "give examples"}, analysis.Suggestions)
}

func TestAnalyze_PromptsMentionContext(t *testing.T) {
	svc, _, gen := newPromptService(t)

	gen.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, `"summarize a paper"`) && strings.Contains(p, `"Summarization"`) && strings.Contains(p, "GENERATED")
	})).Return(ai.Result{Text: "* ok"}, nil).Once()
	gen.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, `"summarize a paper"`) && strings.Contains(p, "suggest 2-3") && strings.Contains(p, "GENERATED")
	})).Return(ai.Result{Text: "* ok"}, nil).Once()

	analysis := svc.Analyze(context.Background(), "GENERATED", "summarize a paper", "Summarization")
	assert.Equal(t, []string{"ok"}, analysis.Explanation)
	assert.Equal(t, []string{"ok"}, analysis.Suggestions)
}

func modificationRequest() models.ModificationRequest {
	return models.ModificationRequest{
		CurrentRefinedPrompt:  "Write a formal email.",
		UserInstructions:      "make it friendlier",
		OriginalTask:          "email my boss",
		OriginalCategoryLabel: "Writing & Content Creation",
		CurrentCategoryID:     "writing",
	}
}

func TestModify_Success(t *testing.T) {
	svc, _, gen := newPromptService(t)
	req := modificationRequest()

	gen.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, req.CurrentRefinedPrompt) && strings.Contains(p, req.UserInstructions) &&
			strings.Contains(p, `"email my boss"`) && strings.Contains(p, "USER MODIFICATION INSTRUCTIONS")
	})).Return(ai.Result{Text: "Write a warm email."}, nil).Once()
	gen.On("Complete", mock.Anything, containing("Write a warm email.")).Return(ai.Result{Text: "* warmer"}, nil).Twice()

	res, err := svc.Modify(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Write a warm email.", res.OptimizedPrompt)
	assert.Equal(t, []string{"warmer"}, res.Explanation)
	assert.Equal(t, []string{"warmer"}, res.Suggestions)
	assert.Equal(t, req.OriginalTask, res.OriginalTask)
	assert.Equal(t, req.OriginalCategoryLabel, res.OriginalCategoryLabel)
	assert.Equal(t, req.CurrentCategoryID, res.CurrentCategoryID)
}

func TestModify_FailureKeepsCurrentPrompt(t *testing.T) {
	for name, ret := range map[string][]interface{}{
		"provider error": {ai.Result{}, &ai.GenerationError{Provider: "ollama", Err: errors.New("timeout")}},
		"empty result":   {ai.Result{}, nil},
	} {
		t.Run(name, func(t *testing.T) {
			svc, _, gen := newPromptService(t)
			req := modificationRequest()

			gen.On("Complete", mock.Anything, modificationCall).Return(ret...).Once()
			gen.On("Complete", mock.Anything, explanationCall).Return(ai.Result{Text: "* formal"}, nil).Once()
			gen.On("Complete", mock.Anything, suggestionsCall).Return(ai.Result{Text: "* tone"}, nil).Once()

			res, err := svc.Modify(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, req.CurrentRefinedPrompt, res.OptimizedPrompt)
			assert.Equal(t, []string{"formal"}, res.Explanation)
			assert.Equal(t, []string{"tone"}, res.Suggestions)
		})
	}
}

func TestCategories(t *testing.T) {
	svc, registry, _ := newPromptService(t)
	assert.Equal(t, registry.List(), svc.Categories())
}
