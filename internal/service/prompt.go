package service

import (
	"context"
	"fmt"

	"prompt-refiner/internal/ai"
	"prompt-refiner/internal/models"
	"prompt-refiner/internal/prompts"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// PromptService refines task descriptions into prompts and rewrites them on request.
type PromptService interface {
	Categories() []prompts.CategoryInfo
	Refine(ctx context.Context, task, categoryID string) (*models.RefinementResult, error)
	Modify(ctx context.Context, req models.ModificationRequest) (*models.RefinementResult, error)
	Analyze(ctx context.Context, generatedPrompt, originalTask, categoryLabel string) models.Analysis
}

// Compile-time check to ensure promptServiceImpl implements PromptService
var _ PromptService = (*promptServiceImpl)(nil)

type promptServiceImpl struct {
	registry  *prompts.Registry
	generator ai.Generator
	logger    *zap.Logger

	analysisCache *expirable.LRU[string, []string]
}

// NewPromptService creates a PromptService over the given catalog and generator.
func NewPromptService(registry *prompts.Registry, generator ai.Generator, logger *zap.Logger, opts ...PromptOption) PromptService {
	s := &promptServiceImpl{
		registry:  registry,
		generator: generator,
		logger:    logger.Named("PromptService"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *promptServiceImpl) Categories() []prompts.CategoryInfo {
	return s.registry.List()
}

// Refine compiles the task with the chosen category template and asks the model for a prompt.
// A provider failure fails the whole call. An unknown id falls back to the default
// template and label but is echoed back as requested.
func (s *promptServiceImpl) Refine(ctx context.Context, task, categoryID string) (*models.RefinementResult, error) {
	if categoryID == prompts.NoSelectionID {
		categoryID = s.registry.Default().ID
	}
	category := s.registry.Lookup(categoryID)
	log := s.logger.With(zap.String("requestedCategory", categoryID), zap.String("category", category.ID))
	if category.ID != categoryID {
		log.Debug("Unknown category, using default")
	}

	res, err := s.generator.Complete(ctx, s.registry.Compile(category.ID, task))
	if err != nil {
		log.Error("Prompt generation failed", zap.Error(err))
		return nil, fmt.Errorf("refine with category %q: %w", category.ID, err)
	}
	if res.Empty() {
		log.Warn("Provider returned empty refined prompt")
	}

	analysis := s.Analyze(ctx, res.Text, task, category.Label)
	log.Info("Prompt refined",
		zap.Int("promptLength", len(res.Text)),
		zap.Int("explanationPoints", len(analysis.Explanation)),
		zap.Int("suggestions", len(analysis.Suggestions)),
	)

	return &models.RefinementResult{
		OptimizedPrompt:       res.Text,
		Explanation:           analysis.Explanation,
		Suggestions:           analysis.Suggestions,
		OriginalTask:          task,
		OriginalCategoryLabel: category.Label,
		CurrentCategoryID:     categoryID,
	}, nil
}

// Modify applies user instructions to the current prompt. It never fails on provider
// errors: the current prompt is kept as is.
func (s *promptServiceImpl) Modify(ctx context.Context, req models.ModificationRequest) (*models.RefinementResult, error) {
	log := s.logger.With(zap.String("category", req.CurrentCategoryID))

	modified := req.CurrentRefinedPrompt
	metaPrompt := prompts.ModificationPrompt(req.CurrentRefinedPrompt, req.UserInstructions, req.OriginalTask, req.OriginalCategoryLabel)
	res, err := s.generator.Complete(ctx, metaPrompt)
	switch {
	case err != nil:
		log.Error("Prompt modification failed, keeping current prompt", zap.Error(err))
	case res.Empty():
		log.Warn("Provider returned empty modified prompt, keeping current prompt")
	default:
		modified = res.Text
	}

	analysis := s.Analyze(ctx, modified, req.OriginalTask, req.OriginalCategoryLabel)

	return &models.RefinementResult{
		OptimizedPrompt:       modified,
		Explanation:           analysis.Explanation,
		Suggestions:           analysis.Suggestions,
		OriginalTask:          req.OriginalTask,
		OriginalCategoryLabel: req.OriginalCategoryLabel,
		CurrentCategoryID:     req.CurrentCategoryID,
	}, nil
}
