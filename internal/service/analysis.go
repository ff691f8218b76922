package service

import (
	"context"

	"prompt-refiner/internal/ai"
	"prompt-refiner/internal/models"
	"prompt-refiner/internal/prompts"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Analyze asks the model for an explanation and for suggestions concurrently.
// A failed or empty side yields an empty list; Analyze itself never fails.
func (s *promptServiceImpl) Analyze(ctx context.Context, generatedPrompt, originalTask, categoryLabel string) models.Analysis {
	var analysis models.Analysis

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		analysis.Explanation = s.bulletList(gctx, "explanation", prompts.ExplanationPrompt(generatedPrompt, originalTask, categoryLabel))
		return nil
	})
	g.Go(func() error {
		analysis.Suggestions = s.bulletList(gctx, "suggestions", prompts.SuggestionsPrompt(generatedPrompt, originalTask))
		return nil
	})
	_ = g.Wait() // горутины ошибок не возвращают

	return analysis
}

func (s *promptServiceImpl) bulletList(ctx context.Context, kind, prompt string) []string {
	key := analysisKey(kind, prompt)
	if items, ok := s.cachedList(key); ok {
		s.logger.Debug("Analysis cache hit", zap.String("kind", kind))
		return items
	}

	res, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("Analysis generation failed", zap.String("kind", kind), zap.Error(err))
		return []string{}
	}
	items := ai.ParseBulletList(res.Text)
	s.storeList(key, items)
	return items
}
