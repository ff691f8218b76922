package service

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// PromptOption настраивает PromptService.
type PromptOption func(*promptServiceImpl)

// WithAnalysisCache кэширует непустые списки объяснений и подсказок.
// size <= 0 отключает кэш.
func WithAnalysisCache(size int, ttl time.Duration) PromptOption {
	return func(s *promptServiceImpl) {
		if size <= 0 {
			return
		}
		s.analysisCache = expirable.NewLRU[string, []string](size, nil, ttl)
	}
}

// analysisKey зависит только от текста мета-промпта: в нем уже есть промпт, задача и категория.
func analysisKey(kind, metaPrompt string) string {
	sum := sha256.Sum256([]byte(metaPrompt))
	return kind + ":" + hex.EncodeToString(sum[:])
}

func (s *promptServiceImpl) cachedList(key string) ([]string, bool) {
	if s.analysisCache == nil {
		return nil, false
	}
	items, ok := s.analysisCache.Get(key)
	if !ok {
		return nil, false
	}
	return slices.Clone(items), true
}

func (s *promptServiceImpl) storeList(key string, items []string) {
	if s.analysisCache == nil || len(items) == 0 {
		return
	}
	s.analysisCache.Add(key, slices.Clone(items))
}
