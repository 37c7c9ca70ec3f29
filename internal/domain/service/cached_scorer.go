package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/bibbank/scamguard/internal/domain/port"
	"github.com/bibbank/scamguard/internal/domain/valueobject"
)

// CachedScorer decorates a Scorer with an AssessmentCache keyed by the SHA-256
// of the text. Cache failures are logged and never fail a score.
type CachedScorer struct {
	next   Scorer
	cache  port.AssessmentCache
	logger *slog.Logger
}

// NewCachedScorer wraps next with cache.
func NewCachedScorer(next Scorer, cache port.AssessmentCache, logger *slog.Logger) *CachedScorer {
	return &CachedScorer{next: next, cache: cache, logger: logger}
}

// CacheKey returns the cache key for text.
func CacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Score returns a cached assessment when present, otherwise delegates and
// stores the result. Errors from the wrapped scorer are not cached.
func (s *CachedScorer) Score(ctx context.Context, text string) (valueobject.RiskAssessment, error) {
	key := CacheKey(text)

	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "assessment cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}

	assessment, err := s.next.Score(ctx, text)
	if err != nil {
		return valueobject.RiskAssessment{}, err
	}

	if err := s.cache.Set(ctx, key, assessment); err != nil {
		s.logger.WarnContext(ctx, "assessment cache write failed", "error", err)
	}

	return assessment, nil
}

// Name implements Scorer.
func (s *CachedScorer) Name() string {
	return s.next.Name()
}
