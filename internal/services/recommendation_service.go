package services

import (
	"context"
	"fmt"
	"strings"

	"shopassist/internal/domain"
	applog "shopassist/internal/log"
	"shopassist/internal/metrics"
	"shopassist/internal/recommend"
)

// ProductSource loads the full catalog.
type ProductSource interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
}

// Recommender is the AI path: query plus candidates in, validated result out.
type Recommender interface {
	Recommend(ctx context.Context, query string, candidates []domain.Product) (domain.RecommendationResult, error)
}

// HistorySink records served results; it must not block.
type HistorySink interface {
	Record(ctx context.Context, query string, res domain.RecommendationResult)
}

// RecommendationService resolves one recommendation request: filter,
// ask the AI, fall back to keyword scoring on any AI failure, record.
type RecommendationService struct {
	Products ProductSource
	AI       Recommender
	History  HistorySink
}

func NewRecommendationService(products ProductSource, ai Recommender, history HistorySink) *RecommendationService {
	return &RecommendationService{Products: products, AI: ai, History: history}
}

// Recommend returns a validation error for a blank query and a
// store_unavailable error when the catalog cannot be read. Every AI-side
// failure degrades to the fallback scorer and is not returned.
func (s *RecommendationService) Recommend(ctx context.Context, c domain.Constraints) (domain.RecommendationResult, error) {
	if strings.TrimSpace(c.Query) == "" {
		return domain.RecommendationResult{}, domain.ValidationError("query is required")
	}

	products, err := s.Products.ListAll(ctx)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	filtered := recommend.Filter(products, c)
	applog.InfoCtx(ctx, "recommend.filter", map[string]any{
		"total":     len(products),
		"remaining": len(filtered.Candidates),
		"steps":     filtered.Steps,
	})
	if len(filtered.Candidates) == 0 {
		metrics.RecordRecommendation("empty")
		return recommend.NoMatches(), nil
	}

	res, source := s.resolve(ctx, c.Query, filtered.Candidates)
	metrics.RecordRecommendation(source)

	if s.History != nil {
		s.History.Record(ctx, c.Query, res)
	}
	return res, nil
}

// resolve runs the AI path and substitutes the fallback result on failure.
func (s *RecommendationService) resolve(ctx context.Context, query string, candidates []domain.Product) (domain.RecommendationResult, string) {
	res, err := s.askAI(ctx, query, candidates)
	if err == nil {
		return res, "ai"
	}

	style := recommend.StyleQueryPath
	kind := "internal"
	switch {
	case domain.IsKind(err, domain.KindAIProvider):
		style, kind = recommend.StyleAIFailure, string(domain.KindAIProvider)
	case domain.IsKind(err, domain.KindMalformedAI):
		style, kind = recommend.StyleAIFailure, string(domain.KindMalformedAI)
	}
	metrics.RecordAIFailure(kind)
	applog.WarnCtx(ctx, "recommend.ai.fail", err, map[string]any{"kind": kind, "candidates": len(candidates)})

	return recommend.Fallback(query, candidates, style), "fallback"
}

func (s *RecommendationService) askAI(ctx context.Context, query string, candidates []domain.Product) (res domain.RecommendationResult, err error) {
	if s.AI == nil {
		return res, domain.AIProviderError("no AI client configured", nil)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ai stage panic: %v", r)
		}
	}()
	return s.AI.Recommend(ctx, query, candidates)
}
