package handlers

import (
	"context"

	"shopassist/internal/config"
	"shopassist/internal/domain"
	"shopassist/internal/services"
)

// HistoryReport reads aggregated recommendation history.
type HistoryReport interface {
	TopQueries(ctx context.Context, limit int) ([]domain.QueryFrequency, error)
}

type Deps struct {
	ProductHandler        *ProductHandler
	RecommendationHandler *RecommendationHandler
	HealthHandler         *HealthHandler
}

func NewDeps(cfg config.Config, catalog *services.CatalogService, recs *services.RecommendationService, history HistoryReport) *Deps {
	return &Deps{
		ProductHandler:        &ProductHandler{Catalog: catalog},
		RecommendationHandler: &RecommendationHandler{Recs: recs, Report: history},
		HealthHandler:         &HealthHandler{Port: cfg.Port, Cache: catalog.Cache},
	}
}
