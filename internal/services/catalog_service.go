package services

import (
	"context"

	"golang.org/x/sync/singleflight"

	"shopassist/internal/cache"
	"shopassist/internal/domain"
	applog "shopassist/internal/log"
	"shopassist/internal/metrics"
	"shopassist/internal/repos"
)

const (
	cacheKeyAllProducts = "products:all"
	cacheKeyCategories  = "categories"
)

// CatalogService serves product reads, cache-aside through Redis when a
// cache is configured.
type CatalogService struct {
	Prods *repos.ProductRepo
	Cache *cache.Cache // nil disables caching

	sf singleflight.Group
}

func NewCatalogService(prods *repos.ProductRepo, c *cache.Cache) *CatalogService {
	return &CatalogService{Prods: prods, Cache: c}
}

func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Product, error) {
	return cached(ctx, s, cacheKeyAllProducts, s.Prods.ListAll)
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return cached(ctx, s, cacheKeyCategories, s.Prods.Categories)
}

// Invalidate drops the cached catalog views so the next read goes to the
// store. Without a cache it is a no-op.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Delete(ctx, cacheKeyAllProducts, cacheKeyCategories)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (domain.Product, error) {
	return s.Prods.Get(ctx, id)
}

func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.Prods.ListByCategory(ctx, category)
}

func (s *CatalogService) Search(ctx context.Context, q string) ([]domain.Product, error) {
	return s.Prods.Search(ctx, q)
}

// cached reads key from the cache, falling back to load on a miss or any
// cache error. Concurrent misses for one key share a single load.
func cached[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) (T, error)) (T, error) {
	if s.Cache == nil {
		return load(ctx)
	}

	var hit T
	found, err := s.Cache.Get(ctx, key, &hit)
	switch {
	case err != nil:
		metrics.RecordCache("error")
		applog.WarnCtx(ctx, "cache.get.fail", err, map[string]any{"key": key})
	case found:
		metrics.RecordCache("hit")
		return hit, nil
	default:
		metrics.RecordCache("miss")
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		fresh, err := load(ctx)
		if err != nil {
			return fresh, err
		}
		if serr := s.Cache.Set(ctx, key, fresh); serr != nil {
			applog.WarnCtx(ctx, "cache.set.fail", serr, map[string]any{"key": key})
		}
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
