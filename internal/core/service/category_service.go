package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/handyman/marketplace-api/internal/api/metrics"
	"github.com/handyman/marketplace-api/internal/core/domain"
	"github.com/handyman/marketplace-api/internal/core/ports"
)

const (
	cacheKeyCategories = "catalog:categories"
	cacheKeyServices   = "catalog:services"
	catalogCacheTTL    = 5 * time.Minute
)

// CategoryService serves the catalog browsing endpoints with a
// cache-aside layer over the store. Cache failures degrade to store
// reads, never to request failures.
type CategoryService struct {
	repo   ports.CategoryRepository
	cache  ports.Cache
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, cache ports.Cache, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, cache: cache, logger: logger}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.ServiceCategory, error) {
	var cached []*domain.ServiceCategory
	if err := s.cache.Get(ctx, cacheKeyCategories, &cached); err == nil {
		metrics.CategoryCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.CategoryCacheTotal.WithLabelValues("miss").Inc()

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyCategories, categories, catalogCacheTTL); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache categories")
	}
	return categories, nil
}

func (s *CategoryService) ListServices(ctx context.Context) ([]*domain.Service, error) {
	var cached []*domain.Service
	if err := s.cache.Get(ctx, cacheKeyServices, &cached); err == nil {
		metrics.CategoryCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.CategoryCacheTotal.WithLabelValues("miss").Inc()

	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyServices, services, catalogCacheTTL); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache services")
	}
	return services, nil
}

func (s *CategoryService) GetService(ctx context.Context, id string) (*domain.Service, error) {
	return s.repo.FindService(ctx, id)
}
