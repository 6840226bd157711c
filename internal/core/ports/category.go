package ports

import (
	"context"
	"time"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

// CategoryRepository defines read access to the service catalog.
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]*domain.ServiceCategory, error)
	ListServices(ctx context.Context) ([]*domain.Service, error)
	FindService(ctx context.Context, id string) (*domain.Service, error)
}

// Cache is a JSON value cache with TTL, backed by Redis in production.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CategoryService serves the catalog browsing endpoints.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]*domain.ServiceCategory, error)
	ListServices(ctx context.Context) ([]*domain.Service, error)
	GetService(ctx context.Context, id string) (*domain.Service, error)
}
