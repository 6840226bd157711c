package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

type stubCategoryRepo struct {
	categories []*domain.ServiceCategory
	services   []*domain.Service
	calls      int
}

func (r *stubCategoryRepo) ListCategories(_ context.Context) ([]*domain.ServiceCategory, error) {
	r.calls++
	return r.categories, nil
}

func (r *stubCategoryRepo) ListServices(_ context.Context) ([]*domain.Service, error) {
	r.calls++
	return r.services, nil
}

func (r *stubCategoryRepo) FindService(_ context.Context, id string) (*domain.Service, error) {
	for _, s := range r.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrServiceNotFound
}

// stubCache round-trips values through JSON the way the Redis cache does.
type stubCache struct {
	values map[string][]byte
	setErr error
}

func newStubCache() *stubCache {
	return &stubCache{values: make(map[string][]byte)}
}

func (c *stubCache) Get(_ context.Context, key string, dest any) error {
	data, ok := c.values[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(data, dest)
}

func (c *stubCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = data
	return nil
}

func catalogFixture() *stubCategoryRepo {
	return &stubCategoryRepo{
		categories: []*domain.ServiceCategory{
			{ID: "cat_1", Name: "Plumbing", Description: "Pipes and fixtures"},
			{ID: "cat_2", Name: "Electrical", Description: "Wiring and lighting"},
		},
		services: []*domain.Service{
			{ID: "svc_1", CategoryID: "cat_1", Name: "Sink repair"},
			{ID: "svc_2", CategoryID: "cat_2", Name: "Outlet installation"},
		},
	}
}

func TestCategoryService_ListCategories_PopulatesCache(t *testing.T) {
	repo := catalogFixture()
	cache := newStubCache()
	svc := NewCategoryService(repo, cache, discardLogger)

	first, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(first))
	}

	second, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(second) != 2 {
		t.Fatalf("expected 2 categories from cache, got %d", len(second))
	}
	if repo.calls != 1 {
		t.Errorf("second read must come from cache: %d store calls", repo.calls)
	}
	if second[0].Name != "Plumbing" {
		t.Errorf("cached category mangled: %q", second[0].Name)
	}
}

func TestCategoryService_CacheFailureDegradesToStore(t *testing.T) {
	repo := catalogFixture()
	cache := newStubCache()
	cache.setErr = errors.New("redis down")
	svc := NewCategoryService(repo, cache, discardLogger)

	services, err := svc.ListServices(context.Background())
	if err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(services))
	}
}

func TestCategoryService_GetService(t *testing.T) {
	repo := catalogFixture()
	svc := NewCategoryService(repo, newStubCache(), discardLogger)

	s, err := svc.GetService(context.Background(), "svc_1")
	if err != nil {
		t.Fatalf("get service: %v", err)
	}
	if s.Name != "Sink repair" {
		t.Errorf("wrong service: %q", s.Name)
	}

	_, err = svc.GetService(context.Background(), "svc_missing")
	if !errors.Is(err, domain.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}
