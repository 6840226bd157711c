package ports

import (
	"context"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// ListByClient returns the client's jobs ordered by creation time,
	// newest first. An empty result is not an error.
	ListByClient(ctx context.Context, clientID string) ([]*domain.Job, error)
	// ListAll returns every job, newest first.
	ListAll(ctx context.Context) ([]*domain.Job, error)
	// MarkAssigned conditionally moves the job from open to assigned.
	// Returns false when the job was not in the open state.
	MarkAssigned(ctx context.Context, id string) (bool, error)
}
