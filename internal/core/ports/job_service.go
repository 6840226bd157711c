package ports

import (
	"context"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

// CreateJobInput carries the job posting form. Budget and timing fields
// arrive as raw JSON values so the service can apply the lenient
// coercion policy (non-numeric budgets become 0) instead of failing at
// the bind step.
type CreateJobInput struct {
	ClientID          string
	Title             string
	Description       string
	Address           string
	City              string
	State             string
	PostalCode        string
	PreferredDateTime string
	FlexibleTiming    any
	BudgetRangeMin    any
	BudgetRangeMax    any
}

// JobService defines the job side of the lifecycle: creation and queries.
type JobService interface {
	CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	ListJobs(ctx context.Context) ([]*domain.Job, error)
	ListPostedJobs(ctx context.Context, clientID string) ([]*domain.Job, error)
}
