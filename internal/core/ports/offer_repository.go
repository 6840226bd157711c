package ports

import (
	"context"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

// OfferRepository defines persistence for job offers.
type OfferRepository interface {
	// Upsert atomically inserts the offer or replaces the existing one
	// for the same (job, handyman) pair, returning the offer id and
	// whether a previous offer was replaced.
	Upsert(ctx context.Context, offer *domain.Offer) (id string, replaced bool, err error)
	ListByJob(ctx context.Context, jobID string) ([]*domain.Offer, error)
	// DeleteByJob removes all offers for a job once it has been assigned.
	DeleteByJob(ctx context.Context, jobID string) error
}

// AssignmentRepository defines persistence for hires. The store must
// guarantee at most one assignment per job; Create returns
// domain.ErrAlreadyAssigned when an assignment for the job exists.
type AssignmentRepository interface {
	Create(ctx context.Context, a *domain.Assignment) (string, error)
	FindByJob(ctx context.Context, jobID string) (*domain.Assignment, error)
}
