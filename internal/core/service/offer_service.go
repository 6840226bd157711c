package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/handyman/marketplace-api/internal/api/metrics"
	"github.com/handyman/marketplace-api/internal/core/domain"
	"github.com/handyman/marketplace-api/internal/core/ports"
)

// OfferService implements offer submission, listing, and hire finalization.
type OfferService struct {
	jobs        ports.JobRepository
	offers      ports.OfferRepository
	assignments ports.AssignmentRepository
	users       ports.UserRepository
	logger      zerolog.Logger
}

func NewOfferService(
	jobs ports.JobRepository,
	offers ports.OfferRepository,
	assignments ports.AssignmentRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *OfferService {
	return &OfferService{
		jobs:        jobs,
		offers:      offers,
		assignments: assignments,
		users:       users,
		logger:      logger,
	}
}

// SubmitOffer records a handyman's bid. A previous bid from the same
// handyman on the same job is replaced in a single atomic upsert, so
// exactly one offer per (job, handyman) pair can exist.
func (s *OfferService) SubmitOffer(ctx context.Context, input ports.SubmitOfferInput) (*ports.SubmitOfferResult, error) {
	job, err := s.jobs.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.StatusOpen {
		return nil, fmt.Errorf("submit offer: %w", domain.ErrAlreadyAssigned)
	}

	offer := &domain.Offer{
		JobID:            input.JobID,
		HandymanID:       input.HandymanID,
		PriceQuote:       input.PriceQuote,
		AvailabilityDate: input.AvailabilityDate,
		EstimatedHours:   input.EstimatedHours,
		AdditionalNotes:  input.AdditionalNotes,
		PostedBy:         job.ClientID,
		CreatedAt:        time.Now().UTC(),
	}

	id, replaced, err := s.offers.Upsert(ctx, offer)
	if err != nil {
		s.logger.Error().Err(err).Str("job_id", input.JobID).Str("handyman_id", input.HandymanID).Msg("failed to store offer")
		return nil, err
	}

	result := "new"
	if replaced {
		result = "replaced"
	}
	metrics.OffersSubmittedTotal.WithLabelValues(result).Inc()
	s.logger.Info().
		Str("offer_id", id).
		Str("job_id", input.JobID).
		Str("handyman_id", input.HandymanID).
		Bool("replaced", replaced).
		Msg("offer submitted")

	return &ports.SubmitOfferResult{OfferID: id, Replaced: replaced}, nil
}

// ListOffers returns the job's offers joined with each bidder's name.
// A missing job fails with domain.ErrJobNotFound; a job with zero bids
// yields an empty slice, which callers must treat as success.
func (s *OfferService) ListOffers(ctx context.Context, jobID string) ([]ports.OfferView, error) {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	offers, err := s.offers.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.OfferView, 0, len(offers))
	if len(offers) == 0 {
		return views, nil
	}

	ids := make([]string, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.HandymanID)
	}
	bidders, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]*domain.User, len(bidders))
	for _, u := range bidders {
		names[u.ID] = u
	}

	for _, o := range offers {
		view := ports.OfferView{Offer: *o}
		if u, ok := names[o.HandymanID]; ok {
			view.FirstName = u.FirstName
			view.LastName = u.LastName
		}
		views = append(views, view)
	}
	return views, nil
}

// HireHandyman finalizes a hire. The assignment store's one-per-job
// guarantee is the race arbiter: under concurrent hire attempts exactly
// one insert succeeds and the rest observe ErrAlreadyAssigned. After the
// winning insert the job moves open → assigned and competing offers are
// removed so nothing can be hired against a closed job.
func (s *OfferService) HireHandyman(ctx context.Context, input ports.HireInput) (string, error) {
	job, err := s.jobs.FindByID(ctx, input.JobID)
	if err != nil {
		return "", err
	}
	if job.ClientID != input.ClientID {
		return "", fmt.Errorf("hire: job belongs to another client: %w", domain.ErrForbidden)
	}
	if job.Status != domain.StatusOpen {
		metrics.HireConflictsTotal.Inc()
		return "", fmt.Errorf("hire: %w", domain.ErrAlreadyAssigned)
	}

	assignment := &domain.Assignment{
		JobID:       input.JobID,
		HandymanID:  input.HandymanID,
		ClientID:    input.ClientID,
		AgreedPrice: input.AgreedPrice,
		AgreedHours: input.AgreedHours,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.assignments.Create(ctx, assignment)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyAssigned) {
			metrics.HireConflictsTotal.Inc()
		}
		return "", err
	}

	// The insert decided the winner; the transition and offer cleanup
	// are follow-up writes whose failure cannot create a second hire.
	if ok, err := s.jobs.MarkAssigned(ctx, input.JobID); err != nil || !ok {
		s.logger.Warn().Err(err).Str("job_id", input.JobID).Bool("transitioned", ok).Msg("job status transition did not apply")
	}
	if err := s.offers.DeleteByJob(ctx, input.JobID); err != nil {
		s.logger.Warn().Err(err).Str("job_id", input.JobID).Msg("failed to clear competing offers")
	}

	metrics.HiresTotal.Inc()
	s.logger.Info().
		Str("assignment_id", id).
		Str("job_id", input.JobID).
		Str("handyman_id", input.HandymanID).
		Msg("handyman hired")

	return id, nil
}
