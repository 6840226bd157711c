package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/handyman/marketplace-api/internal/api/metrics"
	"github.com/handyman/marketplace-api/internal/core/domain"
	"github.com/handyman/marketplace-api/internal/core/ports"
)

// JobService implements job creation and queries.
type JobService struct {
	repo   ports.JobRepository
	logger zerolog.Logger
}

func NewJobService(repo ports.JobRepository, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, logger: logger}
}

// CreateJob validates the posting form and inserts the job in the open
// state. Budget fields follow the lenient policy: non-numeric values
// store as 0 rather than rejecting the request. The schedule field must
// parse; a budget minimum above the maximum is rejected.
func (s *JobService) CreateJob(ctx context.Context, input ports.CreateJobInput) (*domain.Job, error) {
	preferred, err := parsePreferredDateTime(input.PreferredDateTime)
	if err != nil {
		return nil, err
	}

	budgetMin := coerceBudget(input.BudgetRangeMin)
	budgetMax := coerceBudget(input.BudgetRangeMax)
	if budgetMin > budgetMax {
		return nil, fmt.Errorf("%w: budget_range_min %d exceeds budget_range_max %d", domain.ErrValidation, budgetMin, budgetMax)
	}

	job := &domain.Job{
		ClientID:          input.ClientID,
		Title:             input.Title,
		Description:       input.Description,
		Address:           input.Address,
		City:              input.City,
		State:             input.State,
		PostalCode:        input.PostalCode,
		PreferredDateTime: preferred,
		FlexibleTiming:    coerceBool(input.FlexibleTiming),
		BudgetRangeMin:    budgetMin,
		BudgetRangeMax:    budgetMax,
		Status:            domain.StatusOpen,
		CreatedAt:         time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", input.ClientID).Msg("failed to create job")
		return nil, err
	}
	job.ID = id

	metrics.JobsCreatedTotal.WithLabelValues(strconv.FormatBool(job.FlexibleTiming)).Inc()
	s.logger.Info().Str("job_id", id).Str("client_id", input.ClientID).Msg("job posted")

	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *JobService) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []*domain.Job{}
	}
	return jobs, nil
}

// ListPostedJobs returns the client's jobs, newest first. Zero results
// is a success, not an error.
func (s *JobService) ListPostedJobs(ctx context.Context, clientID string) ([]*domain.Job, error) {
	jobs, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []*domain.Job{}
	}
	return jobs, nil
}
