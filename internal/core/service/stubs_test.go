package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	mu        sync.Mutex
	jobs      map[string]*domain.Job
	nextID    int
	createErr error
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return "", r.createErr
	}
	r.nextID++
	id := fmt.Sprintf("job_%d", r.nextID)
	clone := *job
	clone.ID = id
	r.jobs[id] = &clone
	return id, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) ListByClient(_ context.Context, clientID string) ([]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Job
	for _, j := range r.jobs {
		if j.ClientID == clientID {
			clone := *j
			out = append(out, &clone)
		}
	}
	sortJobsNewestFirst(out)
	return out, nil
}

func (r *stubJobRepo) ListAll(_ context.Context) ([]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Job
	for _, j := range r.jobs {
		clone := *j
		out = append(out, &clone)
	}
	sortJobsNewestFirst(out)
	return out, nil
}

func (r *stubJobRepo) MarkAssigned(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.Status != domain.StatusOpen {
		return false, nil
	}
	j.Status = domain.StatusAssigned
	return true, nil
}

func sortJobsNewestFirst(jobs []*domain.Job) {
	sort.SliceStable(jobs, func(i, k int) bool {
		return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
	})
}

type offerKey struct {
	jobID      string
	handymanID string
}

type stubOfferRepo struct {
	mu     sync.Mutex
	offers map[offerKey]*domain.Offer
	nextID int
}

func newStubOfferRepo() *stubOfferRepo {
	return &stubOfferRepo{offers: make(map[offerKey]*domain.Offer)}
}

// Upsert mirrors the real repository: one offer per (job, handyman),
// stable id across replacements.
func (r *stubOfferRepo) Upsert(_ context.Context, offer *domain.Offer) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := offerKey{jobID: offer.JobID, handymanID: offer.HandymanID}
	if existing, ok := r.offers[key]; ok {
		clone := *offer
		clone.ID = existing.ID
		r.offers[key] = &clone
		return existing.ID, true, nil
	}
	r.nextID++
	clone := *offer
	clone.ID = fmt.Sprintf("offer_%d", r.nextID)
	r.offers[key] = &clone
	return clone.ID, false, nil
}

func (r *stubOfferRepo) ListByJob(_ context.Context, jobID string) ([]*domain.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Offer
	for key, o := range r.offers {
		if key.jobID == jobID {
			clone := *o
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (r *stubOfferRepo) DeleteByJob(_ context.Context, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.offers {
		if key.jobID == jobID {
			delete(r.offers, key)
		}
	}
	return nil
}

// stubAssignmentRepo enforces the one-assignment-per-job guarantee the
// real store provides via its unique index.
type stubAssignmentRepo struct {
	mu     sync.Mutex
	byJob  map[string]*domain.Assignment
	nextID int
}

func newStubAssignmentRepo() *stubAssignmentRepo {
	return &stubAssignmentRepo{byJob: make(map[string]*domain.Assignment)}
}

func (r *stubAssignmentRepo) Create(_ context.Context, a *domain.Assignment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byJob[a.JobID]; ok {
		return "", domain.ErrAlreadyAssigned
	}
	r.nextID++
	clone := *a
	clone.ID = fmt.Sprintf("assignment_%d", r.nextID)
	r.byJob[a.JobID] = &clone
	return clone.ID, nil
}

func (r *stubAssignmentRepo) FindByJob(_ context.Context, jobID string) (*domain.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byJob[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *a
	return &clone, nil
}

type stubUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byPhone map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    make(map[string]*domain.User),
		byPhone: make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPhone[user.PhoneNumber]; ok {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byID[clone.ID] = &clone
	r.byPhone[clone.PhoneNumber] = &clone
	copied := clone
	return &copied, nil
}

func (r *stubUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byPhone[phone]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) SetToken(_ context.Context, userID, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Token = token
	u.TokenExpiry = expiry
	return nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}
