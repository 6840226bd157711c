package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/handyman/marketplace-api/internal/core/domain"
	"github.com/handyman/marketplace-api/internal/core/ports"
)

type lifecycleFixture struct {
	jobs        *stubJobRepo
	offers      *stubOfferRepo
	assignments *stubAssignmentRepo
	users       *stubUserRepo
	jobSvc      *JobService
	offerSvc    *OfferService
}

func newLifecycleFixture() *lifecycleFixture {
	jobs := newStubJobRepo()
	offers := newStubOfferRepo()
	assignments := newStubAssignmentRepo()
	users := newStubUserRepo()
	return &lifecycleFixture{
		jobs:        jobs,
		offers:      offers,
		assignments: assignments,
		users:       users,
		jobSvc:      NewJobService(jobs, discardLogger),
		offerSvc:    NewOfferService(jobs, offers, assignments, users, discardLogger),
	}
}

func (f *lifecycleFixture) postJob(t *testing.T, clientID string) *domain.Job {
	t.Helper()
	job, err := f.jobSvc.CreateJob(context.Background(), postingInput(clientID, "Fix sink"))
	if err != nil {
		t.Fatalf("post job: %v", err)
	}
	return job
}

func (f *lifecycleFixture) addHandyman(t *testing.T, first, last string) *domain.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), &domain.User{
		FirstName:   first,
		LastName:    last,
		PhoneNumber: "555" + first,
		Role:        domain.RoleHandyman,
	})
	if err != nil {
		t.Fatalf("add handyman: %v", err)
	}
	return u
}

func bid(handymanID, jobID string, price float64) ports.SubmitOfferInput {
	return ports.SubmitOfferInput{
		HandymanID:       handymanID,
		JobID:            jobID,
		PriceQuote:       price,
		AvailabilityDate: "2025-04-26",
		EstimatedHours:   3,
		AdditionalNotes:  "can bring own tools",
	}
}

// ---------------------------------------------------------------------------
// SubmitOffer
// ---------------------------------------------------------------------------

func TestOfferService_SubmitOffer_Success(t *testing.T) {
	f := newLifecycleFixture()
	job := f.postJob(t, "client_1")
	handyman := f.addHandyman(t, "Ned", "Flanders")

	result, err := f.offerSvc.SubmitOffer(context.Background(), bid(handyman.ID, job.ID, 1800))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OfferID == "" {
		t.Error("offer id must not be empty")
	}
	if result.Replaced {
		t.Error("first bid must not report replaced")
	}

	offers, _ := f.offers.ListByJob(context.Background(), job.ID)
	if len(offers) != 1 {
		t.Fatalf("expected 1 stored offer, got %d", len(offers))
	}
	if offers[0].PostedBy != job.ClientID {
		t.Errorf("posted_by must be the job's client: got %q, want %q", offers[0].PostedBy, job.ClientID)
	}
}

func TestOfferService_SubmitOffer_MissingJob(t *testing.T) {
	f := newLifecycleFixture()
	handyman := f.addHandyman(t, "Ned", "Flanders")

	_, err := f.offerSvc.SubmitOffer(context.Background(), bid(handyman.ID, "no_such_job", 1800))
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestOfferService_SubmitOffer_ReplaceKeepsExactlyOne(t *testing.T) {
	f := newLifecycleFixture()
	job := f.postJob(t, "client_1")
	handyman := f.addHandyman(t, "Ned", "Flanders")

	first, err := f.offerSvc.SubmitOffer(context.Background(), bid(handyman.ID, job.ID, 1800))
	if err != nil {
		t.Fatalf("first bid: %v", err)
	}
	second, err := f.offerSvc.SubmitOffer(context.Background(), bid(handyman.ID, job.ID, 1500))
	if err != nil {
		t.Fatalf("second bid: %v", err)
	}
	if !second.Replaced {
		t.Error("resubmission must report replaced")
	}
	if second.OfferID != first.OfferID {
		t.Errorf("atomic upsert keeps a stable id: got %q, want %q", second.OfferID, first.OfferID)
	}

	offers, _ := f.offers.ListByJob(context.Background(), job.ID)
	if len(offers) != 1 {
		t.Fatalf("expected exactly 1 offer after resubmission, got %d", len(offers))
	}
	if offers[0].PriceQuote != 1500 {
		t.Errorf("offer must carry the latest values: got %v, want 1500", offers[0].PriceQuote)
	}
}

func TestOfferService_SubmitOffer_RejectedOnAssignedJob(t *testing.T) {
	f := newLifecycleFixture()
	job := f.postJob(t, "client_1")
	handyman := f.addHandyman(t, "Ned", "Flanders")

	if _, err := f.offerSvc.HireHandyman(context.Background(), ports.HireInput{
		JobID: job.ID, HandymanID: handyman.ID, ClientID: "client_1", AgreedPrice: 1800, AgreedHours: 3,
	}); err != nil {
		t.Fatalf("hire: %v", err)
	}

	_, err := f.offerSvc.SubmitOffer(context.Background(), bid(handyman.ID, job.ID, 1200))
	if !errors.Is(err, domain.ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned on closed job, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListOffers
// ---------------------------------------------------------------------------

func TestOfferService_ListOffers_JoinsBidderName(t *testing.T) {
	f := newLifecycleFixture()
	job := f.postJob(t, "client_1")
	handyman := f.addHandyman(t, "Ned", "Flanders")

	if _, err := f.offerSvc.SubmitOffer(context.Background(), bid(handyman.ID, job.ID, 1800)); err != nil {
		t.Fatalf("bid: %v", err)
	}

	views, err := f.offerSvc.ListOffers(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 offer, got %d", len(views))
	}
	if views[0].FirstName != "Ned" || views[0].LastName != "Flanders" {
		t.Errorf("bidder name not joined: got %q %q", views[0].FirstName, views[0].LastName)
	}
}

func TestOfferService_ListOffers_EmptyIsDistinctFromMissingJob(t *testing.T) {
	f := newLifecycleFixture()
	job := f.postJob(t, "client_1")

	views, err := f.offerSvc.ListOffers(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("zero offers on an existing job must not be an error: %v", err)
	}
	if views == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(views) != 0 {
		t.Fatalf("expected 0 offers, got %d", len(views))
	}

	_, err = f.offerSvc.ListOffers(context.Background(), "no_such_job")
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("missing job must fail with ErrJobNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// HireHandyman
// ---------------------------------------------------------------------------

func TestOfferService_Hire_Success(t *testing.T) {
	f := newLifecycleFixture()
	job := f.postJob(t, "client_1")
	handyman := f.addHandyman(t, "Ned", "Flanders")

	if _, err := f.offerSvc.SubmitOffer(context.Background(), bid(handyman.ID, job.ID, 1800)); err != nil {
		t.Fatalf("bid: %v", err)
	}

	id, err := f.offerSvc.HireHandyman(context.Background(), ports.HireInput{
		JobID: job.ID, HandymanID: handyman.ID, ClientID: "client_1", AgreedPrice: 1700, AgreedHours: 4,
	})
	if err != nil {
		t.Fatalf("hire: %v", err)
	}
	if id == "" {
		t.Error("assignment id must not be empty")
	}

	stored, err := f.assignments.FindByJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("assignment not stored: %v", err)
	}
	// agreed terms may differ from the offer
	if stored.AgreedPrice != 1700 || stored.AgreedHours != 4 {
		t.Errorf("agreed terms wrong: price=%v hours=%d", stored.AgreedPrice, stored.AgreedHours)
	}

	updated, _ := f.jobs.FindByID(context.Background(), job.ID)
	if updated.Status != domain.StatusAssigned {
		t.Errorf("job must transition to assigned, got %q", updated.Status)
	}

	offers, _ := f.offers.ListByJob(context.Background(), job.ID)
	if len(offers) != 0 {
		t.Errorf("competing offers must be cleared after hire, got %d", len(offers))
	}
}

func TestOfferService_Hire_MissingJob(t *testing.T) {
	f := newLifecycleFixture()

	_, err := f.offerSvc.HireHandyman(context.Background(), ports.HireInput{
		JobID: "no_such_job", HandymanID: "h1", ClientID: "c1", AgreedPrice: 100, AgreedHours: 1,
	})
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestOfferService_Hire_OtherClientsJobForbidden(t *testing.T) {
	f := newLifecycleFixture()
	job := f.postJob(t, "client_1")

	_, err := f.offerSvc.HireHandyman(context.Background(), ports.HireInput{
		JobID: job.ID, HandymanID: "h1", ClientID: "client_2", AgreedPrice: 100, AgreedHours: 1,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if assigned, _ := f.assignments.FindByJob(context.Background(), job.ID); assigned != nil {
		t.Fatalf("no assignment should exist, got %+v", assigned)
	}
}

func TestOfferService_Hire_SecondAttemptFails(t *testing.T) {
	f := newLifecycleFixture()
	job := f.postJob(t, "client_1")

	if _, err := f.offerSvc.HireHandyman(context.Background(), ports.HireInput{
		JobID: job.ID, HandymanID: "h1", ClientID: "client_1", AgreedPrice: 100, AgreedHours: 1,
	}); err != nil {
		t.Fatalf("first hire: %v", err)
	}

	_, err := f.offerSvc.HireHandyman(context.Background(), ports.HireInput{
		JobID: job.ID, HandymanID: "h2", ClientID: "client_1", AgreedPrice: 90, AgreedHours: 2,
	})
	if !errors.Is(err, domain.ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
}

// TestOfferService_Hire_ConcurrentSingleWinner issues N simultaneous hire
// attempts for the same job and requires exactly one success; the store's
// one-per-job guarantee is the arbiter.
func TestOfferService_Hire_ConcurrentSingleWinner(t *testing.T) {
	f := newLifecycleFixture()
	job := f.postJob(t, "client_1")

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)

	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			<-start
			_, err := f.offerSvc.HireHandyman(context.Background(), ports.HireInput{
				JobID:       job.ID,
				HandymanID:  "handyman",
				ClientID:    "client_1",
				AgreedPrice: float64(100 + n),
				AgreedHours: 1,
			})
			results[n] = err
		}(i)
	}
	close(start)
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrAlreadyAssigned):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("expected exactly 1 winner, got %d", wins)
	}
	if conflicts != attempts-1 {
		t.Errorf("expected %d conflicts, got %d", attempts-1, conflicts)
	}

	if len(f.assignments.byJob) != 1 {
		t.Fatalf("assignment store must hold exactly 1 row for the job, got %d", len(f.assignments.byJob))
	}
}

// ---------------------------------------------------------------------------
// End-to-end lifecycle
// ---------------------------------------------------------------------------

func TestJobLifecycle_PostBidListHire(t *testing.T) {
	f := newLifecycleFixture()

	client, err := f.users.Create(context.Background(), &domain.User{
		FirstName: "Marge", LastName: "Simpson", PhoneNumber: "5550001", Role: domain.RoleClient,
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	handyman := f.addHandyman(t, "Ned", "Flanders")

	job := f.postJob(t, client.ID)

	offer, err := f.offerSvc.SubmitOffer(context.Background(), bid(handyman.ID, job.ID, 1800))
	if err != nil {
		t.Fatalf("bid: %v", err)
	}

	views, err := f.offerSvc.ListOffers(context.Background(), job.ID)
	if err != nil || len(views) != 1 || views[0].ID != offer.OfferID {
		t.Fatalf("expected the single submitted offer, got %v (err %v)", views, err)
	}

	assignmentID, err := f.offerSvc.HireHandyman(context.Background(), ports.HireInput{
		JobID: job.ID, HandymanID: handyman.ID, ClientID: client.ID, AgreedPrice: 1800, AgreedHours: 3,
	})
	if err != nil {
		t.Fatalf("hire: %v", err)
	}
	if assignmentID == "" {
		t.Fatal("assignment id must not be empty")
	}

	_, err = f.offerSvc.HireHandyman(context.Background(), ports.HireInput{
		JobID: job.ID, HandymanID: handyman.ID, ClientID: client.ID, AgreedPrice: 1800, AgreedHours: 3,
	})
	if !errors.Is(err, domain.ErrAlreadyAssigned) {
		t.Fatalf("second hire must fail with ErrAlreadyAssigned, got %v", err)
	}
}
