package ports

import (
	"context"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

// SubmitOfferInput carries a handyman's bid on a job.
type SubmitOfferInput struct {
	HandymanID       string
	JobID            string
	PriceQuote       float64
	AvailabilityDate string
	EstimatedHours   int
	AdditionalNotes  string
}

// OfferView is an offer joined with the bidder's display name.
type OfferView struct {
	domain.Offer
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SubmitOfferResult reports the stored offer id and whether it replaced
// a previous bid from the same handyman.
type SubmitOfferResult struct {
	OfferID  string
	Replaced bool
}

// HireInput carries the hire decision. AgreedPrice and AgreedHours are
// supplied by the client and may differ from the offer values.
type HireInput struct {
	JobID       string
	HandymanID  string
	ClientID    string
	AgreedPrice float64
	AgreedHours int
}

// OfferService defines the offer/hire side of the job lifecycle.
type OfferService interface {
	SubmitOffer(ctx context.Context, input SubmitOfferInput) (*SubmitOfferResult, error)
	// ListOffers fails with domain.ErrJobNotFound for a missing job; a
	// job with zero bids yields an empty, non-nil slice.
	ListOffers(ctx context.Context, jobID string) ([]OfferView, error)
	HireHandyman(ctx context.Context, input HireInput) (string, error)
}
