package domain

import "time"

// Offer is a handyman's bid on a job. At most one offer exists per
// (job, handyman) pair; resubmitting replaces the previous values.
type Offer struct {
	ID               string    `json:"application_id"`
	JobID            string    `json:"job_id"`
	HandymanID       string    `json:"handyman_id"`
	PriceQuote       float64   `json:"price_quote"`
	AvailabilityDate string    `json:"availability_date"`
	EstimatedHours   int       `json:"estimated_hours"`
	AdditionalNotes  string    `json:"additional_notes"`
	// PostedBy is the job's client id, denormalized at offer time.
	PostedBy  string    `json:"posted_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Assignment binds one handyman to one job. The agreed price and hours
// are supplied by the hiring client and may differ from the offer.
type Assignment struct {
	ID          string    `json:"assignment_id"`
	JobID       string    `json:"job_id"`
	HandymanID  string    `json:"handyman_id"`
	ClientID    string    `json:"client_id"`
	AgreedPrice float64   `json:"agreed_price"`
	AgreedHours int       `json:"agreed_hours"`
	CreatedAt   time.Time `json:"created_at"`
}
