package domain

import (
	"errors"
	"time"
)

// JobStatus represents the lifecycle state of a posted job.
type JobStatus string

const (
	StatusOpen      JobStatus = "open"
	StatusAssigned  JobStatus = "assigned"
	StatusCompleted JobStatus = "completed"
	StatusCancelled JobStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// Only open → assigned is reachable through the API today; the rest
// exist so later endpoints cannot invent illegal edges.
var validTransitions = map[JobStatus][]JobStatus{
	StatusOpen:     {StatusAssigned, StatusCancelled},
	StatusAssigned: {StatusCompleted, StatusCancelled},
}

var ErrInvalidTransition = errors.New("invalid job status transition")
var ErrJobNotFound = errors.New("job not found")
var ErrAlreadyAssigned = errors.New("job already assigned")
var ErrValidation = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Job is a client-posted request for handyman work.
type Job struct {
	ID                string    `json:"job_id"`
	ClientID          string    `json:"client_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	PostalCode        string    `json:"postal_code"`
	PreferredDateTime time.Time `json:"preferred_date_time"`
	FlexibleTiming    bool      `json:"flexible_timing"`
	BudgetRangeMin    int64     `json:"budget_range_min"`
	BudgetRangeMax    int64     `json:"budget_range_max"`
	Status            JobStatus `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}
