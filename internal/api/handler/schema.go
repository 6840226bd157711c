package handler

import "time"

// Request and response types for the JSON API. These are intentionally
// separate from ports/domain types so the wire contract is not coupled
// to internal service changes.

// errorResponse mirrors the envelope rendered by the central error handler.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	FirstName   string `json:"first_name"   validate:"required"`
	LastName    string `json:"last_name"    validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password"     validate:"required,min=8"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	UserType    string `json:"user_type"    validate:"required,oneof=client handyman"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password"     validate:"required"`
}

type loginResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
}

type profileResponse struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	UserType    string `json:"user_type"`
}

// postJobRequest leaves the budget and timing fields untyped so the
// service can apply the lenient coercion policy instead of a bind error.
type postJobRequest struct {
	Title             string `json:"title"               validate:"required"`
	Description       string `json:"description"`
	Address           string `json:"address"`
	City              string `json:"city"`
	State             string `json:"state"`
	PostalCode        string `json:"postal_code"`
	PreferredDateTime string `json:"preferred_date_time" validate:"required"`
	FlexibleTiming    any    `json:"flexible_timing"`
	BudgetRangeMin    any    `json:"budget_range_min"`
	BudgetRangeMax    any    `json:"budget_range_max"`
}

type postJobResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

type jobResponse struct {
	JobID             string    `json:"job_id"`
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
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

type makeOfferRequest struct {
	OfferAmount     float64 `json:"offer_amount"     validate:"required,gt=0"`
	AvailableDate   string  `json:"available_date"`
	EstimatedHours  int     `json:"estimated_hours"  validate:"gte=0"`
	AdditionalNotes string  `json:"additional_notes"`
}

type makeOfferResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ApplicationID string `json:"application_id"`
	Replaced      bool   `json:"replaced"`
}

type offerResponse struct {
	ApplicationID    string    `json:"application_id"`
	JobID            string    `json:"job_id"`
	HandymanID       string    `json:"handyman_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	PriceQuote       float64   `json:"price_quote"`
	AvailabilityDate string    `json:"availability_date"`
	EstimatedHours   int       `json:"estimated_hours"`
	AdditionalNotes  string    `json:"additional_notes"`
	PostedBy         string    `json:"posted_by"`
	CreatedAt        time.Time `json:"created_at"`
}

type hireRequest struct {
	HandymanID  string  `json:"handyman_id"  validate:"required"`
	AgreedPrice float64 `json:"agreed_price" validate:"required,gt=0"`
	AgreedHours int     `json:"agreed_hours" validate:"gte=0"`
}

type hireResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AssignmentID string `json:"assignment_id"`
}
