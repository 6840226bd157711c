package domain

import "errors"

var ErrServiceNotFound = errors.New("service not found")

// ServiceCategory is a top-level grouping in the service catalog (plumbing, electrical, …).
type ServiceCategory struct {
	ID          string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url,omitempty"`
}

// Service is a concrete offering inside a category.
type Service struct {
	ID          string `json:"service_id"`
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
