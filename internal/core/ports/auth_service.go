package ports

import (
	"context"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

// RegisterInput carries all fields collected by the registration form.
type RegisterInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Password    string
	Address     string
	City        string
	State       string
	PostalCode  string
	Role        string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token  string
	UserID string
	Role   string
}

// ProfileView is the subset of user fields exposed by the profile endpoint.
type ProfileView struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
	City        string
	State       string
	PostalCode  string
	Role        string
}

// AuthService implements registration, login, and profile retrieval.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, phoneNumber, password string) (*LoginResult, error)
	Profile(ctx context.Context, userID string) (*ProfileView, error)
}
