package ports

import (
	"context"
	"time"

	"github.com/handyman/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence for users and their session tokens.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByPhone(ctx context.Context, phoneNumber string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// SetToken replaces the user's session token and expiry. The previous
	// token stops resolving immediately.
	SetToken(ctx context.Context, userID, token string, expiry time.Time) error
	// FindByIDs returns the users for the given ids; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
}

// SessionResolver maps an opaque bearer token to an identity. A token
// past its stored expiry resolves to domain.ErrUnauthenticated.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}
