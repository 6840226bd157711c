package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/handyman/marketplace-api/internal/core/domain"
	"github.com/handyman/marketplace-api/internal/core/ports"
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// AuthService implements registration, login, and profile retrieval.
// Sessions are opaque random tokens stored on the user with an expiry;
// logging in again replaces the previous token.
type AuthService struct {
	repo     ports.UserRepository
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	phone := nonDigits.ReplaceAllString(input.PhoneNumber, "")
	if phone == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: phone number and password are required", domain.ErrValidation)
	}
	if input.Role != domain.RoleClient && input.Role != domain.RoleHandyman {
		return nil, fmt.Errorf("%w: user_type must be client or handyman", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		PostalCode:   nonDigits.ReplaceAllString(input.PostalCode, ""),
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, phoneNumber, password string) (*ports.LoginResult, error) {
	phone := nonDigits.ReplaceAllString(phoneNumber, "")
	if phone == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	expiry := time.Now().UTC().Add(s.tokenTTL)
	if err := s.repo.SetToken(ctx, user.ID, token, expiry); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Time("token_expiry", expiry).Msg("login successful")

	return &ports.LoginResult{Token: token, UserID: user.ID, Role: user.Role}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*ports.ProfileView, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ports.ProfileView{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		City:        user.City,
		State:       user.State,
		PostalCode:  user.PostalCode,
		Role:        user.Role,
	}, nil
}

// generateToken returns a 32-character hex bearer token.
func generateToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
