package domain

import (
	"errors"
	"time"
)

const (
	RoleClient   = "client"
	RoleHandyman = "handyman"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("unauthenticated")

// User models a registered actor: a client who posts jobs or a handyman who bids.
type User struct {
	ID           string    `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Role         string    `json:"user_type"`
	Token        string    `json:"-"`
	TokenExpiry  time.Time `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the identity a bearer token resolves to. A token resolves
// only while now < TokenExpiry; anything else is ErrUnauthenticated.
type Session struct {
	UserID string
	Role   string
}
