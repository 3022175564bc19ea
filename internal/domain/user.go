package domain

import (
	"errors"
	"time"
)

// User is the principal that owns a set of ledger entries.
type User struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Active         bool
}

// User and authentication errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token has expired")
)
