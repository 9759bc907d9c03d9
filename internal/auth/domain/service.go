package domain

import (
	"context"
	"errors"
	"time"

	professionaldomain "github.com/loanridge/loanridge/internal/professional/domain"
)

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	Professional professionaldomain.Professional
	Token        string
	ExpiresAt    time.Time
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	Logout(ctx context.Context, token string) error

	// Resolve maps a raw session token to the professional it
	// authenticates. Expired and revoked sessions do not resolve.
	Resolve(ctx context.Context, token string) (professionaldomain.Professional, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSessionExpired     = errors.New("session_expired")
)
