package service

import (
	"context"

	"pollbase/internal/domain"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Login exchanges credentials for a platform session
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.Session, error)

	// Register creates a new account on the platform
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.Session, error)

	// ValidateToken verifies a platform-issued token and returns the
	// acting identity
	ValidateToken(ctx context.Context, token string) (*domain.Identity, error)
}
