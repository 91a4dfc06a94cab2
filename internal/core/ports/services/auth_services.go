package services

import (
	"context"

	"github.com/finbooks/finbooks/internal/dto"
)

// AuthSvc defines authentication operations.
type AuthSvc interface {
	// Login verifies credentials and issues a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
