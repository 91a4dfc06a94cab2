package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbooks/finbooks/internal/apperrors"
	portsrepo "github.com/finbooks/finbooks/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/dto"
	"github.com/finbooks/finbooks/internal/utils"
)

// ErrInvalidCredentials is returned on any login failure. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)

// authService issues JWTs against stored bcrypt credentials.
type authService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvc {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.AuthSvc = (*authService)(nil)

// Login verifies credentials and issues a signed token carrying the
// user's admin claim.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogInfo(ctx, "Login failed", "username", req.Username)
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.UserID, user.IsAdmin, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate token")
		return nil, err
	}

	s.LogInfo(ctx, "Login succeeded", "user_id", user.UserID)
	return &dto.LoginResponse{
		Token:   token,
		User:    dto.ToUserResponse(user),
		Expires: time.Now().Add(s.jwtExpiry).Unix(),
	}, nil
}
