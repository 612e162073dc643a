package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dokterku/presensi-backend-go/internal/domain/auth"
	"github.com/dokterku/presensi-backend-go/internal/domain/user"
	"github.com/dokterku/presensi-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Same error as a wrong password so the endpoint cannot be
			// used to enumerate accounts.
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !account.Active {
		return auth.LoginResponse{}, auth.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(account.ID, account.Email, account.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		UserID:               account.ID,
		Name:                 account.Name,
		Role:                 string(account.Role),
	}, nil
}

// Profile implements auth.AuthService.
func (s *AuthServiceImpl) Profile(ctx context.Context, userID string) (auth.ProfileResponse, error) {
	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ProfileResponse{}, user.ErrUserNotFound
		}
		return auth.ProfileResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if !account.Active {
		return auth.ProfileResponse{}, auth.ErrUserInactive
	}

	return auth.ProfileResponse{
		UserID: account.ID,
		Email:  account.Email,
		Name:   account.Name,
		Role:   string(account.Role),
	}, nil
}
