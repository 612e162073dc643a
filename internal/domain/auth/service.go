package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Profile resolves the account behind a verified token. A deactivated
	// account gets ErrUserInactive even when its token is still valid.
	Profile(ctx context.Context, userID string) (ProfileResponse, error)
}
