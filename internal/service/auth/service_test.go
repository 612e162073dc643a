package auth

import (
	"context"
	"testing"

	"github.com/dokterku/presensi-backend-go/internal/domain/auth"
	"github.com/dokterku/presensi-backend-go/internal/domain/user"
	"github.com/dokterku/presensi-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func newAuthFixture(t *testing.T) (auth.AuthService, *fakeUserRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]user.User{
		"user-1": {
			ID:           "user-1",
			Email:        "dokter@dokterku.id",
			Name:         "dr. Rina",
			PasswordHash: string(hash),
			Role:         user.RoleDokter,
			Active:       true,
		},
	}}

	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	return NewAuthService(repo, jwtService), repo
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "dokter@dokterku.id",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, "dokter", resp.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "dokter@dokterku.id",
		Password: "salah",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "tidak-ada@dokterku.id",
		Password: "rahasia123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, repo := newAuthFixture(t)
	u := repo.users["user-1"]
	u.Active = false
	repo.users["user-1"] = u

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "dokter@dokterku.id",
		Password: "rahasia123",
	})
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}

func TestProfile_Success(t *testing.T) {
	svc, _ := newAuthFixture(t)

	profile, err := svc.Profile(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, "dokter@dokterku.id", profile.Email)
	assert.Equal(t, "dr. Rina", profile.Name)
	assert.Equal(t, "dokter", profile.Role)
}

func TestProfile_UnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Profile(context.Background(), "user-404")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestProfile_DeactivatedAccountLosesAccess(t *testing.T) {
	svc, repo := newAuthFixture(t)
	u := repo.users["user-1"]
	u.Active = false
	repo.users["user-1"] = u

	// A token issued before deactivation must not keep the profile reachable.
	_, err := svc.Profile(context.Background(), "user-1")
	assert.ErrorIs(t, err, auth.ErrUserInactive)
}
