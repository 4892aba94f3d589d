package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/intake-api/internal/model"
	"github.com/jwalitptl/intake-api/pkg/auth"
	apperrors "github.com/jwalitptl/intake-api/pkg/errors"
	"github.com/jwalitptl/intake-api/pkg/logger"
	"github.com/jwalitptl/intake-api/pkg/security"
)

type stubUserRepo struct {
	byEmail map[string]*model.User
}

func (r *stubUserRepo) Create(ctx context.Context, u *model.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, errors.New("no rows")
	}
	return u, nil
}

func (r *stubUserRepo) Update(ctx context.Context, u *model.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func newTestService() (*Service, *stubUserRepo) {
	repo := &stubUserRepo{byEmail: make(map[string]*model.User)}
	tokens := auth.NewJWTService("test-secret", time.Hour)
	hasher := security.NewBcryptHasher(4)
	return NewService(repo, tokens, hasher, logger.NewLogger(nil)), repo
}

func seedUser(t *testing.T, repo *stubUserRepo, password string) *model.User {
	t.Helper()
	hash, err := security.NewBcryptHasher(4).Hash(password)
	require.NoError(t, err)

	u := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        "staff@example.com",
		Name:         "Staff Member",
		PasswordHash: hash,
		Status:       model.UserStatusActive,
	}
	repo.byEmail[u.Email] = u
	return u
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService()
	seedUser(t, repo, "correct-horse")

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "staff@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := newTestService()
	user := seedUser(t, repo, "correct-horse")

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "staff@example.com",
		Password: "wrong",
	})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
	assert.Equal(t, 1, user.LoginAttempts)
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	svc, repo := newTestService()
	user := seedUser(t, repo, "correct-horse")

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := svc.Login(context.Background(), &model.LoginRequest{
			Email:    "staff@example.com",
			Password: "wrong",
		})
		require.Error(t, err)
	}
	assert.Equal(t, model.UserStatusLocked, user.Status)

	// Even the right password is refused once locked.
	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "staff@example.com",
		Password: "correct-horse",
	})
	assert.Error(t, err)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService()

	user, err := svc.Register(context.Background(), &model.CreateUserRequest{
		Email:    "new@example.com",
		Name:     "New Staff",
		Password: "long-enough-password",
	})
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusActive, user.Status)
	assert.NotEqual(t, "long-enough-password", user.PasswordHash)
	assert.Contains(t, repo.byEmail, "new@example.com")

	_, err = svc.Register(context.Background(), &model.CreateUserRequest{
		Email:    "short@example.com",
		Name:     "Short",
		Password: "short",
	})
	assert.Error(t, err, "password below minimum length is rejected")
}
