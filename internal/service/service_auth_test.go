package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/mock"
	"github.com/MKhiriev/go-course-catalog/internal/store"
	"github.com/MKhiriev/go-course-catalog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAuthService(ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository, *mock.MockPasswordHasher) {
	repo := mock.NewMockUserRepository(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	return NewAuthService(repo, hasher, logger.Nop()), repo, hasher
}

func storedUser() models.User {
	return models.User{ID: 3, Username: "king", PasswordHash: "$stored", Role: models.RoleStudent, Enabled: true}
}

func TestAuthenticate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newTestAuthService(ctrl)
	ctx := context.Background()

	repo.EXPECT().FindByUsername(ctx, "king").Return(storedUser(), nil)
	hasher.EXPECT().Verify("king123", "$stored").Return(true)

	p, err := svc.Authenticate(ctx, "king", "king123")
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.UserID)
	assert.Equal(t, models.RoleStudent, p.Role)
	assert.Empty(t, p.PasswordHash, "the returned principal must not carry the hash")
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newTestAuthService(ctrl)
	ctx := context.Background()

	repo.EXPECT().FindByUsername(ctx, "king").Return(storedUser(), nil)
	hasher.EXPECT().Verify("nope", "$stored").Return(false)

	_, err := svc.Authenticate(ctx, "king", "nope")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticate_UnknownUserStillVerifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newTestAuthService(ctrl)
	ctx := context.Background()

	repo.EXPECT().FindByUsername(ctx, "ghost").Return(models.User{}, store.ErrUserNotFound).Times(2)
	hasher.EXPECT().Hash(gomock.Any()).Return("$dummy", nil).Times(1)
	hasher.EXPECT().Verify("pw", "$dummy").Return(false).Times(2)

	for range 2 {
		_, err := svc.Authenticate(ctx, "ghost", "pw")
		assert.ErrorIs(t, err, ErrBadCredentials)
	}
}

func TestAuthenticate_DummyHashFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, hasher := newTestAuthService(ctrl)
	ctx := context.Background()

	repo.EXPECT().FindByUsername(ctx, "ghost").Return(models.User{}, store.ErrUserNotFound)
	hasher.EXPECT().Hash(gomock.Any()).Return("", errors.New("rng failure"))
	hasher.EXPECT().Verify("pw", fallbackDummyHash).Return(false)

	_, err := svc.Authenticate(ctx, "ghost", "pw")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticate_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestAuthService(ctrl)
	ctx := context.Background()

	u := storedUser()
	u.Enabled = false
	repo.EXPECT().FindByUsername(ctx, "king").Return(u, nil)

	_, err := svc.Authenticate(ctx, "king", "king123")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthenticate_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestAuthService(ctrl)
	ctx := context.Background()

	dbErr := errors.New("connection refused")
	repo.EXPECT().FindByUsername(ctx, "king").Return(models.User{}, dbErr)

	_, err := svc.Authenticate(ctx, "king", "king123")
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrBadCredentials)
}

func TestLoadPrincipal(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestAuthService(ctrl)
	ctx := context.Background()

	repo.EXPECT().FindByUsername(ctx, "king").Return(storedUser(), nil)
	repo.EXPECT().FindByUsername(ctx, "ghost").Return(models.User{}, store.ErrUserNotFound)

	p, err := svc.LoadPrincipal(ctx, "king")
	require.NoError(t, err)
	assert.Equal(t, "$stored", p.PasswordHash)

	_, err = svc.LoadPrincipal(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
