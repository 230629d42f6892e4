package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/mock"
	"github.com/MKhiriev/go-course-catalog/internal/store"
	"github.com/MKhiriev/go-course-catalog/internal/validators"
	"github.com/MKhiriev/go-course-catalog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type userServiceMocks struct {
	repo   *mock.MockUserRepository
	tx     *mock.MockTransactor
	hasher *mock.MockPasswordHasher
}

func newTestUserService(ctrl *gomock.Controller) (UserService, userServiceMocks) {
	m := userServiceMocks{
		repo:   mock.NewMockUserRepository(ctrl),
		tx:     mock.NewMockTransactor(ctrl),
		hasher: mock.NewMockPasswordHasher(ctrl),
	}
	m.tx.EXPECT().InTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }).
		AnyTimes()
	return NewUserService(m.repo, m.tx, m.hasher, validators.NewFormValidator(), logger.Nop()), m
}

func editPayload(version int64) models.UserPayload {
	return models.UserPayload{
		Username:  "king",
		FirstName: "Kingsley",
		LastName:  "Cobra",
		Email:     "king@example.com",
		Version:   &version,
	}
}

func TestUserUpdate_CopiesEditableFieldsOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserService(ctrl)
	ctx := context.Background()

	stored := models.User{ID: 3, Username: "king", PasswordHash: "$old", FirstName: "King", Email: "king@example.com", Role: models.RoleStudent, Enabled: true, UpdateCounter: 2}

	m.repo.EXPECT().ExistsByEmailAndIDNot(ctx, "king@example.com", int64(3)).Return(false, nil)
	m.repo.EXPECT().ExistsByUsernameAndIDNot(ctx, "king", int64(3)).Return(false, nil)
	m.repo.EXPECT().FindByID(ctx, int64(3)).Return(stored, nil)
	m.repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		assert.Equal(t, "Kingsley", u.FirstName)
		assert.Equal(t, "Cobra", u.LastName)
		assert.Equal(t, "$old", u.PasswordHash, "empty password keeps the hash")
		assert.Equal(t, models.RoleStudent, u.Role)
		assert.True(t, u.Enabled)
		assert.Equal(t, int64(2), u.UpdateCounter)
		u.UpdateCounter++
		return u, nil
	})

	saved, err := svc.Update(ctx, 3, editPayload(2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), saved.UpdateCounter)
}

func TestUserUpdate_NewPasswordIsHashed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserService(ctrl)
	ctx := context.Background()

	m.repo.EXPECT().ExistsByEmailAndIDNot(ctx, gomock.Any(), int64(3)).Return(false, nil)
	m.repo.EXPECT().ExistsByUsernameAndIDNot(ctx, gomock.Any(), int64(3)).Return(false, nil)
	m.repo.EXPECT().FindByID(ctx, int64(3)).Return(models.User{ID: 3, PasswordHash: "$old"}, nil)
	m.hasher.EXPECT().Hash("newpass1").Return("$new", nil)
	m.repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		assert.Equal(t, "$new", u.PasswordHash)
		return u, nil
	})

	p := editPayload(0)
	p.Password = "newpass1"
	_, err := svc.Update(ctx, 3, p)
	require.NoError(t, err)
}

func TestUserUpdate_StaleFormVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserService(ctrl)
	ctx := context.Background()

	m.repo.EXPECT().ExistsByEmailAndIDNot(ctx, gomock.Any(), gomock.Any()).Return(false, nil)
	m.repo.EXPECT().ExistsByUsernameAndIDNot(ctx, gomock.Any(), gomock.Any()).Return(false, nil)
	m.repo.EXPECT().FindByID(ctx, int64(3)).Return(models.User{ID: 3, UpdateCounter: 5}, nil)

	_, err := svc.Update(ctx, 3, editPayload(4))
	assert.ErrorIs(t, err, ErrStaleWrite)
}

func TestUserUpdate_DuplicateEmailOfOtherUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserService(ctrl)
	ctx := context.Background()

	m.repo.EXPECT().ExistsByEmailAndIDNot(ctx, "king@example.com", int64(3)).Return(true, nil)
	m.repo.EXPECT().ExistsByUsernameAndIDNot(ctx, "king", int64(3)).Return(false, nil)

	_, err := svc.Update(ctx, 3, editPayload(0))
	fe := asFieldErrors(t, err)
	assert.True(t, fe.Has("email", validators.CodeDuplicate))
	assert.False(t, fe.Has("username", ""))
}

func TestUserUpdate_RequiresVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestUserService(ctrl)

	p := editPayload(0)
	p.Version = nil
	_, err := svc.Update(context.Background(), 3, p)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUserUpdate_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserService(ctrl)
	ctx := context.Background()

	m.repo.EXPECT().ExistsByEmailAndIDNot(ctx, gomock.Any(), gomock.Any()).Return(false, nil)
	m.repo.EXPECT().ExistsByUsernameAndIDNot(ctx, gomock.Any(), gomock.Any()).Return(false, nil)
	m.repo.EXPECT().FindByID(ctx, int64(9)).Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Update(ctx, 9, editPayload(0))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserGetAndDelete_MapNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserService(ctrl)
	ctx := context.Background()

	m.repo.EXPECT().FindByID(ctx, int64(9)).Return(models.User{}, store.ErrUserNotFound)
	m.repo.EXPECT().DeleteByID(ctx, int64(9)).Return(store.ErrUserNotFound)

	_, err := svc.Get(ctx, 9)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 9), ErrUserNotFound)
}

func TestUserCreateAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserService(ctrl)
	ctx := context.Background()

	m.repo.EXPECT().ExistsByEmail(ctx, gomock.Any()).Return(false, nil)
	m.repo.EXPECT().ExistsByUsername(ctx, gomock.Any()).Return(false, nil)
	m.hasher.EXPECT().Hash("evepass1").Return("$hash", nil)
	m.repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		return u, nil
	})

	user, err := svc.CreateAdmin(ctx, eve())
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestUserResetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestUserService(ctrl)
	ctx := context.Background()

	m.hasher.EXPECT().Hash("secret1").Return("$new", nil)
	m.repo.EXPECT().FindByUsername(ctx, "king").Return(models.User{ID: 3, Username: "king"}, nil)
	m.repo.EXPECT().Save(ctx, models.User{ID: 3, Username: "king", PasswordHash: "$new"}).Return(models.User{}, nil)

	require.NoError(t, svc.ResetPassword(ctx, "king", "secret1"))
}

func TestUserResetPassword_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestUserService(ctrl)

	for _, pw := range []string{"", "123"} {
		err := svc.ResetPassword(context.Background(), "king", pw)
		fe := asFieldErrors(t, err)
		assert.True(t, fe.Has("password", ""), "password %q", pw)
	}
}
