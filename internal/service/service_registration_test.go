package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-course-catalog/internal/app"
	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/crypto"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/mock"
	"github.com/MKhiriev/go-course-catalog/internal/store"
	"github.com/MKhiriev/go-course-catalog/internal/validators"
	"github.com/MKhiriev/go-course-catalog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func eve() models.RegistrationPayload {
	return models.RegistrationPayload{
		Username:  "eve",
		Password:  "evepass1",
		FirstName: "Eve",
		Email:     "eve@x.com",
	}
}

func fastHasher() crypto.PasswordHasher {
	return crypto.NewPasswordHasher(config.Security{HashTime: 1, HashMemoryKiB: 64, HashThreads: 1})
}

func asFieldErrors(t *testing.T, err error) validators.FieldErrors {
	t.Helper()
	var fe validators.FieldErrors
	require.True(t, errors.As(err, &fe), "expected FieldErrors, got %v", err)
	return fe
}

func TestRegister_ForcesStudentAndHashes(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	hasher := fastHasher()
	svc := NewRegistrationService(repo, hasher, validators.NewFormValidator(), logger.Nop())
	ctx := context.Background()

	repo.EXPECT().ExistsByEmail(ctx, "eve@x.com").Return(false, nil)
	repo.EXPECT().ExistsByUsername(ctx, "eve").Return(false, nil)
	repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
		assert.Equal(t, models.RoleStudent, u.Role)
		assert.True(t, u.Enabled)
		assert.NotEqual(t, "evepass1", u.PasswordHash)
		assert.True(t, hasher.Verify("evepass1", u.PasswordHash))
		u.ID = 10
		return u, nil
	})

	user, err := svc.Register(ctx, eve())
	require.NoError(t, err)
	assert.Equal(t, int64(10), user.ID)
	assert.Equal(t, "Eve", user.FullName())
}

func TestRegister_DuplicatesReportedTogether(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewRegistrationService(repo, mock.NewMockPasswordHasher(ctrl), validators.NewFormValidator(), logger.Nop())
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().ExistsByEmail(ctx, "eve@x.com").Return(true, nil),
		repo.EXPECT().ExistsByUsername(ctx, "eve").Return(true, nil),
	)

	_, err := svc.Register(ctx, eve())
	fe := asFieldErrors(t, err)
	require.Len(t, fe, 2)
	assert.Equal(t, validators.FieldError{Field: "email", Code: validators.CodeDuplicate, Message: app.MsgEmailAlreadyExists}, fe[0])
	assert.Equal(t, validators.FieldError{Field: "username", Code: validators.CodeDuplicate, Message: app.MsgUsernameAlreadyExists}, fe[1])
}

func TestRegister_InvalidSkipsUniquenessQueries(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewRegistrationService(repo, mock.NewMockPasswordHasher(ctrl), validators.NewFormValidator(), logger.Nop())

	p := eve()
	p.Password = "123"
	p.Email = "not-an-email"

	_, err := svc.Register(context.Background(), p)
	fe := asFieldErrors(t, err)
	assert.True(t, fe.Has("password", validators.CodeSizeMin))
	assert.True(t, fe.Has("email", validators.CodeEmailSyntax))
}

func TestRegister_RaceOnSaveBecomesFieldError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	svc := NewRegistrationService(repo, hasher, validators.NewFormValidator(), logger.Nop())
	ctx := context.Background()

	repo.EXPECT().ExistsByEmail(ctx, gomock.Any()).Return(false, nil)
	repo.EXPECT().ExistsByUsername(ctx, gomock.Any()).Return(false, nil)
	hasher.EXPECT().Hash("evepass1").Return("$hash", nil)
	repo.EXPECT().Save(ctx, gomock.Any()).Return(models.User{}, store.ErrDuplicateUsername)

	_, err := svc.Register(ctx, eve())
	fe := asFieldErrors(t, err)
	assert.True(t, fe.Has("username", validators.CodeDuplicate))
}

func TestRegister_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	svc := NewRegistrationService(repo, mock.NewMockPasswordHasher(ctrl), validators.NewFormValidator(), logger.Nop())
	ctx := context.Background()

	repo.EXPECT().ExistsByEmail(ctx, gomock.Any()).Return(false, errors.New("db down"))

	_, err := svc.Register(ctx, eve())
	require.Error(t, err)
	var fe validators.FieldErrors
	assert.False(t, errors.As(err, &fe))
}
