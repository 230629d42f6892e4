package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStorages(t *testing.T) (*Storages, *DB) {
	t.Helper()
	ctx := context.Background()

	db, err := NewConnect(ctx, config.DB{
		Driver:       config.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "catalog.db"),
		QueryTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return NewStorages(db, logger.Nop()), db
}

func TestNewConnect_UnknownDriver(t *testing.T) {
	_, err := NewConnect(context.Background(), config.DB{Driver: "oracle"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestSQLite_UserLifecycle(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()
	users := s.UserRepository

	saved, err := users.Save(ctx, models.User{
		Username:     "king",
		PasswordHash: "hash",
		FirstName:    "King",
		Email:        "king@example.com",
		Role:         models.RoleStudent,
		Enabled:      true,
	})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	assert.Equal(t, int64(0), saved.UpdateCounter)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.Nil(t, saved.UpdatedAt)

	found, err := users.FindByUsername(ctx, "king")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, found.ID)
	assert.True(t, found.Enabled)

	// lookups are case-sensitive
	_, err = users.FindByUsername(ctx, "KING")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = users.Save(ctx, models.User{Username: "king", PasswordHash: "h", FirstName: "X", Email: "other@example.com", Role: models.RoleStudent})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = users.Save(ctx, models.User{Username: "other", PasswordHash: "h", FirstName: "X", Email: "king@example.com", Role: models.RoleStudent})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	found.LastName = "Cobra"
	updated, err := users.Save(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.UpdateCounter)
	assert.Equal(t, "Cobra", updated.LastName)
	assert.NotNil(t, updated.UpdatedAt)

	// the copy read before the update is now stale
	_, err = users.Save(ctx, found)
	assert.ErrorIs(t, err, ErrStaleWrite)

	exists, err := users.ExistsByEmailAndIDNot(ctx, "king@example.com", saved.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, users.DeleteByID(ctx, saved.ID))
	assert.ErrorIs(t, users.DeleteByID(ctx, saved.ID), ErrUserNotFound)

	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLite_UserLookupsAgree(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()
	users := s.UserRepository

	// another row so the lookups have something to pick the wrong one from
	_, err := users.Save(ctx, models.User{Username: "king", PasswordHash: "h1", FirstName: "King", Email: "King@gmail.com", Role: models.RoleStudent, Enabled: true})
	require.NoError(t, err)

	saved, err := users.Save(ctx, models.User{
		Username:     "user",
		PasswordHash: "$argon2id$v=19$m=64,t=1,p=1$c2FsdA$aGFzaA",
		FirstName:    "user",
		LastName:     "king",
		Email:        "user@gmail.com",
		Role:         models.RoleAdmin,
		Enabled:      false,
	})
	require.NoError(t, err)

	withoutTimestamps := func(u models.User) models.User {
		u.CreatedAt = time.Time{}
		u.UpdatedAt = nil
		return u
	}

	byID, err := users.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	byUsername, err := users.FindByUsername(ctx, "user")
	require.NoError(t, err)
	byEmail, err := users.FindByEmail(ctx, "user@gmail.com")
	require.NoError(t, err)

	want := withoutTimestamps(saved)
	assert.Equal(t, want, withoutTimestamps(byID))
	assert.Equal(t, want, withoutTimestamps(byUsername))
	assert.Equal(t, want, withoutTimestamps(byEmail))

	assert.Equal(t, "user king", byEmail.FullName())
	assert.Equal(t, models.RoleAdmin, byID.Role)
	assert.False(t, byUsername.Enabled)
	assert.WithinDuration(t, saved.CreatedAt, byID.CreatedAt, time.Second)

	_, err = users.FindByID(ctx, saved.ID+100)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = users.FindByEmail(ctx, "nobody@gmail.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSQLite_UnknownRoleIsNotStored(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()

	_, err := s.UserRepository.Save(ctx, models.User{Username: "root", PasswordHash: "h", FirstName: "R", Email: "root@example.com", Role: "ROOT"})
	assert.ErrorIs(t, err, ErrUnknownRole)

	n, err := s.UserRepository.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLite_CourseLifecycle(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()
	courses := s.CourseRepository

	hours := 40
	saved, err := courses.Save(ctx, models.Course{Title: "Go", Description: "Basics", DurationInHours: &hours, CreatedBy: "user"})
	require.NoError(t, err)
	assert.Nil(t, saved.Fees)
	require.NotNil(t, saved.DurationInHours)
	assert.Equal(t, 40, *saved.DurationInHours)

	_, err = courses.Save(ctx, models.Course{Title: "Go", Description: "Again"})
	assert.ErrorIs(t, err, ErrDuplicateCourseTitle)

	fees := 10.5
	saved.Fees = &fees
	saved.UpdatedBy = "user"
	updated, err := courses.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Version)
	require.NotNil(t, updated.Fees)
	assert.InDelta(t, 10.5, *updated.Fees, 0.001)

	_, err = courses.Save(ctx, saved)
	assert.ErrorIs(t, err, ErrStaleWrite)

	all, err := courses.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLite_InTxRollsBack(t *testing.T) {
	s, db := newSQLiteStorages(t)
	ctx := context.Background()

	err := db.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.UserRepository.Save(ctx, models.User{Username: "a", PasswordHash: "h", FirstName: "A", Email: "a@example.com", Role: models.RoleStudent}); err != nil {
			return err
		}
		_, err := s.UserRepository.Save(ctx, models.User{Username: "a", PasswordHash: "h", FirstName: "A", Email: "b@example.com", Role: models.RoleStudent})
		return err
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	n, err := s.UserRepository.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
