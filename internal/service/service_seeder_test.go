package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/store"
	"github.com/MKhiriev/go-course-catalog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_SeedsOnceIntoEmptyTables(t *testing.T) {
	ctx := context.Background()
	db, err := store.NewConnect(ctx, config.DB{
		Driver:       config.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "seed.db"),
		QueryTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	storages := store.NewStorages(db, logger.Nop())
	hasher := fastHasher()
	seeder := NewSeeder(storages, hasher, logger.Nop())

	seeded, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = seeder.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded, "second run must not insert anything")

	courses, err := storages.CourseRepository.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 4)
	assert.Equal(t, "Java Programming", courses[0].Title)
	assert.Nil(t, courses[0].Fees)

	king, err := storages.UserRepository.FindByUsername(ctx, "king")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, king.Role)
	assert.True(t, hasher.Verify("king123", king.PasswordHash))

	admin, err := storages.UserRepository.FindByUsername(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "user king", admin.FullName())
}
