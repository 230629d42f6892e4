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

func newTestCourseService(ctrl *gomock.Controller) (CourseService, *mock.MockCourseRepository) {
	repo := mock.NewMockCourseRepository(ctrl)
	tx := mock.NewMockTransactor(ctrl)
	tx.EXPECT().InTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }).
		AnyTimes()
	return NewCourseService(repo, tx, validators.NewFormValidator(), logger.Nop()), repo
}

func springBoot() models.CoursePayload {
	hours := 10
	return models.CoursePayload{Title: "Spring Boot", Description: "X", DurationInHours: &hours}
}

// editedSpringBoot is the edit form rendered at version.
func editedSpringBoot(version int64) models.CoursePayload {
	p := springBoot()
	p.Version = &version
	return p
}

func TestCourseCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestCourseService(ctrl)
	ctx := context.Background()

	repo.EXPECT().ExistsByTitle(ctx, "Spring Boot").Return(false, nil)
	repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c models.Course) (models.Course, error) {
		assert.Zero(t, c.ID)
		assert.Equal(t, "user", c.CreatedBy)
		assert.Equal(t, 10, *c.DurationInHours)
		c.ID = 100000
		return c, nil
	})

	saved, err := svc.Create(ctx, springBoot(), "user")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), saved.ID)
}

func TestCourseCreate_DuplicateTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestCourseService(ctrl)
	ctx := context.Background()

	repo.EXPECT().ExistsByTitle(ctx, "Spring Boot").Return(true, nil)

	_, err := svc.Create(ctx, springBoot(), "user")
	fe := asFieldErrors(t, err)
	assert.True(t, fe.Has("title", validators.CodeDuplicate))
}

func TestCourseCreate_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestCourseService(ctrl)

	zero := 0
	negative := -1.0
	_, err := svc.Create(context.Background(), models.CoursePayload{DurationInHours: &zero, Fees: &negative}, "user")
	fe := asFieldErrors(t, err)
	assert.True(t, fe.Has("title", validators.CodeRequired))
	assert.True(t, fe.Has("description", validators.CodeRequired))
	assert.True(t, fe.Has("fees", validators.CodeDecimalMin))
}

func TestCourseUpdate_SelfTitleAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestCourseService(ctrl)
	ctx := context.Background()

	stored := models.Course{ID: 1, Title: "Spring Boot", Description: "old", Version: 3, CreatedBy: "system"}

	repo.EXPECT().ExistsByTitleAndIDNot(ctx, "Spring Boot", int64(1)).Return(false, nil)
	repo.EXPECT().FindByID(ctx, int64(1)).Return(stored, nil)
	repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c models.Course) (models.Course, error) {
		assert.Equal(t, "X", c.Description)
		assert.Equal(t, "system", c.CreatedBy)
		assert.Equal(t, "user", c.UpdatedBy)
		assert.Equal(t, int64(3), c.Version)
		return c, nil
	})

	_, err := svc.Update(ctx, 1, editedSpringBoot(3), "user")
	require.NoError(t, err)
}

func TestCourseUpdate_DuplicateOfOtherCourse(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestCourseService(ctrl)
	ctx := context.Background()

	repo.EXPECT().ExistsByTitleAndIDNot(ctx, "Spring Boot", int64(2)).Return(true, nil)

	_, err := svc.Update(ctx, 2, editedSpringBoot(0), "user")
	fe := asFieldErrors(t, err)
	assert.True(t, fe.Has("title", validators.CodeDuplicate))
}

func TestCourseUpdate_StaleAndMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestCourseService(ctrl)
	ctx := context.Background()

	repo.EXPECT().ExistsByTitleAndIDNot(ctx, gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
	repo.EXPECT().FindByID(ctx, int64(1)).Return(models.Course{ID: 1, Version: 2}, nil)
	repo.EXPECT().FindByID(ctx, int64(7)).Return(models.Course{}, store.ErrCourseNotFound)

	_, err := svc.Update(ctx, 1, editedSpringBoot(1), "user")
	assert.ErrorIs(t, err, ErrStaleWrite)

	_, err = svc.Update(ctx, 7, editedSpringBoot(0), "user")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseUpdate_RequiresVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestCourseService(ctrl)

	_, err := svc.Update(context.Background(), 1, springBoot(), "user")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestCourseDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestCourseService(ctrl)
	ctx := context.Background()

	repo.EXPECT().FindByID(ctx, int64(1)).Return(models.Course{ID: 1, Title: "Spring Boot"}, nil)
	repo.EXPECT().DeleteByID(ctx, int64(1)).Return(nil)
	repo.EXPECT().FindByID(ctx, int64(2)).Return(models.Course{}, store.ErrCourseNotFound)

	deleted, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Spring Boot", deleted.Title)

	_, err = svc.Delete(ctx, 2)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseEnroll(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestCourseService(ctrl)
	ctx := context.Background()

	repo.EXPECT().FindByID(ctx, int64(1)).Return(models.Course{ID: 1, Title: "Go"}, nil)

	course, err := svc.Enroll(ctx, 1, models.Principal{UserID: 3})
	require.NoError(t, err)
	assert.Equal(t, "Go", course.Title)
}
