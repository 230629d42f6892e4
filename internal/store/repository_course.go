package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/models"
)

type courseRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewCourseRepository(db *DB, logger *logger.Logger) CourseRepository {
	logger.Debug().Msg("creating course repository")
	return &courseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *courseRepository) FindByID(ctx context.Context, id int64) (models.Course, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCoursesQuery(r.db.builder(), sq.Eq{"id": id})
	if err != nil {
		return models.Course{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var course models.Course
	err = r.db.retryRead(ctx, func() error {
		var scanErr error
		course, scanErr = scanCourse(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Course{}, ErrCourseNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*courseRepository.FindByID").Msg("error selecting course")
		return models.Course{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return course, nil
}

// FindAll returns the whole catalog ordered by id.
func (r *courseRepository) FindAll(ctx context.Context) ([]models.Course, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCoursesQuery(r.db.builder(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var courses []models.Course
	err = r.db.retryRead(ctx, func() error {
		courses = nil
		rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			course, err := scanCourse(rows)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			courses = append(courses, course)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*courseRepository.FindAll").Msg("error selecting courses")
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	return r.db.exists(ctx, buildCountCoursesQuery(r.db.builder(), sq.Eq{"course_title": title}))
}

func (r *courseRepository) ExistsByTitleAndIDNot(ctx context.Context, title string, id int64) (bool, error) {
	return r.db.exists(ctx, buildCountCoursesQuery(r.db.builder(), sq.And{sq.Eq{"course_title": title}, sq.NotEq{"id": id}}))
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	return r.db.count(ctx, buildCountCoursesQuery(r.db.builder(), nil))
}

// Save inserts course when its ID is zero and updates it otherwise, guarded
// by Version.
func (r *courseRepository) Save(ctx context.Context, course models.Course) (models.Course, error) {
	log := logger.FromContext(ctx)

	build := buildInsertCourseQuery
	if course.ID != 0 {
		build = buildUpdateCourseQuery
	}
	query, args, err := build(r.db.builder(), course)
	if err != nil {
		return models.Course{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	qctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	saved, err := scanCourse(r.db.conn(qctx).QueryRowContext(qctx, query, args...))
	switch {
	case err == nil:
		return saved, nil
	case errors.Is(err, sql.ErrNoRows) && course.ID != 0:
		found, existsErr := r.db.exists(ctx, buildCountCoursesQuery(r.db.builder(), sq.Eq{"id": course.ID}))
		if existsErr != nil {
			return models.Course{}, existsErr
		}
		if !found {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, ErrStaleWrite
	}

	if constraint, ok := r.db.uniqueViolation(err); ok {
		log.Debug().Str("func", "*courseRepository.Save").Str("constraint", constraint).Msg("unique violation")
		return models.Course{}, ErrDuplicateCourseTitle
	}

	log.Err(err).Str("func", "*courseRepository.Save").Msg("error saving course")
	return models.Course{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

func (r *courseRepository) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteCourseQuery(r.db.builder(), id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*courseRepository.DeleteByID").Msg("error deleting course")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCourseNotFound
	}

	return nil
}
