package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-course-catalog/internal/app"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/store"
	"github.com/MKhiriev/go-course-catalog/internal/validators"
	"github.com/MKhiriev/go-course-catalog/models"
)

type courseService struct {
	courseRepository store.CourseRepository
	transactor       store.Transactor
	validator        validators.Validator
	logger           *logger.Logger
}

func NewCourseService(courseRepository store.CourseRepository, transactor store.Transactor, validator validators.Validator, logger *logger.Logger) CourseService {
	return &courseService{
		courseRepository: courseRepository,
		transactor:       transactor,
		validator:        validator,
		logger:           logger,
	}
}

func (s *courseService) List(ctx context.Context) ([]models.Course, error) {
	return s.courseRepository.FindAll(ctx)
}

func (s *courseService) Get(ctx context.Context, id int64) (models.Course, error) {
	course, err := s.courseRepository.FindByID(ctx, id)
	return course, fromStore(err)
}

func (s *courseService) Count(ctx context.Context) (int64, error) {
	return s.courseRepository.Count(ctx)
}

func (s *courseService) Create(ctx context.Context, payload models.CoursePayload, actor string) (models.Course, error) {
	log := logger.FromContext(ctx)

	fieldErrs, err := s.check(ctx, payload, func() (bool, error) {
		return s.courseRepository.ExistsByTitle(ctx, payload.Title)
	})
	if err != nil {
		return models.Course{}, err
	}
	if len(fieldErrs) > 0 {
		return models.Course{}, fieldErrs
	}

	course := models.Course{CreatedBy: actor}
	applyCoursePayload(&course, payload)

	saved, err := s.courseRepository.Save(ctx, course)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateCourseTitle) {
			return models.Course{}, duplicateTitle()
		}
		log.Err(err).Str("func", "*courseService.Create").Msg("error saving course")
		return models.Course{}, fromStore(err)
	}

	log.Info().Str("func", "*courseService.Create").Int64("course_id", saved.ID).Msg("course created")
	return saved, nil
}

// Update copies the editable fields of payload into the stored course and
// saves it with the version check. The version carried by the form is
// required and must match the stored one.
func (s *courseService) Update(ctx context.Context, id int64, payload models.CoursePayload, actor string) (models.Course, error) {
	log := logger.FromContext(ctx)

	if payload.Version == nil {
		return models.Course{}, fmt.Errorf("%w: missing version", ErrInvalidDataProvided)
	}

	fieldErrs, err := s.check(ctx, payload, func() (bool, error) {
		return s.courseRepository.ExistsByTitleAndIDNot(ctx, payload.Title, id)
	})
	if err != nil {
		return models.Course{}, err
	}
	if len(fieldErrs) > 0 {
		return models.Course{}, fieldErrs
	}

	var saved models.Course
	err = s.transactor.InTx(ctx, func(ctx context.Context) error {
		course, err := s.courseRepository.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if *payload.Version != course.Version {
			return store.ErrStaleWrite
		}

		applyCoursePayload(&course, payload)
		course.UpdatedBy = actor

		saved, err = s.courseRepository.Save(ctx, course)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateCourseTitle) {
			return models.Course{}, duplicateTitle()
		}
		log.Err(err).Str("func", "*courseService.Update").Int64("course_id", id).Msg("error updating course")
		return models.Course{}, fromStore(err)
	}

	return saved, nil
}

func (s *courseService) Delete(ctx context.Context, id int64) (models.Course, error) {
	var deleted models.Course
	err := s.transactor.InTx(ctx, func(ctx context.Context) error {
		course, err := s.courseRepository.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.courseRepository.DeleteByID(ctx, id); err != nil {
			return err
		}
		deleted = course
		return nil
	})
	if err != nil {
		return models.Course{}, fromStore(err)
	}

	logger.FromContext(ctx).Info().Str("func", "*courseService.Delete").Int64("course_id", id).Msg("course deleted")
	return deleted, nil
}

// Enroll acknowledges an enrollment request. Nothing is persisted.
func (s *courseService) Enroll(ctx context.Context, id int64, principal models.Principal) (models.Course, error) {
	course, err := s.courseRepository.FindByID(ctx, id)
	if err != nil {
		return models.Course{}, fromStore(err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "*courseService.Enroll").
		Int64("course_id", id).
		Int64("user_id", principal.UserID).
		Msg("enrollment requested")
	return course, nil
}

// check validates payload and, when it is structurally valid, asks
// titleTaken for a conflicting title.
func (s *courseService) check(ctx context.Context, payload models.CoursePayload, titleTaken func() (bool, error)) (validators.FieldErrors, error) {
	fieldErrs, err := validate(ctx, s.validator, payload)
	if err != nil || len(fieldErrs) > 0 {
		return fieldErrs, err
	}

	taken, err := titleTaken()
	if err != nil {
		return nil, fmt.Errorf("checking title: %w", err)
	}
	if taken {
		return duplicateTitle(), nil
	}
	return nil, nil
}

func duplicateTitle() validators.FieldErrors {
	var errs validators.FieldErrors
	errs.Add("title", validators.CodeDuplicate, app.MsgCourseTitleAlreadyExists)
	return errs
}

func applyCoursePayload(c *models.Course, p models.CoursePayload) {
	c.Title = p.Title
	c.Description = p.Description
	c.DurationInHours = p.DurationInHours
	c.Instructor = p.Instructor
	c.Fees = p.Fees
}
