package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-course-catalog/internal/app"
	"github.com/MKhiriev/go-course-catalog/internal/crypto"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/store"
	"github.com/MKhiriev/go-course-catalog/internal/validators"
	"github.com/MKhiriev/go-course-catalog/models"
)

// registrationService is the Registration Guard.
type registrationService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	validator      validators.Validator
	logger         *logger.Logger
}

func NewRegistrationService(userRepository store.UserRepository, hasher crypto.PasswordHasher, validator validators.Validator, logger *logger.Logger) RegistrationService {
	return &registrationService{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validator,
		logger:         logger,
	}
}

// Register creates a STUDENT account from payload.
func (s *registrationService) Register(ctx context.Context, payload models.RegistrationPayload) (models.User, error) {
	return registerUser(ctx, s.userRepository, s.hasher, s.validator, payload, models.RoleStudent)
}

// registerUser validates payload, checks email then username for
// duplicates, and persists the account with role.
func registerUser(ctx context.Context, users store.UserRepository, hasher crypto.PasswordHasher, validator validators.Validator, payload models.RegistrationPayload, role models.Role) (models.User, error) {
	log := logger.FromContext(ctx)

	fieldErrs, err := validate(ctx, validator, payload)
	if err != nil {
		return models.User{}, err
	}

	if len(fieldErrs) == 0 {
		emailTaken, err := users.ExistsByEmail(ctx, payload.Email)
		if err != nil {
			return models.User{}, fmt.Errorf("checking email: %w", err)
		}
		if emailTaken {
			fieldErrs.Add("email", validators.CodeDuplicate, app.MsgEmailAlreadyExists)
		}

		usernameTaken, err := users.ExistsByUsername(ctx, payload.Username)
		if err != nil {
			return models.User{}, fmt.Errorf("checking username: %w", err)
		}
		if usernameTaken {
			fieldErrs.Add("username", validators.CodeDuplicate, app.MsgUsernameAlreadyExists)
		}
	}
	if len(fieldErrs) > 0 {
		return models.User{}, fieldErrs
	}

	hash, err := hasher.Hash(payload.Password)
	if err != nil {
		log.Err(err).Str("func", "registerUser").Msg("error hashing password")
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		Username:     payload.Username,
		PasswordHash: hash,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Role:         role,
		Enabled:      true,
	}

	saved, err := users.Save(ctx, user)
	if err != nil {
		if dup := duplicateUserField(err); dup != nil {
			return models.User{}, dup
		}
		log.Err(err).Str("func", "registerUser").Msg("error saving user")
		return models.User{}, fromStore(err)
	}

	log.Info().Str("func", "registerUser").Int64("user_id", saved.ID).Str("role", string(saved.Role)).Msg("user registered")
	return saved, nil
}

// duplicateUserField turns a uniqueness conflict reported by the store into
// a field error. It returns nil for any other error.
func duplicateUserField(err error) validators.FieldErrors {
	var errs validators.FieldErrors
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		errs.Add("email", validators.CodeDuplicate, app.MsgEmailAlreadyExists)
	case errors.Is(err, store.ErrDuplicateUsername):
		errs.Add("username", validators.CodeDuplicate, app.MsgUsernameAlreadyExists)
	default:
		return nil
	}
	return errs
}

// validate runs v over payload and separates rule violations from failures
// to validate at all.
func validate(ctx context.Context, v validators.Validator, payload any, fields ...string) (validators.FieldErrors, error) {
	err := v.Validate(ctx, payload, fields...)
	if err == nil {
		return nil, nil
	}

	var fieldErrs validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
