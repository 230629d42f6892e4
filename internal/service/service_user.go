package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-course-catalog/internal/app"
	"github.com/MKhiriev/go-course-catalog/internal/crypto"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/store"
	"github.com/MKhiriev/go-course-catalog/internal/validators"
	"github.com/MKhiriev/go-course-catalog/models"
)

type userService struct {
	userRepository store.UserRepository
	transactor     store.Transactor
	hasher         crypto.PasswordHasher
	validator      validators.Validator
	logger         *logger.Logger
}

func NewUserService(userRepository store.UserRepository, transactor store.Transactor, hasher crypto.PasswordHasher, validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		transactor:     transactor,
		hasher:         hasher,
		validator:      validator,
		logger:         logger,
	}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepository.FindAll(ctx)
}

func (s *userService) Get(ctx context.Context, id int64) (models.User, error) {
	user, err := s.userRepository.FindByID(ctx, id)
	return user, fromStore(err)
}

// Update applies the editable fields of payload to user id. Role, enabled
// flag, creation time and update counter are never taken from the form.
// An empty password keeps the current hash. The payload must carry the
// version the form was rendered with.
func (s *userService) Update(ctx context.Context, id int64, payload models.UserPayload) (models.User, error) {
	log := logger.FromContext(ctx)

	if payload.Version == nil {
		return models.User{}, fmt.Errorf("%w: missing version", ErrInvalidDataProvided)
	}

	fieldErrs, err := validate(ctx, s.validator, payload)
	if err != nil {
		return models.User{}, err
	}

	if len(fieldErrs) == 0 {
		emailTaken, err := s.userRepository.ExistsByEmailAndIDNot(ctx, payload.Email, id)
		if err != nil {
			return models.User{}, fmt.Errorf("checking email: %w", err)
		}
		if emailTaken {
			fieldErrs.Add("email", validators.CodeDuplicate, app.MsgEmailAlreadyExists)
		}

		usernameTaken, err := s.userRepository.ExistsByUsernameAndIDNot(ctx, payload.Username, id)
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

	var saved models.User
	err = s.transactor.InTx(ctx, func(ctx context.Context) error {
		user, err := s.userRepository.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if *payload.Version != user.UpdateCounter {
			return store.ErrStaleWrite
		}

		user.Username = payload.Username
		user.FirstName = payload.FirstName
		user.LastName = payload.LastName
		user.Email = payload.Email
		if payload.Password != "" {
			hash, err := s.hasher.Hash(payload.Password)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}
			user.PasswordHash = hash
		}

		saved, err = s.userRepository.Save(ctx, user)
		return err
	})
	if err != nil {
		if dup := duplicateUserField(err); dup != nil {
			return models.User{}, dup
		}
		log.Err(err).Str("func", "*userService.Update").Int64("user_id", id).Msg("error updating user")
		return models.User{}, fromStore(err)
	}

	log.Info().Str("func", "*userService.Update").Int64("user_id", id).Msg("user updated")
	return saved, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepository.DeleteByID(ctx, id); err != nil {
		return fromStore(err)
	}
	logger.FromContext(ctx).Info().Str("func", "*userService.Delete").Int64("user_id", id).Msg("user deleted")
	return nil
}

func (s *userService) CreateAdmin(ctx context.Context, payload models.RegistrationPayload) (models.User, error) {
	return registerUser(ctx, s.userRepository, s.hasher, s.validator, payload, models.RoleAdmin)
}

// ResetPassword replaces the password of username.
func (s *userService) ResetPassword(ctx context.Context, username, password string) error {
	fieldErrs, err := validate(ctx, s.validator, models.UserPayload{Password: password}, "password")
	if err != nil {
		return err
	}
	if len(password) == 0 {
		fieldErrs.Add("password", validators.CodeRequired, app.MsgPasswordTooShort)
	}
	if len(fieldErrs) > 0 {
		return fieldErrs
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return fromStore(s.transactor.InTx(ctx, func(ctx context.Context) error {
		user, err := s.userRepository.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		_, err = s.userRepository.Save(ctx, user)
		return err
	}))
}
