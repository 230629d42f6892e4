package service

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-course-catalog/internal/crypto"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/store"
	"github.com/MKhiriev/go-course-catalog/models"
)

// fallbackDummyHash is verified against when hashing the dummy password
// fails. It is a valid argon2id encoding that no password matches.
const fallbackDummyHash = "$argon2id$v=19$m=65536,t=3,p=2$c29tZXNhbHRzb21lc2FsdA$K3+aWYsCeWH6EvWbT4jgS3S7I8gN0Cz3FT2r1S8yXTQ"

// authService is the Identity Resolver and Authenticator.
type authService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher

	// dummyHash is computed with the configured work factor on first use so
	// that a failed lookup costs a full verification.
	dummyHash func() string

	logger *logger.Logger
}

func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		dummyHash: sync.OnceValue(func() string {
			h, err := hasher.Hash("dummy-password-for-timing")
			if err != nil {
				logger.Err(err).Str("func", "NewAuthService").Msg("failed to hash dummy password")
				return fallbackDummyHash
			}
			return h
		}),
		logger: logger,
	}
}

func (a *authService) LoadPrincipal(ctx context.Context, username string) (models.Principal, error) {
	user, err := a.userRepository.FindByUsername(ctx, username)
	if err != nil {
		return models.Principal{}, fromStore(err)
	}
	return user.Principal(), nil
}

// Authenticate verifies username and password.
func (a *authService) Authenticate(ctx context.Context, username, password string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	principal, err := a.LoadPrincipal(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		a.hasher.Verify(password, a.dummyHash())
		log.Info().Str("func", "*authService.Authenticate").Msg("login failed: unknown user")
		return models.Principal{}, ErrBadCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("error loading principal")
		return models.Principal{}, err
	}

	if !principal.Enabled {
		log.Info().Str("func", "*authService.Authenticate").Int64("user_id", principal.UserID).Msg("login failed: account disabled")
		return models.Principal{}, ErrAccountDisabled
	}

	if !a.hasher.Verify(password, principal.PasswordHash) {
		log.Info().Str("func", "*authService.Authenticate").Int64("user_id", principal.UserID).Msg("login failed: bad password")
		return models.Principal{}, ErrBadCredentials
	}

	log.Info().Str("func", "*authService.Authenticate").Int64("user_id", principal.UserID).Msg("user authenticated")
	return principal.WithoutCredentials(), nil
}
