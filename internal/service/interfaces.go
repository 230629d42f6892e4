package service

import (
	"context"

	"github.com/MKhiriev/go-course-catalog/models"
)

// AuthService resolves identities and checks credentials.
type AuthService interface {
	// LoadPrincipal returns the principal for username, password hash
	// included, or [ErrUserNotFound].
	LoadPrincipal(ctx context.Context, username string) (models.Principal, error)

	// Authenticate checks the credentials and returns the principal without
	// its password hash. It fails with [ErrBadCredentials] or
	// [ErrAccountDisabled]; unknown users cost as much time as known ones.
	Authenticate(ctx context.Context, username, password string) (models.Principal, error)
}

// RegistrationService creates self-registered accounts. Field problems are
// returned as validators.FieldErrors.
type RegistrationService interface {
	Register(ctx context.Context, payload models.RegistrationPayload) (models.User, error)
}

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	Update(ctx context.Context, id int64, payload models.UserPayload) (models.User, error)
	Delete(ctx context.Context, id int64) error

	// CreateAdmin registers an account with the ADMIN role. It is only
	// reachable from the operator CLI.
	CreateAdmin(ctx context.Context, payload models.RegistrationPayload) (models.User, error)
	ResetPassword(ctx context.Context, username, password string) error
}

// CourseService manages the catalog. actor is the username recorded in
// created_by / updated_by.
type CourseService interface {
	List(ctx context.Context) ([]models.Course, error)
	Get(ctx context.Context, id int64) (models.Course, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, payload models.CoursePayload, actor string) (models.Course, error)
	Update(ctx context.Context, id int64, payload models.CoursePayload, actor string) (models.Course, error)
	// Delete removes the course and returns it as it was.
	Delete(ctx context.Context, id int64) (models.Course, error)
	Enroll(ctx context.Context, id int64, principal models.Principal) (models.Course, error)
}

// Seeder fills empty tables with sample data.
type Seeder interface {
	// Seed reports whether anything was inserted.
	Seed(ctx context.Context) (bool, error)
}

// AppInfoService describes the running instance for operators.
type AppInfoService interface {
	Info(ctx context.Context) models.AppInfo
}
