package store

import (
	"context"

	"github.com/MKhiriev/go-course-catalog/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store.
//
// Lookups are case-sensitive exact matches. Save inserts when user.ID is
// zero and updates otherwise; an update succeeds only while the stored
// update counter still equals user.UpdateCounter.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// ExistsByUsernameAndIDNot reports whether username belongs to a user
	// other than id.
	ExistsByUsernameAndIDNot(ctx context.Context, username string, id int64) (bool, error)
	ExistsByEmailAndIDNot(ctx context.Context, email string, id int64) (bool, error)

	Save(ctx context.Context, user models.User) (models.User, error)
	DeleteByID(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// CourseRepository persists catalog courses with the same conventions as
// [UserRepository].
type CourseRepository interface {
	FindByID(ctx context.Context, id int64) (models.Course, error)
	FindAll(ctx context.Context) ([]models.Course, error)

	ExistsByTitle(ctx context.Context, title string) (bool, error)
	ExistsByTitleAndIDNot(ctx context.Context, title string, id int64) (bool, error)

	Save(ctx context.Context, course models.Course) (models.Course, error)
	DeleteByID(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// Transactor runs fn inside a database transaction. Repository calls made
// with the context passed to fn join that transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErrorClassificator maps driver errors to the categories the repositories
// care about.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	// UniqueViolation reports whether err is a unique-constraint violation
	// and names the violated constraint or column as the driver reports it.
	UniqueViolation(err error) (string, bool)
}
