package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserNotFound is returned when a lookup, update or delete targets a
	// user id, username or email that is not in the database.
	ErrUserNotFound = errors.New("user was not found")

	// ErrCourseNotFound is the course counterpart of [ErrUserNotFound].
	ErrCourseNotFound = errors.New("course was not found")

	// ErrDuplicateUsername is returned when an insert or update would give
	// two users the same username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrDuplicateEmail is returned when an insert or update would give two
	// users the same email.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrDuplicateCourseTitle is returned when an insert or update would
	// give two courses the same title.
	ErrDuplicateCourseTitle = errors.New("course title already exists")

	// ErrStaleWrite is returned when an optimistic-locking check fails: the
	// version the caller read is no longer the version stored in the
	// database, meaning somebody else has modified the record since.
	ErrStaleWrite = errors.New("record was modified concurrently")

	// ErrUnknownRole is returned when a user is saved with a role outside
	// [models.RoleStudent] and [models.RoleAdmin].
	ErrUnknownRole = errors.New("unknown user role")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnknownDriver is returned by [NewConnect] for an unsupported
	// driver name.
	ErrUnknownDriver = errors.New("unknown database driver")
)
