package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table. It works with both supported dialects.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByID", sq.Eq{"id": id})
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByUsername", sq.Eq{"username": username})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByEmail", sq.Eq{"email": email})
}

// findOne returns the single user matching where, or [ErrUserNotFound].
func (r *userRepository) findOne(ctx context.Context, fn string, where sq.Sqlizer) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUsersQuery(r.db.builder(), where)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var user models.User
	err = r.db.retryRead(ctx, func() error {
		var scanErr error
		user, scanErr = scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// FindAll returns every user ordered by id.
func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUsersQuery(r.db.builder(), nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindAll").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var users []models.User
	err = r.db.retryRead(ctx, func() error {
		users = nil
		rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			user, err := scanUser(rows)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			users = append(users, user)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindAll").Msg("error selecting users")
		return nil, err
	}

	return users, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.db.exists(ctx, buildCountUsersQuery(r.db.builder(), sq.Eq{"username": username}))
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.db.exists(ctx, buildCountUsersQuery(r.db.builder(), sq.Eq{"email": email}))
}

func (r *userRepository) ExistsByUsernameAndIDNot(ctx context.Context, username string, id int64) (bool, error) {
	return r.db.exists(ctx, buildCountUsersQuery(r.db.builder(), sq.And{sq.Eq{"username": username}, sq.NotEq{"id": id}}))
}

func (r *userRepository) ExistsByEmailAndIDNot(ctx context.Context, email string, id int64) (bool, error) {
	return r.db.exists(ctx, buildCountUsersQuery(r.db.builder(), sq.And{sq.Eq{"email": email}, sq.NotEq{"id": id}}))
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	return r.db.count(ctx, buildCountUsersQuery(r.db.builder(), nil))
}

// Save inserts user when its ID is zero and updates it otherwise. The
// returned user carries the store-assigned id, timestamps and counter.
//
// Error handling:
//   - unique violation on username or email → [ErrDuplicateUsername] / [ErrDuplicateEmail].
//   - update of an unknown id → [ErrUserNotFound].
//   - update with an outdated UpdateCounter → [ErrStaleWrite].
func (r *userRepository) Save(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if !user.Role.Valid() {
		return models.User{}, fmt.Errorf("%w: %q", ErrUnknownRole, user.Role)
	}

	build := buildInsertUserQuery
	if user.ID != 0 {
		build = buildUpdateUserQuery
	}
	query, args, err := build(r.db.builder(), user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Save").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	qctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	saved, err := scanUser(r.db.conn(qctx).QueryRowContext(qctx, query, args...))
	switch {
	case err == nil:
		return saved, nil
	case errors.Is(err, sql.ErrNoRows) && user.ID != 0:
		return models.User{}, r.missingOrStale(ctx, user.ID)
	}

	if constraint, ok := r.db.uniqueViolation(err); ok {
		log.Debug().Str("func", "*userRepository.Save").Str("constraint", constraint).Msg("unique violation")
		if strings.Contains(constraint, "email") {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, ErrDuplicateUsername
	}

	log.Err(err).Str("func", "*userRepository.Save").Msg("error saving user")
	return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

// missingOrStale tells apart the two reasons a versioned update matches no row.
func (r *userRepository) missingOrStale(ctx context.Context, id int64) error {
	found, err := r.db.exists(ctx, buildCountUsersQuery(r.db.builder(), sq.Eq{"id": id}))
	if err != nil {
		return err
	}
	if !found {
		return ErrUserNotFound
	}
	return ErrStaleWrite
}

func (r *userRepository) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteUserQuery(r.db.builder(), id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteByID").Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
