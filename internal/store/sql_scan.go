package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-course-catalog/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u         models.User
		role      string
		lastName  sql.NullString
		createdAt dbTime
		updatedAt dbTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &lastName, &u.Email,
		&role, &u.Enabled, &u.UpdateCounter, &createdAt, &updatedAt)
	if err != nil {
		return models.User{}, err
	}

	u.Role = models.Role(role)
	u.CreatedAt = createdAt.Time
	u.LastName = lastName.String
	if updatedAt.Valid {
		u.UpdatedAt = &updatedAt.Time
	}
	return u, nil
}

func scanCourse(row rowScanner) (models.Course, error) {
	var (
		c           models.Course
		duration    sql.NullInt64
		instructor  sql.NullString
		fees        sql.NullFloat64
		createdBy   sql.NullString
		updatedBy   sql.NullString
		createdDate dbTime
		updatedDate dbTime
	)
	err := row.Scan(&c.ID, &c.Title, &c.Description, &duration, &instructor, &fees,
		&c.Version, &createdBy, &createdDate, &updatedBy, &updatedDate)
	if err != nil {
		return models.Course{}, err
	}

	if duration.Valid {
		d := int(duration.Int64)
		c.DurationInHours = &d
	}
	if fees.Valid {
		c.Fees = &fees.Float64
	}
	c.CreatedDate = createdDate.Time
	c.Instructor = instructor.String
	c.CreatedBy = createdBy.String
	c.UpdatedBy = updatedBy.String
	if updatedDate.Valid {
		c.UpdatedDate = &updatedDate.Time
	}
	return c, nil
}

// nullString stores the empty string as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

var sqliteTimeFormats = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// dbTime scans a nullable timestamp. SQLite hands back text instead of
// time.Time for columns without a declared type, RETURNING included.
type dbTime struct {
	Time  time.Time
	Valid bool
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v, true
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range sqliteTimeFormats {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time, t.Valid = parsed, true
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}
