package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-course-catalog/models"
)

var (
	usersTable   = models.User{}.TableName()
	coursesTable = models.Course{}.TableName()
)

var userColumns = []string{
	"id",
	"username",
	"password",
	"first_name",
	"last_name",
	"email",
	"role",
	"enabled",
	"update_counter",
	"created_at",
	"updated_at",
}

var courseColumns = []string{
	"id",
	"course_title",
	"course_description",
	"course_duration_hours",
	"course_instructor",
	"course_fees",
	"version",
	"created_by",
	"created_date",
	"updated_by",
	"updated_date",
}

func returning(columns []string) string {
	s := "RETURNING "
	for i, c := range columns {
		if i > 0 {
			s += ", "
		}
		s += c
	}
	return s
}

// buildSelectUsersQuery selects every user column. A nil where selects all
// users ordered by id.
func buildSelectUsersQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	q := b.Select(userColumns...).From(usersTable)
	if where != nil {
		q = q.Where(where)
	}
	return q.OrderBy("id").ToSql()
}

func buildCountUsersQuery(b sq.StatementBuilderType, where sq.Sqlizer) sq.SelectBuilder {
	q := b.Select("COUNT(*)").From(usersTable)
	if where != nil {
		q = q.Where(where)
	}
	return q
}

func buildInsertUserQuery(b sq.StatementBuilderType, u models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("username", "password", "first_name", "last_name", "email", "role", "enabled").
		Values(u.Username, u.PasswordHash, u.FirstName, nullString(u.LastName), u.Email, string(u.Role), u.Enabled).
		Suffix(returning(userColumns)).
		ToSql()
}

// buildUpdateUserQuery matches only while the stored update counter equals
// u.UpdateCounter.
func buildUpdateUserQuery(b sq.StatementBuilderType, u models.User) (string, []any, error) {
	return b.Update(usersTable).
		Set("username", u.Username).
		Set("password", u.PasswordHash).
		Set("first_name", u.FirstName).
		Set("last_name", nullString(u.LastName)).
		Set("email", u.Email).
		Set("role", string(u.Role)).
		Set("enabled", u.Enabled).
		Set("update_counter", sq.Expr("update_counter + 1")).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": u.ID, "update_counter": u.UpdateCounter}).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Delete(usersTable).Where(sq.Eq{"id": id}).ToSql()
}

func buildSelectCoursesQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	q := b.Select(courseColumns...).From(coursesTable)
	if where != nil {
		q = q.Where(where)
	}
	return q.OrderBy("id").ToSql()
}

func buildCountCoursesQuery(b sq.StatementBuilderType, where sq.Sqlizer) sq.SelectBuilder {
	q := b.Select("COUNT(*)").From(coursesTable)
	if where != nil {
		q = q.Where(where)
	}
	return q
}

func buildInsertCourseQuery(b sq.StatementBuilderType, c models.Course) (string, []any, error) {
	return b.Insert(coursesTable).
		Columns("course_title", "course_description", "course_duration_hours", "course_instructor", "course_fees", "created_by").
		Values(c.Title, c.Description, nullInt(c.DurationInHours), nullString(c.Instructor), nullFloat(c.Fees), nullString(c.CreatedBy)).
		Suffix(returning(courseColumns)).
		ToSql()
}

func buildUpdateCourseQuery(b sq.StatementBuilderType, c models.Course) (string, []any, error) {
	return b.Update(coursesTable).
		Set("course_title", c.Title).
		Set("course_description", c.Description).
		Set("course_duration_hours", nullInt(c.DurationInHours)).
		Set("course_instructor", nullString(c.Instructor)).
		Set("course_fees", nullFloat(c.Fees)).
		Set("updated_by", nullString(c.UpdatedBy)).
		Set("version", sq.Expr("version + 1")).
		Set("updated_date", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": c.ID, "version": c.Version}).
		Suffix(returning(courseColumns)).
		ToSql()
}

func buildDeleteCourseQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Delete(coursesTable).Where(sq.Eq{"id": id}).ToSql()
}
