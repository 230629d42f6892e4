// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MKhiriev/go-course-catalog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func validRegistration() models.RegistrationPayload {
	return models.RegistrationPayload{
		Username:  "eve",
		Password:  "evepass1",
		FirstName: "Eve",
		Email:     "eve@x.com",
	}
}

func asFieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	var fe FieldErrors
	require.True(t, errors.As(err, &fe), "expected FieldErrors, got %v", err)
	return fe
}

// ── registration ─────────────────────────────────────────────────────────────

func TestFormValidator_Registration_Valid(t *testing.T) {
	v := NewFormValidator()
	require.NoError(t, v.Validate(context.Background(), validRegistration()))
}

func TestFormValidator_Registration_AggregatesAllFields(t *testing.T) {
	v := NewFormValidator()

	err := v.Validate(context.Background(), models.RegistrationPayload{})
	fe := asFieldErrors(t, err)

	assert.Equal(t, []FieldError{
		{Field: "username", Code: CodeRequired, Message: "Username is required"},
		{Field: "username", Code: CodeSizeMin, Message: "Username must be between 3 and 50 characters"},
		{Field: "password", Code: CodeRequired, Message: "Password is required"},
		{Field: "password", Code: CodeSizeMin, Message: "Password must be at least 6 characters"},
		{Field: "firstName", Code: CodeRequired, Message: "First name is required"},
		{Field: "email", Code: CodeRequired, Message: "Email is required"},
	}, []FieldError(fe))
}

func TestFormValidator_Registration_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *models.RegistrationPayload)
		field  string
		code   string
	}{
		{"short username", func(p *models.RegistrationPayload) { p.Username = "ab" }, "username", CodeSizeMin},
		{"long username", func(p *models.RegistrationPayload) { p.Username = strings.Repeat("a", 51) }, "username", CodeSizeMax},
		{"non printable username", func(p *models.RegistrationPayload) { p.Username = "ev\te" }, "username", CodePattern},
		{"blank username", func(p *models.RegistrationPayload) { p.Username = "     " }, "username", CodeRequired},
		{"short password", func(p *models.RegistrationPayload) { p.Password = "12345" }, "password", CodeSizeMin},
		{"long first name", func(p *models.RegistrationPayload) { p.FirstName = strings.Repeat("f", 51) }, "firstName", CodeSizeMax},
		{"long last name", func(p *models.RegistrationPayload) { p.LastName = strings.Repeat("l", 51) }, "lastName", CodeSizeMax},
		{"bad email", func(p *models.RegistrationPayload) { p.Email = "not-an-email" }, "email", CodeEmailSyntax},
		{"long email", func(p *models.RegistrationPayload) { p.Email = strings.Repeat("e", 95) + "@x.com" }, "email", CodeSizeMax},
	}

	v := NewFormValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validRegistration()
			tt.mutate(&p)

			fe := asFieldErrors(t, v.Validate(context.Background(), p))
			assert.True(t, fe.Has(tt.field, tt.code), "expected %s/%s in %v", tt.field, tt.code, fe)
		})
	}
}

func TestFormValidator_SizeCountsCodepoints(t *testing.T) {
	v := NewFormValidator()

	p := validRegistration()
	// three codepoints, nine bytes
	p.Username = "жжж"

	require.NoError(t, v.Validate(context.Background(), p))
}

func TestFormValidator_RestrictedToFields(t *testing.T) {
	v := NewFormValidator()

	p := validRegistration()
	p.Username = ""
	p.Email = "bad"

	fe := asFieldErrors(t, v.Validate(context.Background(), p, "email"))
	assert.Len(t, fe, 1)
	assert.Equal(t, "email", fe[0].Field)
}

// ── user edit ────────────────────────────────────────────────────────────────

func TestFormValidator_UserPayload_EmptyPasswordIsSkipped(t *testing.T) {
	v := NewFormValidator()

	p := models.UserPayload{Username: "eve", FirstName: "Eve", Email: "eve@x.com"}
	require.NoError(t, v.Validate(context.Background(), p))

	p.Password = "123"
	fe := asFieldErrors(t, v.Validate(context.Background(), &p))
	assert.True(t, fe.Has("password", CodeSizeMin))
}

// ── courses ──────────────────────────────────────────────────────────────────

func TestFormValidator_Course(t *testing.T) {
	v := NewFormValidator()

	t.Run("valid without optional numbers", func(t *testing.T) {
		p := models.CoursePayload{Title: "Go", Description: "Learn Go"}
		require.NoError(t, v.Validate(context.Background(), p))
	})

	t.Run("numeric lower bounds", func(t *testing.T) {
		p := models.CoursePayload{
			Title:           "Go",
			Description:     "Learn Go",
			DurationInHours: intPtr(0),
			Fees:            floatPtr(-0.01),
		}

		fe := asFieldErrors(t, v.Validate(context.Background(), p))
		assert.Equal(t, []FieldError{
			{Field: "durationInHours", Code: CodeRangeMin, Message: "Duration must be at least 1 hour"},
			{Field: "fees", Code: CodeDecimalMin, Message: "Fees must be non-negative"},
		}, []FieldError(fe))
	})

	t.Run("fees upper bound", func(t *testing.T) {
		p := models.CoursePayload{Title: "Go", Description: "Learn Go", Fees: floatPtr(1e10)}

		fe := asFieldErrors(t, v.Validate(context.Background(), p))
		assert.Equal(t, []FieldError{
			{Field: "fees", Code: CodeDecimalMax, Message: "Fees must not exceed 9999999999.99"},
		}, []FieldError(fe))

		p.Fees = floatPtr(9999999999.99)
		require.NoError(t, v.Validate(context.Background(), p))
	})

	t.Run("zero fees are allowed", func(t *testing.T) {
		p := models.CoursePayload{Title: "Go", Description: "Learn Go", Fees: floatPtr(0), DurationInHours: intPtr(1)}
		require.NoError(t, v.Validate(context.Background(), p))
	})

	t.Run("required title and description", func(t *testing.T) {
		fe := asFieldErrors(t, v.Validate(context.Background(), models.CoursePayload{Title: strings.Repeat("t", 101)}))
		assert.True(t, fe.Has("title", CodeSizeMax))
		assert.Equal(t, []string{"Course description is required"}, fe.Messages("description"))
	})
}

// ── misc ─────────────────────────────────────────────────────────────────────

func TestFormValidator_UnsupportedType(t *testing.T) {
	v := NewFormValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), "string"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), (*models.CoursePayload)(nil)), ErrUnsupportedType)
}

func TestFormValidator_DefaultMessages(t *testing.T) {
	type plain struct {
		Name string `form:"name" validate:"notblank,min=2"`
	}

	fe := asFieldErrors(t, NewFormValidator().Validate(context.Background(), plain{Name: ""}))
	assert.Equal(t, "must not be blank", fe[0].Message)
	assert.Equal(t, "size must be at least 2", fe[1].Message)
}

func TestFieldErrors_Helpers(t *testing.T) {
	var fe FieldErrors
	fe.Add("email", CodeDuplicate, "Email already exists")

	assert.True(t, fe.Has("email", ""))
	assert.True(t, fe.Has("email", CodeDuplicate))
	assert.False(t, fe.Has("username", ""))
	assert.Contains(t, fe.Error(), "email: Email already exists")
	assert.Equal(t, "Fees must be a number", MessageFor(models.CoursePayload{}, "fees", CodeTypeMismatch))
}
