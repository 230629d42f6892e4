// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegistrationPayload is the self-registration form. It deliberately has no
// role field: whatever a client submits as "role" is never bound.
type RegistrationPayload struct {
	Username  string `form:"username" validate:"notblank,min=3,max=50,printable"`
	Password  string `form:"password" validate:"notblank,min=6"`
	FirstName string `form:"firstName" validate:"notblank,max=50"`
	LastName  string `form:"lastName" validate:"max=50"`
	Email     string `form:"email" validate:"notblank,max=100,email"`
}

// ValidationMessages returns the user-facing message per "field.code".
func (p RegistrationPayload) ValidationMessages() map[string]string {
	return userMessages
}

// UserPayload is the profile edit form. Password is optional: an empty value
// keeps the current hash. Version carries the update counter the form was
// rendered with, when present.
type UserPayload struct {
	Username  string `form:"username" validate:"notblank,min=3,max=50,printable"`
	Password  string `form:"password" validate:"omitempty,min=6"`
	FirstName string `form:"firstName" validate:"notblank,max=50"`
	LastName  string `form:"lastName" validate:"max=50"`
	Email     string `form:"email" validate:"notblank,max=100,email"`
	Version   *int64 `form:"version"`
}

// ValidationMessages returns the user-facing message per "field.code".
func (p UserPayload) ValidationMessages() map[string]string {
	return userMessages
}

// PayloadOf returns the edit form pre-filled from u.
func PayloadOf(u User) UserPayload {
	version := u.UpdateCounter
	return UserPayload{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Version:   &version,
	}
}

// CoursePayload is the course create/edit form.
type CoursePayload struct {
	Title           string   `form:"title" validate:"notblank,max=100"`
	Description     string   `form:"description" validate:"notblank,max=500"`
	DurationInHours *int     `form:"durationInHours" validate:"omitempty,min=1"`
	Instructor      string   `form:"instructor" validate:"max=60"`
	Fees            *float64 `form:"fees" validate:"omitempty,min=0,max=9999999999.99"`
	Version         *int64   `form:"version"`
}

// ValidationMessages returns the user-facing message per "field.code".
func (p CoursePayload) ValidationMessages() map[string]string {
	return courseMessages
}

// CoursePayloadOf returns the edit form pre-filled from c.
func CoursePayloadOf(c Course) CoursePayload {
	version := c.Version
	return CoursePayload{
		Title:           c.Title,
		Description:     c.Description,
		DurationInHours: c.DurationInHours,
		Instructor:      c.Instructor,
		Fees:            c.Fees,
		Version:         &version,
	}
}

var userMessages = map[string]string{
	"username.required":  "Username is required",
	"username.sizeMin":   "Username must be between 3 and 50 characters",
	"username.sizeMax":   "Username must be between 3 and 50 characters",
	"username.pattern":   "Username must contain printable characters only",
	"password.required":  "Password is required",
	"password.sizeMin":   "Password must be at least 6 characters",
	"firstName.required": "First name is required",
	"firstName.sizeMax":  "First name must be less than 50 characters",
	"lastName.sizeMax":   "Last name must be less than 50 characters",
	"email.required":     "Email is required",
	"email.sizeMax":      "Email must be less than 100 characters",
	"email.emailSyntax":  "Email should be valid",
}

var courseMessages = map[string]string{
	"title.required":               "Course title is required",
	"title.sizeMax":                "Title must not exceed 100 characters",
	"description.required":         "Course description is required",
	"description.sizeMax":          "Description must not exceed 500 characters",
	"durationInHours.rangeMin":     "Duration must be at least 1 hour",
	"durationInHours.typeMismatch": "Duration must be a whole number of hours",
	"instructor.sizeMax":           "Instructor name must not exceed 60 characters",
	"fees.decimalMin":              "Fees must be non-negative",
	"fees.decimalMax":              "Fees must not exceed 9999999999.99",
	"fees.typeMismatch":            "Fees must be a number",
}
