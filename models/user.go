// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is an account of the course catalog. It carries identity, the
// credential hash, the granted role and profile data.
// Sensitive fields must never leave trusted boundaries.
type User struct {
	// ID is assigned by the store on first persist. Zero means "not saved yet".
	ID int64 `json:"id"`

	// Username is the login name. Unique across all users, compared
	// case-sensitively.
	Username string `json:"username"`

	// PasswordHash is the self-describing output of the password hasher.
	// It is never the plaintext and is never serialized.
	PasswordHash string `json:"-"`

	// FirstName is required; LastName is optional.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`

	// Email is unique across all users.
	Email string `json:"email"`

	// Role is the granted authority. Self-registration always yields RoleStudent.
	Role Role `json:"role"`

	// Enabled set to false blocks authentication for the account.
	Enabled bool `json:"enabled"`

	// UpdateCounter is the optimistic version, incremented by the store on
	// every update. Callers never set it from user input.
	UpdateCounter int64 `json:"-"`

	// CreatedAt and UpdatedAt are assigned by the store. UpdatedAt is nil
	// until the first update.
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FullName derives the display name: "first last", or just the first name
// when there is no last name.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Principal returns the identity view of the user, including the password
// hash. Use [Principal.WithoutCredentials] before storing it anywhere.
func (u User) Principal() Principal {
	return Principal{
		UserID:       u.ID,
		Username:     u.Username,
		Role:         u.Role,
		Enabled:      u.Enabled,
		PasswordHash: u.PasswordHash,
	}
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
