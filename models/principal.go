// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Principal is the identity attached to an authenticated session.
//
// PasswordHash is only populated on the path between the identity resolver
// and the authenticator; sessions keep a copy without it.
type Principal struct {
	UserID       int64  `json:"id"`
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	Enabled      bool   `json:"enabled"`
	PasswordHash string `json:"-"`
}

// IsAdmin reports whether the principal holds the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Authorities returns the granted authorities in "ROLE_<name>" form.
func (p Principal) Authorities() []Authority {
	return []Authority{{Authority: p.Role.Authority()}}
}

// WithoutCredentials returns a copy of p with the password hash cleared.
func (p Principal) WithoutCredentials() Principal {
	p.PasswordHash = ""
	return p
}

// Authority is a single granted authority as returned by /whoami.
type Authority struct {
	Authority string `json:"authority"`
}
