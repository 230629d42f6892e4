// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "github.com/MKhiriev/go-course-catalog/models"

// Authentication is the authentication state of a session: either
// [Anonymous] or [Authenticated].
type Authentication interface {
	authentication()
}

// Anonymous is the state of a session nobody has logged into.
type Anonymous struct{}

// Authenticated carries the principal bound to the session at login.
type Authenticated struct {
	Principal models.Principal
}

func (Anonymous) authentication()     {}
func (Authenticated) authentication() {}

// PrincipalOf returns the principal of an authenticated state or nil.
func PrincipalOf(a Authentication) *models.Principal {
	if auth, ok := a.(Authenticated); ok {
		p := auth.Principal
		return &p
	}
	return nil
}
