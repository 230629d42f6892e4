// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authz

// Access is the requirement a [Rule] places on the caller.
type Access int

const (
	// AccessAuthenticated requires any logged-in principal.
	AccessAuthenticated Access = iota
	// AccessPublic lets anonymous callers through.
	AccessPublic
	// AccessAdmin requires a principal with the ADMIN role.
	AccessAdmin
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessAdmin:
		return "admin"
	default:
		return "authenticated"
	}
}

// Decision is the outcome of [Policy.Authorize].
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	Forbid
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	default:
		return "forbid"
	}
}
