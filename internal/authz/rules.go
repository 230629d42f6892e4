// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authz

import "net/http"

var (
	readMethods = []string{http.MethodGet, http.MethodHead}
	post        = []string{http.MethodPost}
)

// CatalogRules is the access table of the course catalog.
//
// The public course rows only cover reads so that POST /courses and
// POST /courses/{id} fall through to the ADMIN rows below them.
// POST /courses/enroll sits above POST /courses/* for the same reason.
func CatalogRules() []Rule {
	return []Rule{
		{Patterns: []string{"/", "/login", "/css/**", "/js/**"}, Access: AccessPublic},
		{Methods: post, Patterns: []string{"/logout"}, Access: AccessPublic},
		{Methods: readMethods, Patterns: []string{"/courses"}, Access: AccessPublic},
		{Methods: readMethods, Patterns: []string{"/courses/{id}"}, Access: AccessPublic},
		{Patterns: []string{"/users/new"}, Access: AccessPublic},
		{Methods: post, Patterns: []string{"/users"}, Access: AccessPublic},
		{Patterns: []string{"/courses/new"}, Access: AccessAdmin},
		{Patterns: []string{"/courses/*/edit"}, Access: AccessAdmin},
		{Methods: post, Patterns: []string{"/courses"}, Access: AccessAdmin},
		{Methods: post, Patterns: []string{"/courses/*/delete"}, Access: AccessAdmin},
		{Methods: post, Patterns: []string{"/courses/enroll"}, Access: AccessAuthenticated},
		{Methods: post, Patterns: []string{"/courses/*"}, Access: AccessAdmin},
		{Patterns: []string{"/users"}, Access: AccessAdmin},
		{Patterns: []string{"/users/{id}", "/users/{id}/edit"}, Access: AccessAuthenticated},
		{Methods: post, Patterns: []string{"/users/{id}", "/users/{id}/delete"}, Access: AccessAuthenticated},
		{Patterns: []string{"/whoami"}, Access: AccessAuthenticated},
		{Patterns: []string{"/**"}, Access: AccessAuthenticated},
	}
}

// NewCatalogPolicy compiles [CatalogRules]. csrfExempt patterns are both
// exempt from the CSRF check and allowed to be framed by the same origin.
func NewCatalogPolicy(csrfExempt []string) (*Policy, error) {
	return NewPolicy(CatalogRules(),
		WithCSRFExemptions(csrfExempt...),
		WithSameOriginFrames(csrfExempt...),
	)
}
