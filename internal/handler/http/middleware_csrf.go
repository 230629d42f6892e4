// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/MKhiriev/go-course-catalog/internal/app"
	"github.com/MKhiriev/go-course-catalog/internal/authz"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
)

const (
	csrfFormField = "_csrf"
	csrfHeader    = "X-CSRF-TOKEN"
)

// withCSRF rejects mutating requests that do not carry the CSRF token of
// their session, unless the policy exempts the path.
func (h *Handler) withCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authz.Mutating(r.Method) || h.policy.CSRFExempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		s := sessionFrom(r.Context())
		token := r.Header.Get(csrfHeader)
		if token == "" {
			token = r.PostFormValue(csrfFormField)
		}

		if s == nil || token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.CSRFToken())) != 1 {
			logger.FromRequest(r).Warn().
				Str("method", r.Method).
				Str("uri", r.RequestURI).
				Bool("token_present", token != "").
				Msg("csrf token mismatch")
			h.renderError(w, r, http.StatusForbidden, app.MsgForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
