// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-course-catalog/internal/app"
	"github.com/MKhiriev/go-course-catalog/internal/authz"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/utils"
	"github.com/MKhiriev/go-course-catalog/models"
)

// savedRequestAttr remembers where an anonymous client wanted to go before
// it was sent to the login page.
const savedRequestAttr = "savedRequest"

// withPolicy applies the access policy before any handler runs.
func (h *Handler) withPolicy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		// an encoded slash would make the matched path differ from the
		// routed one
		if strings.Contains(strings.ToLower(r.URL.RawPath), "%2f") {
			h.renderError(w, r, http.StatusBadRequest, app.MsgBadRequest)
			return
		}

		principal := currentPrincipal(r)
		decision := h.policy.Authorize(r.Method, r.URL.Path, principal)

		switch decision {
		case authz.Allow:
			next.ServeHTTP(w, r)
		case authz.RedirectToLogin:
			if r.Method == http.MethodGet {
				if s := sessionFrom(r.Context()); s != nil {
					s.SetAttr(savedRequestAttr, r.URL.RequestURI())
				}
			}
			log.Debug().Str("uri", r.RequestURI).Msg("anonymous request redirected to login")
			http.Redirect(w, r, "/login", http.StatusFound)
		default:
			log.Warn().
				Str("uri", r.RequestURI).
				Str("method", r.Method).
				Str("username", principal.Username).
				Msg("access denied")
			h.renderError(w, r, http.StatusForbidden, app.MsgForbidden)
		}
	})
}

// currentPrincipal returns the principal of the request, or nil when it is
// anonymous.
func currentPrincipal(r *http.Request) *models.Principal {
	p, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		return nil
	}
	return &p
}
