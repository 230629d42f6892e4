// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-course-catalog/internal/logger"
)

// methodNotAllowed is registered as the router's MethodNotAllowed handler.
//
// Chi answers 405 when a path matches a route but the method is not
// handled. The catalog renders the 404 view instead, so callers probing
// with an unsupported method cannot tell the route exists.
func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("uri", r.RequestURI).
		Msg("method not allowed, answering as not found")
	h.notFound(w, r)
}
