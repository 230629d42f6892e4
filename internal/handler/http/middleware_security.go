package http

import "net/http"

// withSecurityHeaders sets the response headers every page carries. Framing
// is denied except on paths the policy opens to the same origin.
func (h *Handler) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("Referrer-Policy", "same-origin")
		if h.policy.FramesSameOrigin(r.URL.Path) {
			header.Set("X-Frame-Options", "SAMEORIGIN")
		} else {
			header.Set("X-Frame-Options", "DENY")
		}
		header.Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}
