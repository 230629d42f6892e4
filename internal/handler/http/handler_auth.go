package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-course-catalog/internal/app"
	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/service"
	"github.com/MKhiriev/go-course-catalog/internal/utils"
)

const (
	flashLogout  = "logoutMessage"
	flashMessage = "message"
	flashSuccess = "successMessage"
	flashError   = "errorMessage"
)

type homeView struct {
	CourseCount int64
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	count, err := h.services.CourseService.Count(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "home", "Course Catalog", homeView{CourseCount: count}, nil)
}

type loginView struct {
	Error string
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	var view loginView
	if r.URL.Query().Has("error") {
		view.Error = app.MsgInvalidCredentials
	}

	h.render(w, r, http.StatusOK, "login", "Login", view, nil)
}

// login authenticates the submitted credentials. Every failure leads back to
// the login page with the same message.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	form, err := postForm(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	principal, err := h.services.AuthService.Authenticate(ctx, form.Get("username"), form.Get("password"))
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) || errors.Is(err, service.ErrAccountDisabled) {
			log.Info().Err(err).Msg("login failed")
			http.Redirect(w, r, "/login?error", http.StatusFound)
			return
		}
		h.handleError(w, r, err)
		return
	}

	s := sessionFrom(ctx)
	target := h.app.PostLoginRedirect
	if saved, ok := s.PopAttr(savedRequestAttr); ok && config.IsLocalPath(saved) {
		target = saved
	}

	if err = h.sessions.Authenticate(s, principal); err != nil {
		h.handleError(w, r, err)
		return
	}
	if err = h.setSessionCookie(w, s); err != nil {
		h.handleError(w, r, err)
		return
	}

	log.Info().Int64("user_id", principal.UserID).Msg("user logged in")
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)
}

// endSession invalidates the current session and sends the client home with
// the logout message waiting in a fresh session.
func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.startNewSession(w, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	s.AddFlash(flashLogout, app.MsgLoggedOut)

	http.Redirect(w, r, "/", http.StatusFound)
}

// whoami returns the authorities of the current principal.
func (h *Handler) whoami(w http.ResponseWriter, r *http.Request) {
	principal := currentPrincipal(r)
	if principal == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if _, err := utils.WriteJSON(w, r, principal.Authorities(), http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing whoami response")
	}
}
