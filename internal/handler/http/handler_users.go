package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-course-catalog/internal/app"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/validators"
	"github.com/MKhiriev/go-course-catalog/models"
)

func (h *Handler) registrationPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "user_form", "Register", userForm{Action: "/users", Registration: true}, nil)
}

// register handles self-registration. Field problems re-render the form
// with 200.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, err := postForm(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.services.RegistrationService.Register(ctx, decodeRegistration(form))
	if err != nil {
		var fieldErrs validators.FieldErrors
		if errors.As(err, &fieldErrs) {
			view := userFormFromValues("/users", form)
			view.Registration = true
			h.render(w, r, http.StatusOK, "user_form", "Register", view, fieldErrs)
			return
		}
		h.handleError(w, r, err)
		return
	}

	sessionFrom(ctx).AddFlash(flashMessage, fmt.Sprintf(app.MsgUserRegistered, user.FullName()))
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "users", "Users", users, nil)
}

func (h *Handler) showUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.services.UserService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "user", user.FullName(), user, nil)
}

func (h *Handler) editUserPage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.services.UserService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "user_form", "Edit profile", userFormFromUser(user), nil)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	form, err := postForm(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	payload, err := decodeUserPayload(form)
	if err == nil {
		err = requireVersion(payload.Version)
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.services.UserService.Update(ctx, id, payload)
	if err != nil {
		var fieldErrs validators.FieldErrors
		if errors.As(err, &fieldErrs) {
			view := userFormFromValues(fmt.Sprintf("/users/%d", id), form)
			view.ID = id
			h.render(w, r, http.StatusOK, "user_form", "Edit profile", view, fieldErrs)
			return
		}
		h.handleError(w, r, err)
		return
	}

	sessionFrom(ctx).AddFlash(flashMessage, app.MsgUserUpdated)
	http.Redirect(w, r, fmt.Sprintf("/users/%d", user.ID), http.StatusFound)
}

// deleteUser removes an account. Deleting one's own account ends the
// session; so does any deletion by a non-admin, who cannot see the list.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err = h.services.UserService.Delete(ctx, id); err != nil {
		h.handleError(w, r, err)
		return
	}

	principal := currentPrincipal(r)
	logger.FromRequest(r).Info().
		Int64("user_id", id).
		Int64("deleted_by", principal.UserID).
		Msg("user account deleted")

	if principal.UserID == id || principal.Role != models.RoleAdmin {
		h.endSession(w, r)
		return
	}

	sessionFrom(ctx).AddFlash(flashMessage, app.MsgUserDeleted)
	http.Redirect(w, r, "/users", http.StatusFound)
}
