// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/session"
	"github.com/MKhiriev/go-course-catalog/internal/utils"
)

const (
	sessionCookieName = "CATALOGSESSION"

	// defaultCookieLifetime signs cookies when no absolute session timeout
	// is configured.
	defaultCookieLifetime = 24 * time.Hour
)

type sessionCtxKey struct{}

func withSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// sessionFrom returns the session attached by withSession, or nil.
func sessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionCtxKey{}).(*session.Session)
	return s
}

// withSession resolves the session of the client from its cookie, creating a
// new anonymous one when the cookie is absent, invalid or points to an
// expired session. The session stays locked until the request completes so
// that requests of one client are served one at a time.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		s, id := h.lookupSession(r)
		if s != nil {
			s.Lock()
			if s.Invalidated() || s.ID() != id {
				// logged out or logged in by a concurrent request while we
				// were waiting; the id in the cookie no longer names it
				s.Unlock()
				s = nil
			}
		}

		if s == nil {
			created, err := h.sessions.Create()
			if err != nil {
				log.Err(err).Msg("error creating session")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			s = created
			s.Lock()
			if err := h.setSessionCookie(w, s); err != nil {
				s.Unlock()
				log.Err(err).Msg("error signing session cookie")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}
		defer s.Unlock()

		ctx := withSession(r.Context(), s)
		if p := s.Principal(); p != nil {
			ctx = utils.WithPrincipal(ctx, *p)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// lookupSession returns the session named by the cookie together with the id
// it was found under.
func (h *Handler) lookupSession(r *http.Request) (*session.Session, string) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, ""
	}

	log := logger.FromRequest(r)

	id, err := utils.ParseSessionToken(cookie.Value, h.security.SessionSignKey, h.security.SessionIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("rejected session cookie")
		return nil, ""
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		if !errors.Is(err, session.ErrSessionNotFound) {
			log.Err(err).Msg("error loading session")
		}
		return nil, ""
	}
	return s, id
}

// setSessionCookie binds the client to s. It must be called whenever the
// session id changes.
func (h *Handler) setSessionCookie(w http.ResponseWriter, s *session.Session) error {
	lifetime := h.security.SessionAbsoluteTimeout
	if lifetime <= 0 {
		lifetime = defaultCookieLifetime
	}

	token, err := utils.GenerateSessionToken(h.security.SessionIssuer, s.ID(), s.CreatedAt(), lifetime, h.security.SessionSignKey)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.security.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// startNewSession invalidates the session of the request, if any, and
// returns a fresh anonymous one bound to the client. The new session is not
// locked: nothing else can reach it before its cookie is sent.
func (h *Handler) startNewSession(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if old := sessionFrom(r.Context()); old != nil {
		h.sessions.Invalidate(old)
	}

	s, err := h.sessions.Create()
	if err != nil {
		return nil, err
	}
	if err := h.setSessionCookie(w, s); err != nil {
		return nil, err
	}
	return s, nil
}
