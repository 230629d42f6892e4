// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-course-catalog/models"
)

// Session is the server-side state of one client.
//
// Accessors other than Lock/Unlock expect the caller to hold the session
// lock.
type Session struct {
	mu sync.Mutex

	id        string
	auth      Authentication
	csrfToken string
	flash     map[string]string
	attrs     map[string]string
	createdAt time.Time

	invalidated bool
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

func (s *Session) ID() string { return s.id }

func (s *Session) CSRFToken() string { return s.csrfToken }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Invalidated reports whether the session was terminated by logout or
// expiry after the caller obtained it.
func (s *Session) Invalidated() bool { return s.invalidated }

func (s *Session) Authentication() Authentication { return s.auth }

// Principal returns the authenticated principal or nil for anonymous
// sessions.
func (s *Session) Principal() *models.Principal { return PrincipalOf(s.auth) }

// AddFlash stores value under key for the next request on this session.
func (s *Session) AddFlash(key, value string) {
	if s.flash == nil {
		s.flash = make(map[string]string)
	}
	s.flash[key] = value
}

// TakeFlashes removes and returns every pending flash attribute.
func (s *Session) TakeFlashes() map[string]string {
	f := s.flash
	s.flash = nil
	return f
}

func (s *Session) SetAttr(key, value string) {
	if s.attrs == nil {
		s.attrs = make(map[string]string)
	}
	s.attrs[key] = value
}

func (s *Session) Attr(key string) (string, bool) {
	v, ok := s.attrs[key]
	return v, ok
}

// PopAttr returns and deletes the attribute stored under key.
func (s *Session) PopAttr(key string) (string, bool) {
	v, ok := s.attrs[key]
	delete(s.attrs, key)
	return v, ok
}
