// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/crypto"
	"github.com/MKhiriev/go-course-catalog/models"
	"github.com/thejerf/abtime"
)

const tokenBytes = 32

// Store is the session store consumed by the HTTP layer and the sweeper.
//
// Methods taking a *Session expect the caller to hold its lock.
type Store interface {
	Create() (*Session, error)
	Get(id string) (*Session, error)
	Authenticate(s *Session, principal models.Principal) error
	Rotate(s *Session) error
	Invalidate(s *Session)
	Sweep() int
	Len() int
}

type entry struct {
	session      *Session
	createdAt    time.Time
	lastAccessed time.Time
}

// MemoryStore keeps sessions in process memory. Sessions do not survive a
// restart.
type MemoryStore struct {
	// guards sessions and every entry's timestamps
	mu       sync.Mutex
	sessions map[string]*entry

	idleTimeout     time.Duration
	absoluteTimeout time.Duration

	abtime.AbstractTime
}

// NewMemoryStore returns a store expiring sessions after
// cfg.SessionIdleTimeout without access or cfg.SessionAbsoluteTimeout after
// creation. A nil clock means wall-clock time.
func NewMemoryStore(cfg config.Security, clock abtime.AbstractTime) *MemoryStore {
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	return &MemoryStore{
		sessions:        make(map[string]*entry),
		idleTimeout:     cfg.SessionIdleTimeout,
		absoluteTimeout: cfg.SessionAbsoluteTimeout,
		AbstractTime:    clock,
	}
}

// Create starts a new anonymous session with a fresh id and CSRF token.
func (ms *MemoryStore) Create() (*Session, error) {
	id, err := crypto.NewToken(tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating session id: %w", err)
	}
	csrf, err := crypto.NewToken(tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating csrf token: %w", err)
	}

	now := ms.Now()
	s := &Session{
		id:        id,
		auth:      Anonymous{},
		csrfToken: csrf,
		createdAt: now,
	}

	ms.mu.Lock()
	ms.sessions[id] = &entry{session: s, createdAt: now, lastAccessed: now}
	ms.mu.Unlock()

	return s, nil
}

// Get returns the live session stored under id and marks it accessed.
// Expired sessions are removed and reported as [ErrSessionNotFound].
func (ms *MemoryStore) Get(id string) (*Session, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	e, ok := ms.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := ms.Now()
	if ms.expired(e, now) {
		delete(ms.sessions, id)
		return nil, ErrSessionNotFound
	}
	e.lastAccessed = now

	return e.session, nil
}

// Authenticate binds principal to s. The session id and CSRF token are
// replaced so an id obtained before login is useless afterwards.
func (ms *MemoryStore) Authenticate(s *Session, principal models.Principal) error {
	if err := ms.Rotate(s); err != nil {
		return err
	}
	s.auth = Authenticated{Principal: principal.WithoutCredentials()}
	return nil
}

// Rotate moves s to a fresh id and issues a new CSRF token. Flash and other
// attributes are kept.
func (ms *MemoryStore) Rotate(s *Session) error {
	if s.invalidated {
		return ErrInvalidated
	}

	id, err := crypto.NewToken(tokenBytes)
	if err != nil {
		return fmt.Errorf("error generating session id: %w", err)
	}
	csrf, err := crypto.NewToken(tokenBytes)
	if err != nil {
		return fmt.Errorf("error generating csrf token: %w", err)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	e, ok := ms.sessions[s.id]
	if !ok {
		return ErrSessionNotFound
	}
	delete(ms.sessions, s.id)
	e.lastAccessed = ms.Now()
	ms.sessions[id] = e

	s.id = id
	s.csrfToken = csrf

	return nil
}

// Invalidate terminates s. Requests still holding it observe
// [Session.Invalidated] and a later Get of its id fails.
func (ms *MemoryStore) Invalidate(s *Session) {
	ms.mu.Lock()
	delete(ms.sessions, s.id)
	ms.mu.Unlock()

	s.invalidated = true
	s.auth = Anonymous{}
	s.flash = nil
	s.attrs = nil
}

// Sweep removes expired sessions and returns how many were removed.
func (ms *MemoryStore) Sweep() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.Now()
	removed := 0
	for id, e := range ms.sessions {
		if ms.expired(e, now) {
			delete(ms.sessions, id)
			removed++
		}
	}
	return removed
}

func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.sessions)
}

func (ms *MemoryStore) expired(e *entry, now time.Time) bool {
	if ms.idleTimeout > 0 && now.Sub(e.lastAccessed) >= ms.idleTimeout {
		return true
	}
	if ms.absoluteTimeout > 0 && now.Sub(e.createdAt) >= ms.absoluteTimeout {
		return true
	}
	return false
}
