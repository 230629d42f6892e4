package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidated     = errors.New("session is invalidated")
)
