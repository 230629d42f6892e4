package service

import (
	"errors"

	"github.com/MKhiriev/go-course-catalog/internal/store"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrBadCredentials covers an unknown username and a wrong password.
	// Callers must not distinguish the two towards the client.
	ErrBadCredentials  = errors.New("bad credentials")
	ErrAccountDisabled = errors.New("account is disabled")

	ErrUserNotFound   = errors.New("user not found")
	ErrCourseNotFound = errors.New("course not found")

	// ErrStaleWrite means the record changed after it was read. The caller
	// should reload it and retry.
	ErrStaleWrite = errors.New("record was modified concurrently")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)

// fromStore translates repository sentinels into service ones. Other errors
// pass through unchanged.
func fromStore(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrCourseNotFound):
		return ErrCourseNotFound
	case errors.Is(err, store.ErrStaleWrite):
		return ErrStaleWrite
	default:
		return err
	}
}
