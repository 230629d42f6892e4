// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the password hasher and random token helpers.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-course-catalog/internal/config"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	argon2idID = "argon2id"

	saltLength = 16
	keyLength  = 32

	// upper bounds accepted when decoding a stored hash
	maxMemoryKiB = 1 << 22
	maxTime      = 64
)

// ErrMalformedHash is returned by [DecodeHash] for strings that are not
// argon2id PHC hashes produced by this package.
var ErrMalformedHash = errors.New("malformed password hash")

// Argon2Params are the argon2id cost parameters.
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// passwordHasher is the argon2id implementation of [PasswordHasher].
// Stored bcrypt hashes ("$2a$", "$2b$", "$2y$") are still accepted by Verify
// so accounts imported from older deployments can log in.
type passwordHasher struct {
	params Argon2Params
}

// NewPasswordHasher returns a [PasswordHasher] tuned by cfg. The defaults
// (t=3, m=64 MiB, p=2) cost roughly 100 ms per verification on commodity
// hardware.
func NewPasswordHasher(cfg config.Security) PasswordHasher {
	return &passwordHasher{
		params: Argon2Params{
			Time:      cfg.HashTime,
			MemoryKiB: cfg.HashMemoryKiB,
			Threads:   cfg.HashThreads,
		},
	}
}

// Hash implements [PasswordHasher]. The output uses the PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<digest>
func (h *passwordHasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, keyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idID,
		argon2.Version,
		h.params.MemoryKiB,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify implements [PasswordHasher].
func (h *passwordHasher) Verify(plaintext, stored string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
	}

	params, salt, want, err := DecodeHash(stored)
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(plaintext), salt, params.Time, params.MemoryKiB, params.Threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

// DecodeHash splits an argon2id PHC string into its parameters, salt and
// digest.
func DecodeHash(encoded string) (Argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != argon2idID {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}

	var p Argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Time, &p.Threads); err != nil {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}
	if p.Time < 1 || p.Time > maxTime || p.Threads < 1 || p.MemoryKiB < 8*uint32(p.Threads) || p.MemoryKiB > maxMemoryKiB {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) < 8 {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) < 16 || len(key) > 128 {
		return Argon2Params{}, nil, nil, ErrMalformedHash
	}

	return p, salt, key, nil
}
