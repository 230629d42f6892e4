// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into self-describing one-way
// hashes and checks plaintexts against them.
//
// Implementations are stateless and safe for concurrent use.
type PasswordHasher interface {
	// Hash returns an encoded hash carrying the algorithm, its parameters,
	// a fresh random salt and the digest. The result never equals plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches stored. It compares in
	// constant time and returns false for malformed or unknown encodings
	// instead of an error.
	Verify(plaintext, stored string) bool
}
