// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// MinTokenBytes is the smallest amount of entropy accepted by [NewToken].
const MinTokenBytes = 16

// NewToken returns n random bytes from the OS CSPRNG encoded as unpadded
// base64url. n below [MinTokenBytes] is raised to it.
func NewToken(n int) (string, error) {
	if n < MinTokenBytes {
		n = MinTokenBytes
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
