// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	// ErrUnsupportedType is returned when the validated value is not a struct
	// or a pointer to one.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrUnknownRule is returned when a `validate` tag names a rule that the
	// underlying engine does not know.
	ErrUnknownRule = errors.New("unknown validation rule")
)
