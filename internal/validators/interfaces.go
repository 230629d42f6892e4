// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides structural validation of incoming forms.
//
// Rules are declared on payload structs through `validate` tags and evaluated
// one by one, so a field that violates several rules reports each of them.
// Field errors across the whole form are aggregated in declaration order and
// returned as [FieldErrors], which implements error.
package validators

import "context"

// Validator validates a form value and optionally restricts validation to
// the named fields (form names, e.g. "email").
//
// A nil result means the value is valid. Rule violations are reported as a
// [FieldErrors] value; any other error means the value could not be
// validated at all (for example [ErrUnsupportedType]).
type Validator interface {
	Validate(context.Context, any, ...string) error
}

// MessageProvider is implemented by payloads that carry user-facing messages
// for their rules. Keys have the form "<field>.<code>".
type MessageProvider interface {
	ValidationMessages() map[string]string
}
