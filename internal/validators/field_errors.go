// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "strings"

// Error codes carried by [FieldError].
const (
	CodeRequired     = "required"
	CodeSizeMin      = "sizeMin"
	CodeSizeMax      = "sizeMax"
	CodeEmailSyntax  = "emailSyntax"
	CodeRangeMin     = "rangeMin"
	CodeDecimalMin   = "decimalMin"
	CodeDecimalMax   = "decimalMax"
	CodePattern      = "pattern"
	CodeDuplicate    = "duplicate"
	CodeTypeMismatch = "typeMismatch"
	CodeInvalid      = "invalid"
)

// FieldError is a single violated rule on a form field.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

// FieldErrors is the ordered result of validating a form. An empty slice
// means the form is valid.
type FieldErrors []FieldError

// Error implements error.
func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error.
func (e *FieldErrors) Add(field, code, message string) {
	*e = append(*e, FieldError{Field: field, Code: code, Message: message})
}

// Has reports whether field has an error with the given code. An empty code
// matches any error on the field.
func (e FieldErrors) Has(field, code string) bool {
	for _, fe := range e {
		if fe.Field == field && (code == "" || fe.Code == code) {
			return true
		}
	}
	return false
}

// Messages returns the messages reported for field, in order.
func (e FieldErrors) Messages(field string) []string {
	var messages []string
	for _, fe := range e {
		if fe.Field == field {
			messages = append(messages, fe.Message)
		}
	}
	return messages
}
