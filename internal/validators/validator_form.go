// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FormValidator evaluates `validate` struct tags rule by rule with
// go-playground/validator and reports every violated rule.
//
// Supported rules: notblank, min, max, email, printable. The reported code
// depends on the rule and the field kind: min on a string is sizeMin, on an
// integer rangeMin and on a float decimalMin. A leading omitempty skips the
// field when it holds its zero value; nil pointers only fail notblank.
type FormValidator struct {
	validate *validator.Validate
}

// NewFormValidator returns a [Validator] for payload structs.
func NewFormValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// registration only fails for an empty tag or a nil function
	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("printable", printable)

	return &FormValidator{validate: v}
}

// Validate implements [Validator].
func (f *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return ErrUnsupportedType
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return ErrUnsupportedType
	}

	var messages map[string]string
	if mp, ok := obj.(MessageProvider); ok {
		messages = mp.ValidationMessages()
	}

	var errs FieldErrors
	typ := value.Type()
	for i := range typ.NumField() {
		sf := typ.Field(i)
		tag := sf.Tag.Get("validate")
		if !sf.IsExported() || tag == "" || tag == "-" {
			continue
		}

		name := fieldName(sf)
		if len(fields) > 0 && !slices.Contains(fields, name) {
			continue
		}

		fieldErrs, err := f.validateField(name, value.Field(i), strings.Split(tag, ","), messages)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		errs = append(errs, fieldErrs...)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (f *FormValidator) validateField(name string, field reflect.Value, rules []string, messages map[string]string) (FieldErrors, error) {
	if len(rules) > 0 && rules[0] == "omitempty" {
		if field.IsZero() {
			return nil, nil
		}
		rules = rules[1:]
	}

	var errs FieldErrors
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			if slices.Contains(rules, "notblank") {
				errs.Add(name, CodeRequired, messageFor(messages, name, CodeRequired, ""))
			}
			return errs, nil
		}
		field = field.Elem()
	}

	for _, rule := range rules {
		tag, param, _ := strings.Cut(rule, "=")
		// an empty address is reported by notblank alone
		if tag == "email" && field.Kind() == reflect.String && field.String() == "" {
			continue
		}

		err := f.validate.Var(field.Interface(), rule)
		if err == nil {
			continue
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnknownRule, rule, err)
		}

		code := codeFor(tag, field.Kind())
		errs.Add(name, code, messageFor(messages, name, code, param))
	}

	return errs, nil
}

func fieldName(sf reflect.StructField) string {
	if name, _, _ := strings.Cut(sf.Tag.Get("form"), ","); name != "" && name != "-" {
		return name
	}
	return sf.Name
}

func codeFor(tag string, kind reflect.Kind) string {
	switch tag {
	case "notblank", "required":
		return CodeRequired
	case "email":
		return CodeEmailSyntax
	case "printable":
		return CodePattern
	case "min", "gte":
		switch kind {
		case reflect.String, reflect.Slice, reflect.Map:
			return CodeSizeMin
		case reflect.Float32, reflect.Float64:
			return CodeDecimalMin
		default:
			return CodeRangeMin
		}
	case "max", "lte":
		if kind == reflect.Float32 || kind == reflect.Float64 {
			return CodeDecimalMax
		}
		return CodeSizeMax
	default:
		return CodeInvalid
	}
}

var defaultMessages = map[string]string{
	CodeRequired:     "must not be blank",
	CodeSizeMin:      "size must be at least %s",
	CodeSizeMax:      "size must be at most %s",
	CodeEmailSyntax:  "must be a well-formed email address",
	CodeRangeMin:     "must be greater than or equal to %s",
	CodeDecimalMin:   "must be greater than or equal to %s",
	CodeDecimalMax:   "must be less than or equal to %s",
	CodePattern:      "contains characters that are not allowed",
	CodeTypeMismatch: "has an invalid value",
	CodeInvalid:      "is invalid",
}

// MessageFor resolves the message for a field error from the payload's
// messages, falling back to a generic one.
func MessageFor(obj any, field, code string) string {
	var messages map[string]string
	if mp, ok := obj.(MessageProvider); ok {
		messages = mp.ValidationMessages()
	}
	return messageFor(messages, field, code, "")
}

func messageFor(messages map[string]string, field, code, param string) string {
	if msg, ok := messages[field+"."+code]; ok {
		return msg
	}

	msg := defaultMessages[code]
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, param)
	}
	return msg
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return strings.TrimSpace(field.String()) != ""
}

func printable(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	for _, r := range field.String() {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
