// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// The validator is used in the service layer, never in handlers or storage,
// so business logic only operates on semantically valid data.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/arjuju98/the-baking-atlas/internal/platform/apperr"
)

var (
	// slugRegex matches slug format: lowercase letters, digits, hyphens.
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// codeRegex matches a two or three letter country code in any case.
	codeRegex = regexp.MustCompile(`^[A-Za-z]{2,3}$`)
)

// InvalidJSON returns the error used when a request body cannot be decoded.
func InvalidJSON(cause error) *apperr.AppError {
	return apperr.ValidationError("Invalid JSON payload").WithCause(cause)
}

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// NotBlank fails if value is provided (non-nil) but trims to empty.
func (v *Validator) NotBlank(field string, value *string) *Validator {
	if value != nil && strings.TrimSpace(*value) == "" {
		v.add(field, "Must not be blank")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MaxLenPtr applies [Validator.MaxLen] only when the value is provided.
func (v *Validator) MaxLenPtr(field string, value *string, max int) *Validator {
	if value != nil {
		v.MaxLen(field, *value, max)
	}
	return v
}

// Slug fails if the value is not a valid URL slug.
//
// # Format
//
// Slugs must consist only of lowercase letters, digits, and hyphens,
// with no leading or trailing hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	if !slugRegex.MatchString(value) {
		v.add(field, "Must be a valid URL slug (lowercase letters, digits, hyphens only)")
	}
	return v
}

// CountryCode fails if the value is not a two or three letter code.
// Case is not checked; codes are upper-cased before storage.
func (v *Validator) CountryCode(field, value string) *Validator {
	if !codeRegex.MatchString(strings.TrimSpace(value)) {
		v.add(field, "Must be a 2 or 3 letter country code")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// OneOfPtr applies [Validator.OneOf] only when the value is provided.
func (v *Validator) OneOfPtr(field string, value *string, allowed ...string) *Validator {
	if value != nil {
		v.OneOf(field, *value, allowed...)
	}
	return v
}

// EachNotBlank fails for every list entry that trims to empty.
//
// The reported field carries the index, e.g. "tag_names[2]".
func (v *Validator) EachNotBlank(field string, values []string) *Validator {
	for i, value := range values {
		if strings.TrimSpace(value) == "" {
			v.add(fmt.Sprintf("%s[%d]", field, i), "Must not be blank")
		}
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("extra_data", len(raw) > limit, "Too large")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method; call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
