// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Patch payloads use a nil pointer for "field omitted" and a non-nil pointer for
"field supplied", so these helpers show up wherever a partial update is applied.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Dereferences a pointer, returning the zero value if nil.
  - Apply: Overwrites a destination only when the patch value is present.
*/
package pointer

import "strings"

// To returns a pointer to the provided value (e.g. pointer.To("modern")).
func To[T any](v T) *T {
	return &v
}

// Val dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Apply copies *patch into *dst when patch is non-nil, reporting whether it did.
func Apply[T any](dst *T, patch *T) bool {
	if patch == nil {
		return false
	}
	*dst = *patch
	return true
}

// TrimmedOrNil trims a string pointer and maps blank values to nil.
//
// Optional text columns (region, summary, tag_type) store NULL rather than "".
func TrimmedOrNil(p *string) *string {
	if p == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*p)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
