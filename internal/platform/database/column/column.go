// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package column converts Go values to and from their stored column form where
// the two catalog backends need the same conversion.
package column

import (
	"encoding/json"
	"fmt"
	"time"
)

// EncodeJSON marshals an extra_data object. A nil or empty map is stored as NULL.
func EncodeJSON(value map[string]any) ([]byte, error) {
	if len(value) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("column: encode extra_data: %w", err)
	}
	return raw, nil
}

// DecodeJSON unmarshals an extra_data object. NULL decodes to nil.
func DecodeJSON(raw []byte) (map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var value map[string]any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("column: decode extra_data: %w", err)
	}
	return value, nil
}

// Micros stores a timestamp as unix microseconds (SQLite INTEGER columns).
func Micros(t time.Time) int64 {
	return t.UnixMicro()
}

// FromMicros is the inverse of [Micros] and always returns UTC.
func FromMicros(micros int64) time.Time {
	return time.UnixMicro(micros).UTC()
}
