// Package jsonutil provides shared helpers for JSON bodies exchanged with
// the items API: decoding with error context and strict object checks.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// UnmarshalObject is UnmarshalWithContext for bodies that must be a JSON object.
// A bare array, string or null is rejected even when it would decode into v.
func UnmarshalObject(data []byte, v interface{}, context string) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("%s: empty body", context)
	}
	if trimmed[0] != '{' {
		return fmt.Errorf("%s: expected JSON object", context)
	}
	return UnmarshalWithContext(trimmed, v, context)
}

// Snippet returns at most n bytes of data for log lines.
func Snippet(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
