// Package iojson writes command output as indented JSON and reads JSON
// input from a file flag or stdin.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the body written for a failed command in JSON mode.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// fallbackError builds an Error body by hand, for when marshaling failed.
func fallbackError(msg string, cause error) string {
	msgBytes, _ := json.Marshal(msg)
	causeBytes, _ := json.Marshal(cause.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, causeBytes)
}

// MarshalError renders msg and data as an Error body. When data cannot be
// marshaled the body carries the marshal error under "json_error".
func MarshalError(msg string, data map[string]any) string {
	bits, err := json.MarshalIndent(Error{Message: msg, Data: data}, "", "  ")
	if err != nil {
		return fallbackError(msg, err)
	}
	return string(bits)
}

// WriteError writes an Error body to w.
func WriteError(w io.Writer, msg string, data map[string]any) error {
	_, err := fmt.Fprintln(w, MarshalError(msg, data))
	return err
}

// WriteWith writes obj to w as indented JSON. A value that cannot be
// marshaled is reported to ew instead.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, err = fmt.Fprintln(ew, fallbackError("marshal output", err))
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
