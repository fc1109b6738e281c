// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"
)

// NotificationID validates a notification ID is non-empty after trimming whitespace.
func NotificationID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}

// NotificationIDField returns a criterio validator for notification IDs.
func NotificationIDField(field, id string) error {
	return criterio.Run(field, id, NotificationID)
}

// Category validates a category name. An empty allowed list accepts any
// non-empty name.
func Category(name string, allowed []string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("category is required")
	}
	if len(allowed) > 0 && !slices.Contains(allowed, name) {
		return fmt.Errorf("unknown category %q (allowed: %s)", name, strings.Join(allowed, ", "))
	}
	return nil
}

// StorageKey validates a persistence key: non-empty and free of whitespace.
func StorageKey(key string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}
	if strings.ContainsFunc(key, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }) {
		return fmt.Errorf("key %q must not contain whitespace", key)
	}
	return nil
}
