package validation

import (
	"strings"
)

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidFieldName reports whether name can be used as a document field.
// Operator prefixes and path separators are rejected since document stores
// interpret them in queries.
func IsValidFieldName(name string) bool {
	if !IsNotEmpty(name) {
		return false
	}
	return !strings.HasPrefix(name, "$") && !strings.Contains(name, ".")
}
