// Package sanitizer normalizes free-text fields before validation, so the
// stored JSON never carries leading/trailing whitespace.
package sanitizer

import "strings"

// Text trims surrounding whitespace from a free-text field.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TextSlice trims every element and drops entries that become empty.
func TextSlice(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// IsBlank reports whether a string is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
