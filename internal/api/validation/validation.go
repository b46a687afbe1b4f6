// Package validation checks request payloads before any side effect occurs.
// Validators are deterministic and fail fast: the first violated constraint
// is reported, never an aggregate. Field order inside each validator is the
// declared schema order, so the reported field is stable for a given payload.
package validation

import "regexp"

// emailRegex accepts local@domain.tld with no whitespace in either part.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// passwordRegex enumerates the characters accepted in credentials:
// printable ASCII without spaces.
var passwordRegex = regexp.MustCompile(`^[\x21-\x7e]+$`)

// FieldError identifies the first violated constraint of a payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidEmail reports whether s has a plausible email shape.
func ValidEmail(s string) bool {
	return len(s) <= 254 && emailRegex.MatchString(s)
}
