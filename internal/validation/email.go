package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// NormalizeEmail lowercases raw and checks it is a plausible address.
// Surrounding whitespace is not trimmed and makes the address invalid.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(raw)
	if !emailRegex.MatchString(email) {
		return "", fmt.Errorf("invalid email address %q", raw)
	}
	return email, nil
}
