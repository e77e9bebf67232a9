package validation

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinSearchQueryLength is the shortest accepted search query
const MinSearchQueryLength = 2

// IsValidEmail validates email format
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidSearchQuery validates a product search query
func IsValidSearchQuery(query string) bool {
	return len(strings.TrimSpace(query)) >= MinSearchQueryLength
}

// IsValidImageFormat validates a requested output image format
func IsValidImageFormat(format string) bool {
	switch strings.ToLower(format) {
	case "webp", "jpeg", "jpg", "png":
		return true
	}
	return false
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
