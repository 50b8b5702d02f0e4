// utils/validator.go - Input validation
package utils

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// Keyword count bounds for a manuscript.
	MinKeywords = 3
	MaxKeywords = 6
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// ValidateKeywords checks the keyword list against the journal's 3-6 bound
// after dropping empty entries.
func ValidateKeywords(keywords []string) (bool, string) {
	cleaned := 0
	for _, kw := range keywords {
		if strings.TrimSpace(kw) != "" {
			cleaned++
		}
	}
	if cleaned < MinKeywords || cleaned > MaxKeywords {
		return false, fmt.Sprintf("Between %d and %d keywords are required", MinKeywords, MaxKeywords)
	}
	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
