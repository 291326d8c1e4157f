package utils

import (
	"regexp"
	"strings"
)

// MinAddressLength is the minimum delivery address length after trimming.
const MinAddressLength = 10

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+7 \(\d{3}\) \d{3}-\d{2}-\d{2}$`)
)

// ValidateEmail reports whether email has a local@domain.tld shape.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidatePhone accepts exactly the normalized form +7 (XXX) XXX-XX-XX.
// Callers should run user input through FormatPhone first.
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// ValidateAddress requires at least MinAddressLength characters after
// trimming.
func ValidateAddress(address string) bool {
	return len([]rune(strings.TrimSpace(address))) >= MinAddressLength
}
