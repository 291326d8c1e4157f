package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var nonDigitRegex = regexp.MustCompile(`\D`)

// FormatPhone normalizes a Russian phone number to +7 (XXX) XXX-XX-XX.
// A leading 8 is rewritten to 7. Input that does not reduce to eleven digits
// starting with 7 is returned unchanged so the validator can reject it.
func FormatPhone(phone string) string {
	digits := nonDigitRegex.ReplaceAllString(phone, "")
	if strings.HasPrefix(digits, "8") {
		digits = "7" + digits[1:]
	}
	if len(digits) != 11 || !strings.HasPrefix(digits, "7") {
		return phone
	}
	return fmt.Sprintf("+7 (%s) %s-%s-%s",
		digits[1:4], digits[4:7], digits[7:9], digits[9:])
}

// FormatPrice renders a price for display. A nil price reads as unset.
func FormatPrice(price *float64) string {
	if price == nil {
		return "price not set"
	}
	return strconv.FormatFloat(*price, 'f', -1, 64) + " synapses"
}

// FormatCategory maps a category code to its display label.
func FormatCategory(category string) string {
	switch category {
	case "soft":
		return "soft skill"
	case "hard":
		return "hard skill"
	case "other":
		return "other"
	}
	return category
}
