package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, ValidateEmail("a@b.co"))
		assert.True(t, ValidateEmail("user.name+tag@example.com"))
		assert.True(t, ValidateEmail("  padded@example.com  "), "surrounding whitespace is trimmed")
	})

	t.Run("Invalid", func(t *testing.T) {
		assert.False(t, ValidateEmail("a@b"), "missing TLD")
		assert.False(t, ValidateEmail("a b@c.com"), "space in local part")
		assert.False(t, ValidateEmail("plainstring"))
		assert.False(t, ValidateEmail("@example.com"))
		assert.False(t, ValidateEmail(""))
	})
}

func TestValidatePhone(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, ValidatePhone("+7 (926) 123-45-67"))
	})

	t.Run("Invalid", func(t *testing.T) {
		assert.False(t, ValidatePhone("+79261234567"), "only the normalized shape is accepted")
		assert.False(t, ValidatePhone("89261234567"))
		assert.False(t, ValidatePhone("+7 (926) 123-4567"))
		assert.False(t, ValidatePhone(""))
	})
}

func TestValidateAddress(t *testing.T) {
	assert.True(t, ValidateAddress("123 Main Street"))
	assert.True(t, ValidateAddress("exactly10!"))
	assert.False(t, ValidateAddress("short st"))
	assert.False(t, ValidateAddress("         123      "), "whitespace does not count toward the minimum")
	assert.False(t, ValidateAddress(""))
}
