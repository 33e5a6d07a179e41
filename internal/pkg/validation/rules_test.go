package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("parent@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@mail.school.edu"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidRollNumber(t *testing.T) {
	assert.True(t, IsValidRollNumber("ROLL-2026-0001"))
	assert.True(t, IsValidRollNumber("ROLL-2025-9999"))
	assert.False(t, IsValidRollNumber("ROLL-26-0001"))
	assert.False(t, IsValidRollNumber("roll-2026-0001"))
	assert.False(t, IsValidRollNumber("ROLL-2026-001"))
	assert.False(t, IsValidRollNumber(""))
}

func TestIsValidGrade(t *testing.T) {
	assert.True(t, IsValidGrade("1"))
	assert.True(t, IsValidGrade("12"))
	assert.True(t, IsValidGrade("5A"))
	assert.False(t, IsValidGrade("0"))
	assert.False(t, IsValidGrade("13"))
	assert.False(t, IsValidGrade("5a"))
	assert.False(t, IsValidGrade(""))
}
