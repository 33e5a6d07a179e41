package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Roll number pattern: ROLL-<year>-<sequence>
	RollNumberPattern = `^ROLL-\d{4}-\d{4}$`

	// Grade labels: 1-12 with an optional single section letter, e.g. "5" or "5A"
	GradePattern = `^([1-9]|1[0-2])[A-Z]?$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	RollNumber *regexp.Regexp
	Grade      *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	RollNumber: regexp.MustCompile(RollNumberPattern),
	Grade:      regexp.MustCompile(GradePattern),
}

// IsValidEmail reports whether the value looks like an email address.
// The empty string is not valid.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidRollNumber reports whether the value matches the roll number scheme.
func IsValidRollNumber(value string) bool {
	return CompiledPatterns.RollNumber.MatchString(value)
}

// IsValidGrade reports whether the value is a recognized grade label.
func IsValidGrade(value string) bool {
	return CompiledPatterns.Grade.MatchString(value)
}
