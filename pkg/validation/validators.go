package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Letters (accented included), spaces and common name punctuation
	nameRegex = regexp.MustCompile(`^[\p{L} .'-]+$`)

	// Brazilian display format: (99) 99999-9999 or (99) 9999-9999
	phoneRegex = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("candidate_name", CandidateName)
	_ = v.RegisterValidation("br_phone", BRPhone)
}

// CandidateName validates that a string contains only valid name characters
func CandidateName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// BRPhone validates the phone display pattern
func BRPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}
