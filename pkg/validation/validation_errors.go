package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the labels shown to API clients.
var FieldLabels = map[string]string{
	"Name":         "Name",
	"Email":        "Email",
	"Phone":        "Phone",
	"JobID":        "Job",
	"Notes":        "Notes",
	"ResumeURL":    "Resume URL",
	"Title":        "Title",
	"Department":   "Department",
	"Requirements": "Requirements",
	"Password":     "Password",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := e.Field()
	if l, ok := FieldLabels[e.Field()]; ok {
		label = l
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, e.Param())
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must not exceed %s characters", label, e.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", label, e.Param())
	case "email":
		return fmt.Sprintf("%s is not a valid email address", label)
	case "candidate_name":
		return fmt.Sprintf("%s may only contain letters, spaces and common punctuation (. ' -)", label)
	case "br_phone":
		return fmt.Sprintf("%s must match the format (99) 99999-9999", label)
	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}
