package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// phoneRegex matches Brazilian landline and mobile numbers with area code
	// Formats: (45) 3222-1234, (45) 99999-1234, 45999991234
	phoneRegex = regexp.MustCompile(`^\(?[1-9][0-9]\)?\s?9?[0-9]{4}-?[0-9]{4}$`)
)

// ValidatePhone validates a Brazilian phone number
// This is a common validator used across multiple domains
func ValidatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	return phoneRegex.MatchString(phone)
}
