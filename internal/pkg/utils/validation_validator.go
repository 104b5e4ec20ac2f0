package utils

import (
	"providercard-service/internal/pkg/constvars"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var reNPI = regexp.MustCompile(constvars.RegexNPI)

func init() {
	validate = validator.New()
	validate.RegisterValidation("npi", validateNPI)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateNPI enforces the fixed 10-digit National Provider Identifier format.
func validateNPI(fl validator.FieldLevel) bool {
	return reNPI.MatchString(fl.Field().String())
}

func IsValidNPI(npi string) bool {
	return reNPI.MatchString(npi)
}
