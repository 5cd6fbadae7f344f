package helper

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidateStruct checks a DTO against its validate tags.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
