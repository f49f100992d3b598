package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

var (
	materialPattern = regexp.MustCompile(`^[A-Za-z0-9_:.\-]+$`)
	currencyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Report json names so field errors match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("material", validateMaterial)
	_ = v.RegisterValidation("currency", validateCurrency)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateVar validates a single value against a tag expression
func (v *Validator) ValidateVar(value interface{}, tag string) error {
	return v.validate.Var(value, tag)
}

// FormatValidationError formats validation errors into a field to message map
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required", "required_without", "required_without_all", "required_with":
			errs[field] = "This field is required"
		case "excluded_with":
			errs[field] = "Cannot be combined with " + strings.ToLower(e.Param())
		case "material":
			errs[field] = "Invalid material name"
		case "currency":
			errs[field] = "Currency must be lowercase letters, digits or underscores"
		case "gte", "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "lte", "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// validateMaterial accepts game material identifiers such as DIAMOND_SWORD or minecraft:stone
func validateMaterial(fl validator.FieldLevel) bool {
	return materialPattern.MatchString(fl.Field().String())
}

// validateCurrency allows empty values; pair with required when the field is mandatory
func validateCurrency(fl validator.FieldLevel) bool {
	currency := fl.Field().String()
	if currency == "" {
		return true
	}
	return currencyPattern.MatchString(currency)
}
