package validator

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/SayedAliMajed/pearlconnect-back-end/pkg/clock"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// timeofday: 12-hour wall-clock string, e.g. "9:30 AM".
	v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := clock.Parse(fl.Field().String())
		return err == nil
	})

	// timezone_iana: loadable IANA zone name, e.g. "America/New_York".
	v.RegisterValidation("timezone_iana", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		if name == "" {
			return false
		}
		_, err := time.LoadLocation(name)
		return err == nil
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param()
			case "max":
				errors[field] = field + " must be at most " + e.Param()
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "timeofday":
				errors[field] = field + " must be a 12-hour time like 9:30 AM"
			case "timezone_iana":
				errors[field] = field + " must be a valid IANA timezone"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
