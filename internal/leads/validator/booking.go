package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"foamparty/pkg/logger"
	"foamparty/pkg/model"

	"github.com/go-playground/validator/v10"
)

// emailShapeRegex accepts what a browser type=email input accepts: a local
// part and a domain separated by a single @.
var emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Fields maps each failing JSON field to its message.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, err := range v {
		out[err.Field] = err.Message
	}
	return out
}

// BookingValidator runs the booking form's own required-field checks.
type BookingValidator struct {
	validate *validator.Validate
	location *time.Location
	now      func() time.Time
	logger   *logger.Logger
}

// NewBookingValidator builds a validator that judges "today" in loc. A nil
// now uses the wall clock.
func NewBookingValidator(loc *time.Location, now func() time.Time, log *logger.Logger) *BookingValidator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}

	bv := &BookingValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		location: loc,
		now:      now,
		logger:   log,
	}

	bv.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := bv.validate.RegisterValidation("email_shape", validateEmailShape); err != nil {
		log.Fatal("Failed to register 'email_shape' validator", "error", err)
	}
	if err := bv.validate.RegisterValidation("not_past", bv.validateNotPast); err != nil {
		log.Fatal("Failed to register 'not_past' validator", "error", err)
	}

	return bv
}

func validateEmailShape(fl validator.FieldLevel) bool {
	return emailShapeRegex.MatchString(fl.Field().String())
}

// validateNotPast accepts dates from today onward in the business time zone.
// Unparsable dates are left to the datetime tag.
func (v *BookingValidator) validateNotPast(fl validator.FieldLevel) bool {
	date, err := time.ParseInLocation(model.DateLayout, fl.Field().String(), v.location)
	if err != nil {
		return true
	}
	today := v.now().In(v.location).Format(model.DateLayout)
	return date.Format(model.DateLayout) >= today
}

func (v *BookingValidator) Validate(booking *model.BookingRequest) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "email_shape":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "datetime":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case "not_past":
			message = fmt.Sprintf("%s cannot be in the past", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
