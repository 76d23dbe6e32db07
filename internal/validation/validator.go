package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"job-board/internal/domain/posting"
	apperrors "job-board/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Validator checks request structs against their `validate` tags and reports
// violations under the fields' JSON names.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := posting.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("jobtype", func(fl validator.FieldLevel) bool {
		_, ok := posting.ParseJobType(fl.Field().String())
		return ok
	})

	return &Validator{v: v}
}

// Validate returns nil, or a VALIDATION DomainError carrying one violation per
// failed field.
func (v *Validator) Validate(message string, s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Internal("validate request", err)
	}

	fields := make([]apperrors.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldViolation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: describe(fe),
		})
	}
	return apperrors.Validation(message, fields...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "jobtype":
		names := make([]string, 0, 4)
		for _, t := range posting.JobTypes() {
			names = append(names, t.String())
		}
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(names, ", "))
	case "isodate":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD or RFC 3339)", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
