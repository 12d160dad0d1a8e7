package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var templates = map[string]string{
	"required": "{field} is required",
	"email":    "{field} must be a valid email address",
	"uuid":     "{field} must be a valid UUID",
	"oneof":    "{field} must be one of {param}",
	"min":      "{field} must be at least {param}",
	"max":      "{field} must be at most {param}",
	"gte":      "{field} must be at least {param}",
	"lte":      "{field} must be at most {param}",
	"gtfield":  "{field} must be after {param}",
	"gtefield": "{field} must not be before {param}",
	"date":     "{field} must be a date in YYYY-MM-DD format",
	"datetime": "{field} must match the format {param}",
	"decimal":  "{field} must be a non-negative decimal amount",
}

func describe(fe val.FieldError) string {
	field := fe.Field()
	if field == "" {
		field = "value"
	}

	tmpl, ok := templates[fe.Tag()]
	if !ok {
		return field + " is invalid"
	}

	return strings.NewReplacer("{field}", field, "{param}", fe.Param()).Replace(tmpl)
}

// fieldErrors maps each offending field to its message. The first message doubles as the
// failure summary.
func fieldErrors(err error) (string, map[string]string) {
	var errs val.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error(), nil
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = describe(fe)
		}
	}

	return describe(errs[0]), fields
}
