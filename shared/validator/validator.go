package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"stayengine/shared/daterange"
	"stayengine/shared/failure"
	"stayengine/shared/money"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerDateValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := daterange.ParseDay(value)

	return err == nil
}

func registerDecimalValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := money.Parse(value)

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(jsonName)

	must(validate.RegisterValidation("date", registerDateValidation))
	must(validate.RegisterValidation("decimal", registerDecimalValidation))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// jsonName reports fields by the name clients send.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// Validate decodes a JSON body into data and validates it.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		msg, fields := fieldErrors(err)

		return failure.Validation(msg, fields) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		msg, _ := fieldErrors(err)

		return failure.Validation(msg, nil) //nolint:wrapcheck
	}

	return nil
}
