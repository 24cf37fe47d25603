package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	templates = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"day":      "{field} must be a date formatted as YYYY-MM-DD",
	}
)

func render(valErr val.FieldError) string {
	errStr := templates[valErr.Tag()]
	if errStr == "" {
		return ""
	}

	errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
	errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

	return errStr
}

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			if errStr := render(valErr); errStr != "" {
				return errStr
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}

func messages(err error) []string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return []string{err.Error()}
	}

	res := make([]string, 0, len(valErrors))
	for _, valErr := range valErrors {
		errStr := render(valErr)
		if errStr == "" {
			errStr = valErr.Error()
		}

		res = append(res, errStr)
	}

	return res
}
