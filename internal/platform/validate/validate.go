package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"petshub/internal/platform/apperr"
)

// 1 MiB alcanza de sobra para cualquier body de esta API.
const maxBodyBytes = 1 << 20

var v = newValidator()

func newValidator() *validator.Validate {
	vv := validator.New(validator.WithRequiredStructEnabled())
	vv.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return vv
}

// DecodeJSON decodifica el body rechazando campos desconocidos y corre las reglas `validate`.
func DecodeJSON(r *http.Request, dest any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return apperr.Wrap(apperr.CodeValidation, err, "invalid request body").
			WithDetails(map[string]string{"body": err.Error()})
	}
	return Struct(dest)
}

func Struct(s any) error {
	if err := v.Struct(s); err != nil {
		return format(err)
	}
	return nil
}

// Var valida un valor suelto (p.ej. un path param) con un tag.
func Var(field string, value any, tag string) error {
	if err := v.Var(value, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperr.New(apperr.CodeValidation, "validation failed").
				WithDetails(map[string]string{field: message(verrs[0])})
		}
		return apperr.Wrap(apperr.CodeValidation, err, "validation failed")
	}
	return nil
}

// QueryInt lee un entero opcional del query string acotado a [min,max].
func QueryInt(r *http.Request, key string, def, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.New(apperr.CodeValidation, "query parameter must be numeric").
			WithDetails(map[string]string{key: "must be numeric"})
	}
	if n < min || n > max {
		return 0, apperr.New(apperr.CodeValidation, "query parameter out of range").
			WithDetails(map[string]string{key: fmt.Sprintf("must be between %d and %d", min, max)})
	}
	return n, nil
}

func format(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.CodeValidation, err, "validation failed")
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = message(fe)
	}
	return apperr.New(apperr.CodeValidation, "validation failed").WithDetails(details)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	}
	return "is invalid"
}
