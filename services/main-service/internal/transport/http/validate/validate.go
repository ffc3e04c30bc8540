package validate

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/baechuer/explore-with-me/services/main-service/internal/domain"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// report json field names
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = val.RegisterValidation("notblank", validators.NotBlank)
	return val
}

// DecodeJSON reads the request body into dst. Malformed bodies are validation errors.
func DecodeJSON(r *http.Request, dst any) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return domain.ErrValidationMeta("malformed request body", map[string]string{
			"body": err.Error(),
		})
	}
	return nil
}

// Struct runs the validate tags of dst.
func Struct(dst any) error {
	err := v.Struct(dst)
	if err == nil {
		return nil
	}
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ErrValidation(err.Error())
	}
	meta := make(map[string]string, len(ves))
	for _, fe := range ves {
		meta[fe.Field()] = formatFieldError(fe)
	}
	return domain.ErrValidationMeta("invalid request", meta)
}

// Body decodes and validates in one go.
func Body(r *http.Request, dst any) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}
	return Struct(dst)
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("length must be at least %s", fe.Param())
		}
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "max":
		return fmt.Sprintf("length must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

// PathID reads a positive int64 chi URL parameter.
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidationMeta("invalid path param", map[string]string{
			name: "must be a positive integer",
		})
	}
	return id, nil
}
