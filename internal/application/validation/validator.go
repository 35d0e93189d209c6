// Package validation envuelve go-playground/validator con nombres JSON y mensajes en español.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
)

var (
	validate = validator.New(validator.WithRequiredStructEnabled())
	clockRe  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)
)

const (
	usernameMin = 3
	usernameMax = 50
)

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// decimal.Decimal se valida como número (min=0, gt=0...).
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	must(validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}))
	must(validate.RegisterValidation("area", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseArea(fl.Field().String())
		return ok
	}))
	must(validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockRe.MatchString(fl.Field().String())
	}))
	must(validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	}))
	// NUMERIC(p,2): como máximo dos decimales
	must(validate.RegisterValidation("decimal2", func(fl validator.FieldLevel) bool {
		if fl.Field().CanFloat() {
			return decimal.NewFromFloat(fl.Field().Float()).Exponent() >= -2
		}
		return false
	}))
	// la longitud se mide sobre el valor recortado, que es el que se guarda
	must(validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
		return n >= usernameMin && n <= usernameMax
	}))
	must(validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseRole(fl.Field().String())
		return ok
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Struct valida las etiquetas `validate` y devuelve un *domain.ValidationError con todas las violaciones.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("validation: %w", err)
	}
	out := &domain.ValidationError{}
	for _, fe := range ves {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "es requerido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("no debe superar %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "email":
		return "email inválido"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "area":
		return "área no válida"
	case "clock":
		return "hora inválida, formato HH:MM"
	case "isodate":
		return "fecha inválida, formato YYYY-MM-DD"
	case "role":
		return "rol debe ser admin o user"
	case "decimal2":
		return "admite como máximo 2 decimales"
	case "username":
		return fmt.Sprintf("debe tener entre %d y %d caracteres", usernameMin, usernameMax)
	default:
		return "valor inválido"
	}
}

// ParseDate acepta YYYY-MM-DD o un timestamp RFC3339 (se conserva solo la fecha).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q", s)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// NormalizeClock recorta HH:MM:SS a HH:MM.
func NormalizeClock(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
