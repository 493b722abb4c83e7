package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError es una violación individual de validación.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// bindJSON deserializa y valida el body. En caso de violaciones devuelve la
// lista completa, nunca solo la primera: el cliente ve todos sus errores de una.
func bindJSON(c *gin.Context, obj any) ([]FieldError, bool) {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			violations := make([]FieldError, 0, len(verrs))
			for _, fe := range verrs {
				violations = append(violations, FieldError{
					Field:   fieldName(fe),
					Message: violationMessage(fe),
				})
			}
			return violations, false
		}
		return []FieldError{{Field: "body", Message: "invalid JSON body"}}, false
	}
	return nil, true
}

func fieldName(fe validator.FieldError) string {
	// El namespace incluye el tipo de la request; el nombre del campo alcanza.
	return toSnake(fe.Field())
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if", "required_unless":
		return "is required for this signup type"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}

func toSnake(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			prevLower := i > 0 && runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// deref devuelve el valor apuntado, o el cero del tipo ante un nil.
func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// parseIDParam lee un :id numérico de la ruta.
func parseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
