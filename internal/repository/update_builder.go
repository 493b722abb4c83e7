package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoFields indica que el mapa de cambios quedó vacío tras filtrar.
var ErrNoFields = errors.New("no fields to update")

// BuildUpdate arma un fragmento "SET col = $1, ..." parametrizado a partir de un
// mapa parcial de cambios. Solo se emiten columnas presentes en allowed, en el
// orden de allowed, de modo que una clave arbitraria del cliente jamás llega al
// SQL. Valores nil se descartan. Siempre cierra con updated_at = now().
// El primer parámetro posicional del fragmento es $1; el llamador continúa la
// numeración con len(args)+1 para su cláusula WHERE.
func BuildUpdate(allowed []string, fields map[string]any) (string, []any, error) {
	parts := make([]string, 0, len(allowed))
	args := make([]any, 0, len(allowed))

	for _, col := range allowed {
		val, ok := fields[col]
		if !ok || val == nil {
			continue
		}
		args = append(args, val)
		parts = append(parts, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if len(args) == 0 {
		return "", nil, ErrNoFields
	}

	parts = append(parts, "updated_at = now()")
	return "SET " + strings.Join(parts, ", "), args, nil
}
