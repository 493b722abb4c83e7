package repository

import "strings"

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ListParams describe paginación y orden para listados.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalize acota página y límite y valida el orden contra la allow-list de la
// entidad. Claves u órdenes desconocidos caen en silencio al valor por defecto,
// nunca en error.
func (p *ListParams) Normalize(allowedSort []string, defaultSort string) {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	sortBy := strings.TrimSpace(p.SortBy)
	valid := false
	for _, col := range allowedSort {
		if sortBy == col {
			valid = true
			break
		}
	}
	if !valid {
		sortBy = defaultSort
	}
	p.SortBy = sortBy

	order := strings.ToUpper(strings.TrimSpace(p.SortOrder))
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	p.SortOrder = order
}

// Offset devuelve el desplazamiento para LIMIT/OFFSET.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause devuelve "ORDER BY col DIR". Solo es seguro tras Normalize.
func (p ListParams) OrderClause() string {
	return "ORDER BY " + p.SortBy + " " + p.SortOrder
}

// TotalPages calcula ceil(totalCount / limit).
func TotalPages(totalCount int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((totalCount + int64(limit) - 1) / int64(limit))
}
