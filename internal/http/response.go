package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagecraft/internal/repository"
)

// Pagination es el bloque de paginación del envelope de listados.
type Pagination struct {
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

func newPagination(total int64, params repository.ListParams) Pagination {
	return Pagination{
		TotalCount:  total,
		TotalPages:  repository.TotalPages(total, params.Limit),
		CurrentPage: params.Page,
		PageSize:    params.Limit,
	}
}

// Todas las respuestas comparten el envelope {error, message, data, pagination}.

func respondData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{"error": false, "message": message, "data": data})
}

func respondList(c *gin.Context, message string, data any, pagination Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"error":      false,
		"message":    message,
		"data":       data,
		"pagination": pagination,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": true, "message": message})
}

func respondViolations(c *gin.Context, violations []FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   true,
		"message": "validation failed",
		"errors":  violations,
	})
}

// listParamsFromQuery lee page/limit/sort_by/sort_order de la query string.
// Los valores inválidos se corrigen después en Normalize, nunca fallan aquí.
func listParamsFromQuery(c *gin.Context) repository.ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return repository.ListParams{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
}

// respondRepoError traduce los sentinelas del repositorio a la taxonomía HTTP.
// Cualquier error no clasificado termina como 500 genérico con detalle solo en logs.
func respondRepoError(c *gin.Context, logger *zap.Logger, err error, entity string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, entity+" not found")
	case errors.Is(err, repository.ErrParentNotFound):
		respondError(c, http.StatusNotFound, "referenced record does not exist")
	case errors.Is(err, repository.ErrDuplicate):
		respondError(c, http.StatusBadRequest, entity+" already exists")
	case errors.Is(err, repository.ErrNoFields):
		respondError(c, http.StatusBadRequest, "no valid fields provided for update")
	default:
		if logger != nil {
			logger.Error(entity+" operation failed", zap.Error(err))
		}
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}
}
