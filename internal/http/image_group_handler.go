package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
)

// ImageGroupHandler expone el CRUD de grupos de imágenes.
type ImageGroupHandler struct {
	logger *zap.Logger
	groups repository.ImageGroupRepository
}

func NewImageGroupHandler(logger *zap.Logger, groups repository.ImageGroupRepository) *ImageGroupHandler {
	return &ImageGroupHandler{logger: logger, groups: groups}
}

func (h *ImageGroupHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"image_group_name" binding:"required"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	group, err := h.groups.Create(c.Request.Context(), domain.ImageGroup{
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		respondRepoError(c, h.logger, err, "image group")
		return
	}
	respondData(c, http.StatusCreated, "image group created successfully", group)
}

// List soporta ?id= como atajo de consulta puntual además del listado paginado.
func (h *ImageGroupHandler) List(c *gin.Context) {
	if raw := c.Query("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			respondError(c, http.StatusBadRequest, "invalid id")
			return
		}
		group, err := h.groups.GetByID(c.Request.Context(), id)
		if err != nil {
			respondRepoError(c, h.logger, err, "image group")
			return
		}
		respondData(c, http.StatusOK, "image group fetched successfully", group)
		return
	}

	params := listParamsFromQuery(c)
	groups, total, err := h.groups.List(c.Request.Context(), params)
	if err != nil {
		respondRepoError(c, h.logger, err, "image group")
		return
	}
	respondList(c, "image groups fetched successfully", groups, newPagination(total, params))
}

func (h *ImageGroupHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	group, err := h.groups.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "image group")
		return
	}
	respondData(c, http.StatusOK, "image group fetched successfully", group)
}

func (h *ImageGroupHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Name *string `json:"image_group_name"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}

	group, err := h.groups.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondRepoError(c, h.logger, err, "image group")
		return
	}
	respondData(c, http.StatusOK, "image group updated successfully", group)
}

func (h *ImageGroupHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	group, err := h.groups.Delete(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "image group")
		return
	}
	respondData(c, http.StatusOK, "image group deleted successfully", group)
}
