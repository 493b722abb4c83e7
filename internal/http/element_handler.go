package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
)

// ElementHandler expone el CRUD de elementos rectangulares del lienzo.
type ElementHandler struct {
	logger   *zap.Logger
	elements repository.ElementRepository
}

func NewElementHandler(logger *zap.Logger, elements repository.ElementRepository) *ElementHandler {
	return &ElementHandler{logger: logger, elements: elements}
}

func (h *ElementHandler) Create(c *gin.Context) {
	var req struct {
		PageID          int64   `json:"page_id" binding:"required,gt=0"`
		Name            string  `json:"name"`
		RotationZ       float64 `json:"rotation_z"`
		X               float64 `json:"x"`
		Y               float64 `json:"y"`
		Width           float64 `json:"width" binding:"omitempty,gt=0"`
		Height          float64 `json:"height" binding:"omitempty,gt=0"`
		ZIndex          int     `json:"z_index"`
		BackgroundColor string  `json:"background_color"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	element, err := h.elements.Create(c.Request.Context(), domain.Element{
		PageID:          req.PageID,
		Name:            req.Name,
		RotationZ:       req.RotationZ,
		X:               req.X,
		Y:               req.Y,
		Width:           req.Width,
		Height:          req.Height,
		ZIndex:          req.ZIndex,
		BackgroundColor: req.BackgroundColor,
	})
	if err != nil {
		respondRepoError(c, h.logger, err, "element")
		return
	}
	respondData(c, http.StatusCreated, "element created successfully", element)
}

func (h *ElementHandler) List(c *gin.Context) {
	elements, err := h.elements.ListAll(c.Request.Context())
	if err != nil {
		respondRepoError(c, h.logger, err, "element")
		return
	}
	respondData(c, http.StatusOK, "elements fetched successfully", elements)
}

func (h *ElementHandler) ListByPage(c *gin.Context) {
	pageID, err := parseIDParam(c, "page_id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	elements, err := h.elements.ListByPage(c.Request.Context(), pageID)
	if err != nil {
		respondRepoError(c, h.logger, err, "element")
		return
	}
	respondData(c, http.StatusOK, "elements fetched successfully", elements)
}

func (h *ElementHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	element, err := h.elements.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "element")
		return
	}
	respondData(c, http.StatusOK, "element fetched successfully", element)
}

func (h *ElementHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Name            *string  `json:"name"`
		RotationZ       *float64 `json:"rotation_z"`
		X               *float64 `json:"x"`
		Y               *float64 `json:"y"`
		Width           *float64 `json:"width" binding:"omitempty,gt=0"`
		Height          *float64 `json:"height" binding:"omitempty,gt=0"`
		ZIndex          *int     `json:"z_index"`
		BackgroundColor *string  `json:"background_color"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.RotationZ != nil {
		fields["rotation_z"] = *req.RotationZ
	}
	if req.X != nil {
		fields["x"] = *req.X
	}
	if req.Y != nil {
		fields["y"] = *req.Y
	}
	if req.Width != nil {
		fields["width"] = *req.Width
	}
	if req.Height != nil {
		fields["height"] = *req.Height
	}
	if req.ZIndex != nil {
		fields["z_index"] = *req.ZIndex
	}
	if req.BackgroundColor != nil {
		fields["background_color"] = *req.BackgroundColor
	}

	element, err := h.elements.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondRepoError(c, h.logger, err, "element")
		return
	}
	respondData(c, http.StatusOK, "element updated successfully", element)
}

func (h *ElementHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	element, err := h.elements.Delete(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "element")
		return
	}
	respondData(c, http.StatusOK, "element deleted successfully", element)
}
