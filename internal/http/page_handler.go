package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
)

// PageHandler expone el CRUD de páginas de un proyecto.
type PageHandler struct {
	logger *zap.Logger
	pages  repository.PageRepository
}

func NewPageHandler(logger *zap.Logger, pages repository.PageRepository) *PageHandler {
	return &PageHandler{logger: logger, pages: pages}
}

func (h *PageHandler) Create(c *gin.Context) {
	var req struct {
		ProjectID           int64  `json:"project_id" binding:"required,gt=0"`
		Width               int    `json:"width" binding:"omitempty,gt=0"`
		Height              int    `json:"height" binding:"omitempty,gt=0"`
		BackgroundColor     string `json:"background_color"`
		BackgroundImage     string `json:"background_image"`
		BackgroundImageType string `json:"background_image_type"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	page := domain.Page{
		ProjectID:           req.ProjectID,
		Width:               req.Width,
		Height:              req.Height,
		BackgroundColor:     req.BackgroundColor,
		BackgroundImage:     req.BackgroundImage,
		BackgroundImageType: req.BackgroundImageType,
	}
	if page.Width == 0 {
		page.Width = 1920
	}
	if page.Height == 0 {
		page.Height = 1080
	}
	if page.BackgroundColor == "" {
		page.BackgroundColor = "#FFFFFF"
	}

	created, err := h.pages.Create(c.Request.Context(), page)
	if err != nil {
		respondRepoError(c, h.logger, err, "page")
		return
	}
	respondData(c, http.StatusCreated, "page created successfully", created)
}

func (h *PageHandler) List(c *gin.Context) {
	params := listParamsFromQuery(c)
	pages, total, err := h.pages.List(c.Request.Context(), params)
	if err != nil {
		respondRepoError(c, h.logger, err, "page")
		return
	}
	respondList(c, "pages fetched successfully", pages, newPagination(total, params))
}

// ListByProject maneja GET /pages/project?project_id=N con paginación.
func (h *PageHandler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Query("project_id"), 10, 64)
	if err != nil || projectID < 1 {
		respondError(c, http.StatusBadRequest, "invalid project_id")
		return
	}
	params := listParamsFromQuery(c)
	pages, total, err := h.pages.ListByProject(c.Request.Context(), projectID, params)
	if err != nil {
		respondRepoError(c, h.logger, err, "page")
		return
	}
	respondList(c, "pages fetched successfully", pages, newPagination(total, params))
}

func (h *PageHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.pages.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "page")
		return
	}
	respondData(c, http.StatusOK, "page fetched successfully", page)
}

func (h *PageHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Width               *int    `json:"width" binding:"omitempty,gt=0"`
		Height              *int    `json:"height" binding:"omitempty,gt=0"`
		BackgroundColor     *string `json:"background_color"`
		BackgroundImage     *string `json:"background_image"`
		BackgroundImageType *string `json:"background_image_type"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	fields := map[string]any{}
	if req.Width != nil {
		fields["width"] = *req.Width
	}
	if req.Height != nil {
		fields["height"] = *req.Height
	}
	if req.BackgroundColor != nil {
		fields["background_color"] = *req.BackgroundColor
	}
	if req.BackgroundImage != nil {
		fields["background_image"] = *req.BackgroundImage
	}
	if req.BackgroundImageType != nil {
		fields["background_image_type"] = *req.BackgroundImageType
	}

	page, err := h.pages.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondRepoError(c, h.logger, err, "page")
		return
	}
	respondData(c, http.StatusOK, "page updated successfully", page)
}

func (h *PageHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.pages.Delete(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "page")
		return
	}
	respondData(c, http.StatusOK, "page deleted successfully", page)
}
