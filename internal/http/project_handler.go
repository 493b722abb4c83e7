package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
)

// ProjectHandler expone el CRUD de proyectos.
type ProjectHandler struct {
	logger   *zap.Logger
	projects repository.ProjectRepository
}

func NewProjectHandler(logger *zap.Logger, projects repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{logger: logger, projects: projects}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		Title  string `json:"title" binding:"required"`
		Pages  int    `json:"pages" binding:"omitempty,gte=0"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), domain.Project{
		UserID: strings.TrimSpace(req.UserID),
		Title:  strings.TrimSpace(req.Title),
		Pages:  req.Pages,
	})
	if err != nil {
		respondRepoError(c, h.logger, err, "project")
		return
	}
	respondData(c, http.StatusCreated, "project created successfully", project)
}

func (h *ProjectHandler) List(c *gin.Context) {
	params := listParamsFromQuery(c)
	projects, total, err := h.projects.List(c.Request.Context(), params)
	if err != nil {
		respondRepoError(c, h.logger, err, "project")
		return
	}
	respondList(c, "projects fetched successfully", projects, newPagination(total, params))
}

func (h *ProjectHandler) ListByUser(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		respondError(c, http.StatusBadRequest, "invalid user_id")
		return
	}
	projects, err := h.projects.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondRepoError(c, h.logger, err, "project")
		return
	}
	respondData(c, http.StatusOK, "projects fetched successfully", projects)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "project")
		return
	}
	respondData(c, http.StatusOK, "project fetched successfully", project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Title *string `json:"title"`
		Pages *int    `json:"pages" binding:"omitempty,gte=0"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Pages != nil {
		fields["pages"] = *req.Pages
	}

	project, err := h.projects.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondRepoError(c, h.logger, err, "project")
		return
	}
	respondData(c, http.StatusOK, "project updated successfully", project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	project, err := h.projects.Delete(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "project")
		return
	}
	respondData(c, http.StatusOK, "project deleted successfully", project)
}
