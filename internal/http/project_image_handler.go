package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
	"pagecraft/internal/storage"
)

// ProjectImageHandler expone la subida de lotes de imágenes por proyecto.
type ProjectImageHandler struct {
	logger *zap.Logger
	sets   repository.ProjectImageRepository
	store  *storage.LocalStore
}

func NewProjectImageHandler(logger *zap.Logger, sets repository.ProjectImageRepository, store *storage.LocalStore) *ProjectImageHandler {
	return &ProjectImageHandler{logger: logger, sets: sets, store: store}
}

// Upload maneja POST /project-images/images con multipart "images".
func (h *ProjectImageHandler) Upload(c *gin.Context) {
	projectID, err := strconv.ParseInt(strings.TrimSpace(c.PostForm("project_id")), 10, 64)
	if err != nil || projectID < 1 {
		respondError(c, http.StatusBadRequest, "invalid project_id")
		return
	}
	userID := strings.TrimSpace(c.PostForm("user_id"))
	if userID == "" {
		respondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "multipart form is required")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "no images uploaded")
		return
	}

	paths, err := h.store.SaveAll(files)
	if err != nil {
		h.respondStorageError(c, err)
		return
	}

	set, err := h.sets.Create(c.Request.Context(), domain.ProjectImageSet{
		ProjectID: projectID,
		UserID:    userID,
		FilePaths: paths,
	})
	if err != nil {
		h.store.RemoveAll(paths)
		respondRepoError(c, h.logger, err, "project images")
		return
	}
	respondData(c, http.StatusCreated, "Images uploaded successfully", set)
}

// ListByProject maneja GET /project-images/:project_id.
func (h *ProjectImageHandler) ListByProject(c *gin.Context) {
	projectID, err := parseIDParam(c, "project_id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	sets, err := h.sets.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respondRepoError(c, h.logger, err, "project images")
		return
	}
	if len(sets) == 0 {
		respondError(c, http.StatusNotFound, "no images found for this project")
		return
	}
	respondData(c, http.StatusOK, "images fetched successfully", sets)
}

// Replace maneja PUT /project-images/:id: guarda el lote nuevo, actualiza el
// registro y recién entonces borra los archivos anteriores.
func (h *ProjectImageHandler) Replace(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "multipart form is required")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "no images uploaded")
		return
	}

	existing, err := h.sets.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "project images")
		return
	}

	paths, err := h.store.SaveAll(files)
	if err != nil {
		h.respondStorageError(c, err)
		return
	}

	set, err := h.sets.UpdatePaths(c.Request.Context(), id, paths)
	if err != nil {
		h.store.RemoveAll(paths)
		respondRepoError(c, h.logger, err, "project images")
		return
	}

	h.store.RemoveAll(existing.FilePaths)
	respondData(c, http.StatusOK, "Images updated successfully", set)
}

// Delete maneja DELETE /project-images/:id.
func (h *ProjectImageHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	set, err := h.sets.Delete(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "project images")
		return
	}

	h.store.RemoveAll(set.FilePaths)
	respondData(c, http.StatusOK, "Images deleted successfully", set)
}

func (h *ProjectImageHandler) respondStorageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		respondError(c, http.StatusBadRequest, "unsupported file type, only jpeg, png and gif are allowed")
	case errors.Is(err, storage.ErrFileTooLarge):
		respondError(c, http.StatusBadRequest, "file exceeds the maximum allowed size")
	default:
		h.logger.Error("store files failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}
}
