package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
	"pagecraft/internal/storage"
)

// UploadHandler expone la subida de assets individuales de usuario.
type UploadHandler struct {
	logger *zap.Logger
	assets repository.AssetRepository
	store  *storage.LocalStore
}

func NewUploadHandler(logger *zap.Logger, assets repository.AssetRepository, store *storage.LocalStore) *UploadHandler {
	return &UploadHandler{logger: logger, assets: assets, store: store}
}

// UploadImage maneja POST /upload/image con multipart form.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	userID := strings.TrimSpace(c.PostForm("user_id"))
	if userID == "" {
		respondError(c, http.StatusBadRequest, "user_id is required")
		return
	}
	imageType := strings.TrimSpace(c.PostForm("image_type"))

	fh, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}

	path, err := h.store.Save(fh)
	if err != nil {
		h.respondStorageError(c, err)
		return
	}

	asset, err := h.assets.Create(c.Request.Context(), domain.Asset{
		UserID:    userID,
		FilePath:  path,
		ImageType: imageType,
	})
	if err != nil {
		// El registro no quedó; el archivo huérfano se limpia ya mismo.
		h.store.Remove(path)
		respondRepoError(c, h.logger, err, "image")
		return
	}
	respondData(c, http.StatusCreated, "Image uploaded successfully", asset)
}

// ListImages maneja GET /upload/image?user_id=&image_type=.
func (h *UploadHandler) ListImages(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		respondError(c, http.StatusBadRequest, "user_id is required")
		return
	}
	imageType := strings.TrimSpace(c.Query("image_type"))

	assets, err := h.assets.ListByUser(c.Request.Context(), userID, imageType)
	if err != nil {
		respondRepoError(c, h.logger, err, "image")
		return
	}
	respondData(c, http.StatusOK, "images fetched successfully", assets)
}

// ReplaceImage maneja PUT /upload/image/:id: guarda el archivo nuevo, apunta el
// registro a él y recién entonces borra el anterior.
func (h *UploadHandler) ReplaceImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}

	existing, err := h.assets.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "image")
		return
	}

	newPath, err := h.store.Save(fh)
	if err != nil {
		h.respondStorageError(c, err)
		return
	}

	asset, err := h.assets.UpdatePath(c.Request.Context(), id, newPath)
	if err != nil {
		h.store.Remove(newPath)
		respondRepoError(c, h.logger, err, "image")
		return
	}

	h.store.Remove(existing.FilePath)
	respondData(c, http.StatusOK, "Image updated successfully", asset)
}

// DeleteImage maneja DELETE /upload/image/:id.
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	asset, err := h.assets.Delete(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "image")
		return
	}

	h.store.Remove(asset.FilePath)
	respondData(c, http.StatusOK, "Image deleted successfully", asset)
}

func (h *UploadHandler) respondStorageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		respondError(c, http.StatusBadRequest, "unsupported file type, only jpeg, png and gif are allowed")
	case errors.Is(err, storage.ErrFileTooLarge):
		respondError(c, http.StatusBadRequest, "file exceeds the maximum allowed size")
	default:
		h.logger.Error("store file failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
	}
}
