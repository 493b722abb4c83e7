package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
)

// CanvasImageHandler expone el CRUD de imágenes posicionadas sobre una página.
type CanvasImageHandler struct {
	logger *zap.Logger
	images repository.CanvasImageRepository
}

func NewCanvasImageHandler(logger *zap.Logger, images repository.CanvasImageRepository) *CanvasImageHandler {
	return &CanvasImageHandler{logger: logger, images: images}
}

func (h *CanvasImageHandler) Create(c *gin.Context) {
	var req struct {
		PageID       int64   `json:"page_id" binding:"required,gt=0"`
		Name         string  `json:"name"`
		ImageURL     string  `json:"image_url" binding:"required"`
		X            float64 `json:"x"`
		Y            float64 `json:"y"`
		Width        float64 `json:"width" binding:"omitempty,gt=0"`
		Height       float64 `json:"height" binding:"omitempty,gt=0"`
		RotationX    float64 `json:"rotation_x"`
		RotationY    float64 `json:"rotation_y"`
		RotationZ    float64 `json:"rotation_z"`
		BorderRadius int     `json:"border_radius"`
		BorderColor  string  `json:"border_color"`
		BorderWidth  int     `json:"border_width"`
		ShadowH      int     `json:"shadow_h"`
		ShadowW      int     `json:"shadow_w"`
		ShadowBlur   int     `json:"shadow_blur"`
		ShadowColor  string  `json:"shadow_color"`
		FlipX        bool    `json:"flip_x"`
		FlipY        bool    `json:"flip_y"`
		ZIndex       int     `json:"z_index"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	image, err := h.images.Create(c.Request.Context(), domain.CanvasImage{
		PageID:       req.PageID,
		Name:         req.Name,
		ImageURL:     req.ImageURL,
		X:            req.X,
		Y:            req.Y,
		Width:        req.Width,
		Height:       req.Height,
		RotationX:    req.RotationX,
		RotationY:    req.RotationY,
		RotationZ:    req.RotationZ,
		BorderRadius: req.BorderRadius,
		BorderColor:  req.BorderColor,
		BorderWidth:  req.BorderWidth,
		ShadowH:      req.ShadowH,
		ShadowW:      req.ShadowW,
		ShadowBlur:   req.ShadowBlur,
		ShadowColor:  req.ShadowColor,
		FlipX:        req.FlipX,
		FlipY:        req.FlipY,
		ZIndex:       req.ZIndex,
	})
	if err != nil {
		respondRepoError(c, h.logger, err, "image")
		return
	}
	respondData(c, http.StatusCreated, "image created successfully", image)
}

func (h *CanvasImageHandler) List(c *gin.Context) {
	images, err := h.images.ListAll(c.Request.Context())
	if err != nil {
		respondRepoError(c, h.logger, err, "image")
		return
	}
	respondData(c, http.StatusOK, "images fetched successfully", images)
}

func (h *CanvasImageHandler) ListByPage(c *gin.Context) {
	pageID, err := parseIDParam(c, "page_id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	images, err := h.images.ListByPage(c.Request.Context(), pageID)
	if err != nil {
		respondRepoError(c, h.logger, err, "image")
		return
	}
	respondData(c, http.StatusOK, "images fetched successfully", images)
}

func (h *CanvasImageHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	image, err := h.images.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "image")
		return
	}
	respondData(c, http.StatusOK, "image fetched successfully", image)
}

func (h *CanvasImageHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Name         *string  `json:"name"`
		ImageURL     *string  `json:"image_url"`
		X            *float64 `json:"x"`
		Y            *float64 `json:"y"`
		Width        *float64 `json:"width" binding:"omitempty,gt=0"`
		Height       *float64 `json:"height" binding:"omitempty,gt=0"`
		RotationX    *float64 `json:"rotation_x"`
		RotationY    *float64 `json:"rotation_y"`
		RotationZ    *float64 `json:"rotation_z"`
		BorderRadius *int     `json:"border_radius"`
		BorderColor  *string  `json:"border_color"`
		BorderWidth  *int     `json:"border_width"`
		ShadowH      *int     `json:"shadow_h"`
		ShadowW      *int     `json:"shadow_w"`
		ShadowBlur   *int     `json:"shadow_blur"`
		ShadowColor  *string  `json:"shadow_color"`
		FlipX        *bool    `json:"flip_x"`
		FlipY        *bool    `json:"flip_y"`
		ZIndex       *int     `json:"z_index"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	fields := map[string]any{}
	setIf := func(key string, val any, present bool) {
		if present {
			fields[key] = val
		}
	}
	setIf("name", deref(req.Name), req.Name != nil)
	setIf("image_url", deref(req.ImageURL), req.ImageURL != nil)
	setIf("x", deref(req.X), req.X != nil)
	setIf("y", deref(req.Y), req.Y != nil)
	setIf("width", deref(req.Width), req.Width != nil)
	setIf("height", deref(req.Height), req.Height != nil)
	setIf("rotation_x", deref(req.RotationX), req.RotationX != nil)
	setIf("rotation_y", deref(req.RotationY), req.RotationY != nil)
	setIf("rotation_z", deref(req.RotationZ), req.RotationZ != nil)
	setIf("border_radius", deref(req.BorderRadius), req.BorderRadius != nil)
	setIf("border_color", deref(req.BorderColor), req.BorderColor != nil)
	setIf("border_width", deref(req.BorderWidth), req.BorderWidth != nil)
	setIf("shadow_h", deref(req.ShadowH), req.ShadowH != nil)
	setIf("shadow_w", deref(req.ShadowW), req.ShadowW != nil)
	setIf("shadow_blur", deref(req.ShadowBlur), req.ShadowBlur != nil)
	setIf("shadow_color", deref(req.ShadowColor), req.ShadowColor != nil)
	setIf("flip_x", deref(req.FlipX), req.FlipX != nil)
	setIf("flip_y", deref(req.FlipY), req.FlipY != nil)
	setIf("z_index", deref(req.ZIndex), req.ZIndex != nil)

	image, err := h.images.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondRepoError(c, h.logger, err, "image")
		return
	}
	respondData(c, http.StatusOK, "image updated successfully", image)
}

func (h *CanvasImageHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	image, err := h.images.Delete(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "image")
		return
	}
	respondData(c, http.StatusOK, "image deleted successfully", image)
}
