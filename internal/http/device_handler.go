package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
)

// DeviceHandler expone el CRUD de mockups de dispositivos sobre una página.
type DeviceHandler struct {
	logger  *zap.Logger
	devices repository.DeviceRepository
}

func NewDeviceHandler(logger *zap.Logger, devices repository.DeviceRepository) *DeviceHandler {
	return &DeviceHandler{logger: logger, devices: devices}
}

func (h *DeviceHandler) Create(c *gin.Context) {
	var req struct {
		PageID      int64   `json:"page_id" binding:"required,gt=0"`
		Name        string  `json:"name"`
		ImageURL    string  `json:"image_url" binding:"required"`
		RotationX   float64 `json:"rotation_x"`
		RotationY   float64 `json:"rotation_y"`
		RotationZ   float64 `json:"rotation_z"`
		SkewX       float64 `json:"skew_x"`
		SkewY       float64 `json:"skew_y"`
		ShadowH     int     `json:"shadow_h"`
		ShadowW     int     `json:"shadow_w"`
		ShadowBlur  int     `json:"shadow_blur"`
		ShadowColor string  `json:"shadow_color"`
		X           float64 `json:"x"`
		Y           float64 `json:"y"`
		Width       float64 `json:"width" binding:"omitempty,gt=0"`
		Height      float64 `json:"height" binding:"omitempty,gt=0"`
		ZIndex      int     `json:"z_index"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	device, err := h.devices.Create(c.Request.Context(), domain.Device{
		PageID:      req.PageID,
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		RotationX:   req.RotationX,
		RotationY:   req.RotationY,
		RotationZ:   req.RotationZ,
		SkewX:       req.SkewX,
		SkewY:       req.SkewY,
		ShadowH:     req.ShadowH,
		ShadowW:     req.ShadowW,
		ShadowBlur:  req.ShadowBlur,
		ShadowColor: req.ShadowColor,
		X:           req.X,
		Y:           req.Y,
		Width:       req.Width,
		Height:      req.Height,
		ZIndex:      req.ZIndex,
	})
	if err != nil {
		respondRepoError(c, h.logger, err, "device")
		return
	}
	respondData(c, http.StatusCreated, "device created successfully", device)
}

func (h *DeviceHandler) List(c *gin.Context) {
	devices, err := h.devices.ListAll(c.Request.Context())
	if err != nil {
		respondRepoError(c, h.logger, err, "device")
		return
	}
	respondData(c, http.StatusOK, "devices fetched successfully", devices)
}

func (h *DeviceHandler) ListByPage(c *gin.Context) {
	pageID, err := parseIDParam(c, "page_id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	devices, err := h.devices.ListByPage(c.Request.Context(), pageID)
	if err != nil {
		respondRepoError(c, h.logger, err, "device")
		return
	}
	respondData(c, http.StatusOK, "devices fetched successfully", devices)
}

func (h *DeviceHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	device, err := h.devices.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "device")
		return
	}
	respondData(c, http.StatusOK, "device fetched successfully", device)
}

func (h *DeviceHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Name        *string  `json:"name"`
		ImageURL    *string  `json:"image_url"`
		RotationX   *float64 `json:"rotation_x"`
		RotationY   *float64 `json:"rotation_y"`
		RotationZ   *float64 `json:"rotation_z"`
		SkewX       *float64 `json:"skew_x"`
		SkewY       *float64 `json:"skew_y"`
		ShadowH     *int     `json:"shadow_h"`
		ShadowW     *int     `json:"shadow_w"`
		ShadowBlur  *int     `json:"shadow_blur"`
		ShadowColor *string  `json:"shadow_color"`
		X           *float64 `json:"x"`
		Y           *float64 `json:"y"`
		Width       *float64 `json:"width" binding:"omitempty,gt=0"`
		Height      *float64 `json:"height" binding:"omitempty,gt=0"`
		ZIndex      *int     `json:"z_index"`
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
	setIf("rotation_x", deref(req.RotationX), req.RotationX != nil)
	setIf("rotation_y", deref(req.RotationY), req.RotationY != nil)
	setIf("rotation_z", deref(req.RotationZ), req.RotationZ != nil)
	setIf("skew_x", deref(req.SkewX), req.SkewX != nil)
	setIf("skew_y", deref(req.SkewY), req.SkewY != nil)
	setIf("shadow_h", deref(req.ShadowH), req.ShadowH != nil)
	setIf("shadow_w", deref(req.ShadowW), req.ShadowW != nil)
	setIf("shadow_blur", deref(req.ShadowBlur), req.ShadowBlur != nil)
	setIf("shadow_color", deref(req.ShadowColor), req.ShadowColor != nil)
	setIf("x", deref(req.X), req.X != nil)
	setIf("y", deref(req.Y), req.Y != nil)
	setIf("width", deref(req.Width), req.Width != nil)
	setIf("height", deref(req.Height), req.Height != nil)
	setIf("z_index", deref(req.ZIndex), req.ZIndex != nil)

	device, err := h.devices.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondRepoError(c, h.logger, err, "device")
		return
	}
	respondData(c, http.StatusOK, "device updated successfully", device)
}

func (h *DeviceHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	device, err := h.devices.Delete(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "device")
		return
	}
	respondData(c, http.StatusOK, "device deleted successfully", device)
}
