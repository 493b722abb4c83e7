package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
)

// TextHandler expone el CRUD de bloques de texto del lienzo.
type TextHandler struct {
	logger *zap.Logger
	texts  repository.TextRepository
}

func NewTextHandler(logger *zap.Logger, texts repository.TextRepository) *TextHandler {
	return &TextHandler{logger: logger, texts: texts}
}

func (h *TextHandler) Create(c *gin.Context) {
	var req struct {
		PageID          int64   `json:"page_id" binding:"required,gt=0"`
		Name            string  `json:"name"`
		Text            string  `json:"text"`
		Color           string  `json:"color"`
		Rotation        float64 `json:"rotation"`
		X               float64 `json:"x"`
		Y               float64 `json:"y"`
		Width           float64 `json:"width" binding:"omitempty,gt=0"`
		Height          float64 `json:"height" binding:"omitempty,gt=0"`
		FontSize        int     `json:"font_size" binding:"omitempty,gt=0"`
		FontStyle       string  `json:"font_style"`
		FontAlignment   string  `json:"font_alignment"`
		LineHeight      int     `json:"line_height" binding:"omitempty,gt=0"`
		FontFamily      string  `json:"font_family"`
		FontWeight      string  `json:"font_weight"`
		TextDecoration  string  `json:"text_decoration"`
		TextTransform   string  `json:"text_transform"`
		TextShadow      string  `json:"text_shadow"`
		TextOutline     string  `json:"text_outline"`
		TextBackground  string  `json:"text_background"`
		TextBorder      string  `json:"text_border"`
		BorderRadius    int     `json:"border_radius"`
		BorderColor     string  `json:"border_color"`
		BorderWidth     int     `json:"border_width"`
		BackgroundColor string  `json:"background_color"`
		ZIndex          int     `json:"z_index"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	text := domain.Text{
		PageID:          req.PageID,
		Name:            req.Name,
		Text:            req.Text,
		Color:           req.Color,
		Rotation:        req.Rotation,
		X:               req.X,
		Y:               req.Y,
		Width:           req.Width,
		Height:          req.Height,
		FontSize:        req.FontSize,
		FontStyle:       req.FontStyle,
		FontAlignment:   req.FontAlignment,
		LineHeight:      req.LineHeight,
		FontFamily:      req.FontFamily,
		FontWeight:      req.FontWeight,
		TextDecoration:  req.TextDecoration,
		TextTransform:   req.TextTransform,
		TextShadow:      req.TextShadow,
		TextOutline:     req.TextOutline,
		TextBackground:  req.TextBackground,
		TextBorder:      req.TextBorder,
		BorderRadius:    req.BorderRadius,
		BorderColor:     req.BorderColor,
		BorderWidth:     req.BorderWidth,
		BackgroundColor: req.BackgroundColor,
		ZIndex:          req.ZIndex,
	}
	if text.FontSize == 0 {
		text.FontSize = 16
	}
	if text.LineHeight == 0 {
		text.LineHeight = 1
	}

	created, err := h.texts.Create(c.Request.Context(), text)
	if err != nil {
		respondRepoError(c, h.logger, err, "text")
		return
	}
	respondData(c, http.StatusCreated, "text created successfully", created)
}

func (h *TextHandler) List(c *gin.Context) {
	texts, err := h.texts.ListAll(c.Request.Context())
	if err != nil {
		respondRepoError(c, h.logger, err, "text")
		return
	}
	respondData(c, http.StatusOK, "texts fetched successfully", texts)
}

func (h *TextHandler) ListByPage(c *gin.Context) {
	pageID, err := parseIDParam(c, "page_id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	texts, err := h.texts.ListByPage(c.Request.Context(), pageID)
	if err != nil {
		respondRepoError(c, h.logger, err, "text")
		return
	}
	respondData(c, http.StatusOK, "texts fetched successfully", texts)
}

func (h *TextHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	text, err := h.texts.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "text")
		return
	}
	respondData(c, http.StatusOK, "text fetched successfully", text)
}

func (h *TextHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		Name            *string  `json:"name"`
		Text            *string  `json:"text"`
		Color           *string  `json:"color"`
		Rotation        *float64 `json:"rotation"`
		X               *float64 `json:"x"`
		Y               *float64 `json:"y"`
		Width           *float64 `json:"width" binding:"omitempty,gt=0"`
		Height          *float64 `json:"height" binding:"omitempty,gt=0"`
		FontSize        *int     `json:"font_size" binding:"omitempty,gt=0"`
		FontStyle       *string  `json:"font_style"`
		FontAlignment   *string  `json:"font_alignment"`
		LineHeight      *int     `json:"line_height" binding:"omitempty,gt=0"`
		FontFamily      *string  `json:"font_family"`
		FontWeight      *string  `json:"font_weight"`
		TextDecoration  *string  `json:"text_decoration"`
		TextTransform   *string  `json:"text_transform"`
		TextShadow      *string  `json:"text_shadow"`
		TextOutline     *string  `json:"text_outline"`
		TextBackground  *string  `json:"text_background"`
		TextBorder      *string  `json:"text_border"`
		BorderRadius    *int     `json:"border_radius"`
		BorderColor     *string  `json:"border_color"`
		BorderWidth     *int     `json:"border_width"`
		BackgroundColor *string  `json:"background_color"`
		ZIndex          *int     `json:"z_index"`
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
	setIf("text", deref(req.Text), req.Text != nil)
	setIf("color", deref(req.Color), req.Color != nil)
	setIf("rotation", deref(req.Rotation), req.Rotation != nil)
	setIf("x", deref(req.X), req.X != nil)
	setIf("y", deref(req.Y), req.Y != nil)
	setIf("width", deref(req.Width), req.Width != nil)
	setIf("height", deref(req.Height), req.Height != nil)
	setIf("font_size", deref(req.FontSize), req.FontSize != nil)
	setIf("font_style", deref(req.FontStyle), req.FontStyle != nil)
	setIf("font_alignment", deref(req.FontAlignment), req.FontAlignment != nil)
	setIf("line_height", deref(req.LineHeight), req.LineHeight != nil)
	setIf("font_family", deref(req.FontFamily), req.FontFamily != nil)
	setIf("font_weight", deref(req.FontWeight), req.FontWeight != nil)
	setIf("text_decoration", deref(req.TextDecoration), req.TextDecoration != nil)
	setIf("text_transform", deref(req.TextTransform), req.TextTransform != nil)
	setIf("text_shadow", deref(req.TextShadow), req.TextShadow != nil)
	setIf("text_outline", deref(req.TextOutline), req.TextOutline != nil)
	setIf("text_background", deref(req.TextBackground), req.TextBackground != nil)
	setIf("text_border", deref(req.TextBorder), req.TextBorder != nil)
	setIf("border_radius", deref(req.BorderRadius), req.BorderRadius != nil)
	setIf("border_color", deref(req.BorderColor), req.BorderColor != nil)
	setIf("border_width", deref(req.BorderWidth), req.BorderWidth != nil)
	setIf("background_color", deref(req.BackgroundColor), req.BackgroundColor != nil)
	setIf("z_index", deref(req.ZIndex), req.ZIndex != nil)

	text, err := h.texts.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondRepoError(c, h.logger, err, "text")
		return
	}
	respondData(c, http.StatusOK, "text updated successfully", text)
}

func (h *TextHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	text, err := h.texts.Delete(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, h.logger, err, "text")
		return
	}
	respondData(c, http.StatusOK, "text deleted successfully", text)
}
