package domain

import "time"

type Text struct {
	ID              int64     `json:"id"`
	PageID          int64     `json:"page_id"`
	Name            string    `json:"name"`
	Text            string    `json:"text"`
	Color           string    `json:"color"`
	Rotation        float64   `json:"rotation"`
	X               float64   `json:"x"`
	Y               float64   `json:"y"`
	Width           float64   `json:"width"`
	Height          float64   `json:"height"`
	FontSize        int       `json:"font_size"`
	FontStyle       string    `json:"font_style"`
	FontAlignment   string    `json:"font_alignment"`
	LineHeight      int       `json:"line_height"`
	FontFamily      string    `json:"font_family"`
	FontWeight      string    `json:"font_weight"`
	TextDecoration  string    `json:"text_decoration"`
	TextTransform   string    `json:"text_transform"`
	TextShadow      string    `json:"text_shadow"`
	TextOutline     string    `json:"text_outline"`
	TextBackground  string    `json:"text_background"`
	TextBorder      string    `json:"text_border"`
	BorderRadius    int       `json:"border_radius"`
	BorderColor     string    `json:"border_color"`
	BorderWidth     int       `json:"border_width"`
	BackgroundColor string    `json:"background_color"`
	ZIndex          int       `json:"z_index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
