package domain

import "time"

// CanvasImage es una imagen posicionada sobre una página.
type CanvasImage struct {
	ID           int64     `json:"id"`
	PageID       int64     `json:"page_id"`
	Name         string    `json:"name"`
	ImageURL     string    `json:"image_url"`
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	RotationX    float64   `json:"rotation_x"`
	RotationY    float64   `json:"rotation_y"`
	RotationZ    float64   `json:"rotation_z"`
	BorderRadius int       `json:"border_radius"`
	BorderColor  string    `json:"border_color"`
	BorderWidth  int       `json:"border_width"`
	ShadowH      int       `json:"shadow_h"`
	ShadowW      int       `json:"shadow_w"`
	ShadowBlur   int       `json:"shadow_blur"`
	ShadowColor  string    `json:"shadow_color"`
	FlipX        bool      `json:"flip_x"`
	FlipY        bool      `json:"flip_y"`
	ZIndex       int       `json:"z_index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
