package domain

import "time"

type Device struct {
	ID          int64     `json:"id"`
	PageID      int64     `json:"page_id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url"`
	RotationX   float64   `json:"rotation_x"`
	RotationY   float64   `json:"rotation_y"`
	RotationZ   float64   `json:"rotation_z"`
	SkewX       float64   `json:"skew_x"`
	SkewY       float64   `json:"skew_y"`
	ShadowH     int       `json:"shadow_h"`
	ShadowW     int       `json:"shadow_w"`
	ShadowBlur  int       `json:"shadow_blur"`
	ShadowColor string    `json:"shadow_color"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	ZIndex      int       `json:"z_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
