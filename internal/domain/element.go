package domain

import "time"

type Element struct {
	ID              int64     `json:"id"`
	PageID          int64     `json:"page_id"`
	Name            string    `json:"name"`
	RotationZ       float64   `json:"rotation_z"`
	X               float64   `json:"x"`
	Y               float64   `json:"y"`
	Width           float64   `json:"width"`
	Height          float64   `json:"height"`
	ZIndex          int       `json:"z_index"`
	BackgroundColor string    `json:"background_color"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
