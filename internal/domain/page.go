package domain

import "time"

// Page es un lienzo dentro de un proyecto; los objetos visuales cuelgan de ella.
type Page struct {
	ID                  int64     `json:"id"`
	ProjectID           int64     `json:"project_id"`
	Width               int       `json:"width"`
	Height              int       `json:"height"`
	BackgroundColor     string    `json:"background_color"`
	BackgroundImage     string    `json:"background_image"`
	BackgroundImageType string    `json:"background_image_type"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
