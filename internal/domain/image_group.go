package domain

import "time"

// ImageGroup agrupa imágenes subidas bajo un nombre.
type ImageGroup struct {
	ID        int64     `json:"id"`
	Name      string    `json:"image_group_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
