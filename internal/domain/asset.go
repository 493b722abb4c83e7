package domain

import "time"

// Asset es un archivo subido por un usuario y guardado en disco.
type Asset struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	FilePath  string    `json:"file_path"`
	ImageType string    `json:"image_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectImageSet agrupa las rutas de un lote de imágenes subidas para un proyecto.
type ProjectImageSet struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	UserID    string    `json:"user_id"`
	FilePaths []string  `json:"file_paths"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
