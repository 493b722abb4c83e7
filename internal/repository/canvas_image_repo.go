package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagecraft/internal/domain"
)

// CanvasImageRepository define el contrato de persistencia para imágenes de página.
type CanvasImageRepository interface {
	Create(ctx context.Context, image domain.CanvasImage) (domain.CanvasImage, error)
	ListAll(ctx context.Context) ([]domain.CanvasImage, error)
	ListByPage(ctx context.Context, pageID int64) ([]domain.CanvasImage, error)
	GetByID(ctx context.Context, id int64) (domain.CanvasImage, error)
	Update(ctx context.Context, id int64, fields map[string]any) (domain.CanvasImage, error)
	Delete(ctx context.Context, id int64) (domain.CanvasImage, error)
}

var canvasImageUpdateColumns = []string{
	"name", "image_url", "x", "y", "width", "height",
	"rotation_x", "rotation_y", "rotation_z", "border_radius", "border_color",
	"border_width", "shadow_h", "shadow_w", "shadow_blur", "shadow_color",
	"flip_x", "flip_y", "z_index",
}

const canvasImageSelectColumns = `
	id, page_id, name, image_url, x, y, width, height,
	rotation_x, rotation_y, rotation_z, border_radius, border_color, border_width,
	shadow_h, shadow_w, shadow_blur, shadow_color, flip_x, flip_y, z_index,
	created_at, updated_at
`

// PgCanvasImageRepository implementa CanvasImageRepository usando pgxpool.
type PgCanvasImageRepository struct {
	pool *pgxpool.Pool
}

func NewPgCanvasImageRepository(pool *pgxpool.Pool) *PgCanvasImageRepository {
	return &PgCanvasImageRepository{pool: pool}
}

func (r *PgCanvasImageRepository) Create(ctx context.Context, image domain.CanvasImage) (domain.CanvasImage, error) {
	const query = `
		INSERT INTO canvas_images (
			page_id, name, image_url, x, y, width, height,
			rotation_x, rotation_y, rotation_z, border_radius, border_color, border_width,
			shadow_h, shadow_w, shadow_blur, shadow_color, flip_x, flip_y, z_index
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING ` + canvasImageSelectColumns
	return r.scanImage(r.pool.QueryRow(ctx, query,
		image.PageID,
		image.Name,
		image.ImageURL,
		image.X,
		image.Y,
		image.Width,
		image.Height,
		image.RotationX,
		image.RotationY,
		image.RotationZ,
		image.BorderRadius,
		image.BorderColor,
		image.BorderWidth,
		image.ShadowH,
		image.ShadowW,
		image.ShadowBlur,
		image.ShadowColor,
		image.FlipX,
		image.FlipY,
		image.ZIndex,
	))
}

func (r *PgCanvasImageRepository) ListAll(ctx context.Context) ([]domain.CanvasImage, error) {
	query := `SELECT ` + canvasImageSelectColumns + ` FROM canvas_images ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return r.collectImages(rows)
}

func (r *PgCanvasImageRepository) ListByPage(ctx context.Context, pageID int64) ([]domain.CanvasImage, error) {
	query := `SELECT ` + canvasImageSelectColumns + ` FROM canvas_images WHERE page_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, pageID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return r.collectImages(rows)
}

func (r *PgCanvasImageRepository) GetByID(ctx context.Context, id int64) (domain.CanvasImage, error) {
	query := `SELECT ` + canvasImageSelectColumns + ` FROM canvas_images WHERE id = $1`
	return r.scanImage(r.pool.QueryRow(ctx, query, id))
}

func (r *PgCanvasImageRepository) Update(ctx context.Context, id int64, fields map[string]any) (domain.CanvasImage, error) {
	setClause, args, err := BuildUpdate(canvasImageUpdateColumns, fields)
	if err != nil {
		return domain.CanvasImage{}, err
	}
	query := fmt.Sprintf(
		`UPDATE canvas_images %s WHERE id = $%d RETURNING %s`,
		setClause, len(args)+1, canvasImageSelectColumns,
	)
	args = append(args, id)
	return r.scanImage(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgCanvasImageRepository) Delete(ctx context.Context, id int64) (domain.CanvasImage, error) {
	query := `DELETE FROM canvas_images WHERE id = $1 RETURNING ` + canvasImageSelectColumns
	return r.scanImage(r.pool.QueryRow(ctx, query, id))
}

func (r *PgCanvasImageRepository) scanImage(row pgx.Row) (domain.CanvasImage, error) {
	var img domain.CanvasImage
	err := row.Scan(
		&img.ID,
		&img.PageID,
		&img.Name,
		&img.ImageURL,
		&img.X,
		&img.Y,
		&img.Width,
		&img.Height,
		&img.RotationX,
		&img.RotationY,
		&img.RotationZ,
		&img.BorderRadius,
		&img.BorderColor,
		&img.BorderWidth,
		&img.ShadowH,
		&img.ShadowW,
		&img.ShadowBlur,
		&img.ShadowColor,
		&img.FlipX,
		&img.FlipY,
		&img.ZIndex,
		&img.CreatedAt,
		&img.UpdatedAt,
	)
	if err != nil {
		return domain.CanvasImage{}, translateError(err)
	}
	return img, nil
}

func (r *PgCanvasImageRepository) collectImages(rows pgx.Rows) ([]domain.CanvasImage, error) {
	images := make([]domain.CanvasImage, 0)
	for rows.Next() {
		img, err := r.scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, translateError(rows.Err())
}
