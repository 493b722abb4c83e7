package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagecraft/internal/domain"
)

// DeviceRepository define el contrato de persistencia para mockups de dispositivo.
type DeviceRepository interface {
	Create(ctx context.Context, device domain.Device) (domain.Device, error)
	ListAll(ctx context.Context) ([]domain.Device, error)
	ListByPage(ctx context.Context, pageID int64) ([]domain.Device, error)
	GetByID(ctx context.Context, id int64) (domain.Device, error)
	Update(ctx context.Context, id int64, fields map[string]any) (domain.Device, error)
	Delete(ctx context.Context, id int64) (domain.Device, error)
}

var deviceUpdateColumns = []string{
	"name", "image_url", "rotation_x", "rotation_y", "rotation_z",
	"skew_x", "skew_y", "shadow_h", "shadow_w", "shadow_blur", "shadow_color",
	"x", "y", "width", "height", "z_index",
}

const deviceSelectColumns = `
	id, page_id, name, image_url, rotation_x, rotation_y, rotation_z,
	skew_x, skew_y, shadow_h, shadow_w, shadow_blur, shadow_color,
	x, y, width, height, z_index, created_at, updated_at
`

// PgDeviceRepository implementa DeviceRepository usando pgxpool.
type PgDeviceRepository struct {
	pool *pgxpool.Pool
}

func NewPgDeviceRepository(pool *pgxpool.Pool) *PgDeviceRepository {
	return &PgDeviceRepository{pool: pool}
}

func (r *PgDeviceRepository) Create(ctx context.Context, device domain.Device) (domain.Device, error) {
	const query = `
		INSERT INTO devices (
			page_id, name, image_url, rotation_x, rotation_y, rotation_z,
			skew_x, skew_y, shadow_h, shadow_w, shadow_blur, shadow_color,
			x, y, width, height, z_index
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + deviceSelectColumns
	return r.scanDevice(r.pool.QueryRow(ctx, query,
		device.PageID,
		device.Name,
		device.ImageURL,
		device.RotationX,
		device.RotationY,
		device.RotationZ,
		device.SkewX,
		device.SkewY,
		device.ShadowH,
		device.ShadowW,
		device.ShadowBlur,
		device.ShadowColor,
		device.X,
		device.Y,
		device.Width,
		device.Height,
		device.ZIndex,
	))
}

func (r *PgDeviceRepository) ListAll(ctx context.Context) ([]domain.Device, error) {
	query := `SELECT ` + deviceSelectColumns + ` FROM devices ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return r.collectDevices(rows)
}

func (r *PgDeviceRepository) ListByPage(ctx context.Context, pageID int64) ([]domain.Device, error) {
	query := `SELECT ` + deviceSelectColumns + ` FROM devices WHERE page_id = $1 ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, pageID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return r.collectDevices(rows)
}

func (r *PgDeviceRepository) GetByID(ctx context.Context, id int64) (domain.Device, error) {
	query := `SELECT ` + deviceSelectColumns + ` FROM devices WHERE id = $1`
	return r.scanDevice(r.pool.QueryRow(ctx, query, id))
}

func (r *PgDeviceRepository) Update(ctx context.Context, id int64, fields map[string]any) (domain.Device, error) {
	setClause, args, err := BuildUpdate(deviceUpdateColumns, fields)
	if err != nil {
		return domain.Device{}, err
	}
	query := fmt.Sprintf(
		`UPDATE devices %s WHERE id = $%d RETURNING %s`,
		setClause, len(args)+1, deviceSelectColumns,
	)
	args = append(args, id)
	return r.scanDevice(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgDeviceRepository) Delete(ctx context.Context, id int64) (domain.Device, error) {
	query := `DELETE FROM devices WHERE id = $1 RETURNING ` + deviceSelectColumns
	return r.scanDevice(r.pool.QueryRow(ctx, query, id))
}

func (r *PgDeviceRepository) scanDevice(row pgx.Row) (domain.Device, error) {
	var d domain.Device
	err := row.Scan(
		&d.ID,
		&d.PageID,
		&d.Name,
		&d.ImageURL,
		&d.RotationX,
		&d.RotationY,
		&d.RotationZ,
		&d.SkewX,
		&d.SkewY,
		&d.ShadowH,
		&d.ShadowW,
		&d.ShadowBlur,
		&d.ShadowColor,
		&d.X,
		&d.Y,
		&d.Width,
		&d.Height,
		&d.ZIndex,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return domain.Device{}, translateError(err)
	}
	return d, nil
}

func (r *PgDeviceRepository) collectDevices(rows pgx.Rows) ([]domain.Device, error) {
	devices := make([]domain.Device, 0)
	for rows.Next() {
		d, err := r.scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, translateError(rows.Err())
}
