package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagecraft/internal/domain"
)

// AssetRepository define el contrato de persistencia para archivos subidos.
type AssetRepository interface {
	Create(ctx context.Context, asset domain.Asset) (domain.Asset, error)
	ListByUser(ctx context.Context, userID, imageType string) ([]domain.Asset, error)
	GetByID(ctx context.Context, id int64) (domain.Asset, error)
	UpdatePath(ctx context.Context, id int64, filePath string) (domain.Asset, error)
	Delete(ctx context.Context, id int64) (domain.Asset, error)
}

const assetSelectColumns = `id, user_id, file_path, image_type, created_at, updated_at`

// PgAssetRepository implementa AssetRepository usando pgxpool.
type PgAssetRepository struct {
	pool *pgxpool.Pool
}

func NewPgAssetRepository(pool *pgxpool.Pool) *PgAssetRepository {
	return &PgAssetRepository{pool: pool}
}

func (r *PgAssetRepository) Create(ctx context.Context, asset domain.Asset) (domain.Asset, error) {
	const query = `
		INSERT INTO assets (user_id, file_path, image_type)
		VALUES ($1, $2, $3)
		RETURNING ` + assetSelectColumns
	return r.scanAsset(r.pool.QueryRow(ctx, query, asset.UserID, asset.FilePath, asset.ImageType))
}

func (r *PgAssetRepository) ListByUser(ctx context.Context, userID, imageType string) ([]domain.Asset, error) {
	query := `SELECT ` + assetSelectColumns + ` FROM assets WHERE user_id = $1`
	args := []any{userID}
	if imageType != "" {
		query += ` AND image_type = $2`
		args = append(args, imageType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	assets := make([]domain.Asset, 0)
	for rows.Next() {
		a, err := r.scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, translateError(rows.Err())
}

func (r *PgAssetRepository) GetByID(ctx context.Context, id int64) (domain.Asset, error) {
	query := `SELECT ` + assetSelectColumns + ` FROM assets WHERE id = $1`
	return r.scanAsset(r.pool.QueryRow(ctx, query, id))
}

func (r *PgAssetRepository) UpdatePath(ctx context.Context, id int64, filePath string) (domain.Asset, error) {
	const query = `
		UPDATE assets SET file_path = $1, updated_at = now()
		WHERE id = $2
		RETURNING ` + assetSelectColumns
	return r.scanAsset(r.pool.QueryRow(ctx, query, filePath, id))
}

func (r *PgAssetRepository) Delete(ctx context.Context, id int64) (domain.Asset, error) {
	query := `DELETE FROM assets WHERE id = $1 RETURNING ` + assetSelectColumns
	return r.scanAsset(r.pool.QueryRow(ctx, query, id))
}

func (r *PgAssetRepository) scanAsset(row pgx.Row) (domain.Asset, error) {
	var a domain.Asset
	err := row.Scan(&a.ID, &a.UserID, &a.FilePath, &a.ImageType, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Asset{}, translateError(err)
	}
	return a, nil
}
