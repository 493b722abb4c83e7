package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagecraft/internal/domain"
)

// ImageGroupRepository define el contrato de persistencia para grupos de imágenes.
type ImageGroupRepository interface {
	Create(ctx context.Context, group domain.ImageGroup) (domain.ImageGroup, error)
	List(ctx context.Context, params ListParams) ([]domain.ImageGroup, int64, error)
	GetByID(ctx context.Context, id int64) (domain.ImageGroup, error)
	Update(ctx context.Context, id int64, fields map[string]any) (domain.ImageGroup, error)
	Delete(ctx context.Context, id int64) (domain.ImageGroup, error)
}

var (
	imageGroupUpdateColumns = []string{"name"}
	imageGroupSortColumns   = []string{"id", "name", "created_at", "updated_at"}
)

const imageGroupSelectColumns = `id, name, created_at, updated_at`

// PgImageGroupRepository implementa ImageGroupRepository usando pgxpool.
type PgImageGroupRepository struct {
	pool *pgxpool.Pool
}

func NewPgImageGroupRepository(pool *pgxpool.Pool) *PgImageGroupRepository {
	return &PgImageGroupRepository{pool: pool}
}

func (r *PgImageGroupRepository) Create(ctx context.Context, group domain.ImageGroup) (domain.ImageGroup, error) {
	const query = `
		INSERT INTO image_groups (name)
		VALUES ($1)
		RETURNING ` + imageGroupSelectColumns
	return r.scanGroup(r.pool.QueryRow(ctx, query, group.Name))
}

func (r *PgImageGroupRepository) List(ctx context.Context, params ListParams) ([]domain.ImageGroup, int64, error) {
	params.Normalize(imageGroupSortColumns, "created_at")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM image_groups`).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM image_groups %s LIMIT $1 OFFSET $2`,
		imageGroupSelectColumns, params.OrderClause(),
	)
	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	groups := make([]domain.ImageGroup, 0)
	for rows.Next() {
		g, err := r.scanGroup(rows)
		if err != nil {
			return nil, 0, err
		}
		groups = append(groups, g)
	}
	return groups, total, translateError(rows.Err())
}

func (r *PgImageGroupRepository) GetByID(ctx context.Context, id int64) (domain.ImageGroup, error) {
	query := `SELECT ` + imageGroupSelectColumns + ` FROM image_groups WHERE id = $1`
	return r.scanGroup(r.pool.QueryRow(ctx, query, id))
}

func (r *PgImageGroupRepository) Update(ctx context.Context, id int64, fields map[string]any) (domain.ImageGroup, error) {
	setClause, args, err := BuildUpdate(imageGroupUpdateColumns, fields)
	if err != nil {
		return domain.ImageGroup{}, err
	}
	query := fmt.Sprintf(
		`UPDATE image_groups %s WHERE id = $%d RETURNING %s`,
		setClause, len(args)+1, imageGroupSelectColumns,
	)
	args = append(args, id)
	return r.scanGroup(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgImageGroupRepository) Delete(ctx context.Context, id int64) (domain.ImageGroup, error) {
	query := `DELETE FROM image_groups WHERE id = $1 RETURNING ` + imageGroupSelectColumns
	return r.scanGroup(r.pool.QueryRow(ctx, query, id))
}

func (r *PgImageGroupRepository) scanGroup(row pgx.Row) (domain.ImageGroup, error) {
	var g domain.ImageGroup
	err := row.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return domain.ImageGroup{}, translateError(err)
	}
	return g, nil
}
