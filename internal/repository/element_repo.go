package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagecraft/internal/domain"
)

// ElementRepository define el contrato de persistencia para elementos de página.
type ElementRepository interface {
	Create(ctx context.Context, element domain.Element) (domain.Element, error)
	ListAll(ctx context.Context) ([]domain.Element, error)
	ListByPage(ctx context.Context, pageID int64) ([]domain.Element, error)
	GetByID(ctx context.Context, id int64) (domain.Element, error)
	Update(ctx context.Context, id int64, fields map[string]any) (domain.Element, error)
	Delete(ctx context.Context, id int64) (domain.Element, error)
}

var elementUpdateColumns = []string{
	"name", "rotation_z", "x", "y", "width", "height", "z_index", "background_color",
}

const elementSelectColumns = `
	id, page_id, name, rotation_z, x, y, width, height, z_index,
	background_color, created_at, updated_at
`

// PgElementRepository implementa ElementRepository usando pgxpool.
type PgElementRepository struct {
	pool *pgxpool.Pool
}

func NewPgElementRepository(pool *pgxpool.Pool) *PgElementRepository {
	return &PgElementRepository{pool: pool}
}

func (r *PgElementRepository) Create(ctx context.Context, element domain.Element) (domain.Element, error) {
	const query = `
		INSERT INTO elements (page_id, name, rotation_z, x, y, width, height, z_index, background_color)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + elementSelectColumns
	return r.scanElement(r.pool.QueryRow(ctx, query,
		element.PageID,
		element.Name,
		element.RotationZ,
		element.X,
		element.Y,
		element.Width,
		element.Height,
		element.ZIndex,
		element.BackgroundColor,
	))
}

func (r *PgElementRepository) ListAll(ctx context.Context) ([]domain.Element, error) {
	query := `SELECT ` + elementSelectColumns + ` FROM elements ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return r.collectElements(rows)
}

func (r *PgElementRepository) ListByPage(ctx context.Context, pageID int64) ([]domain.Element, error) {
	query := `SELECT ` + elementSelectColumns + ` FROM elements WHERE page_id = $1 ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, pageID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return r.collectElements(rows)
}

func (r *PgElementRepository) GetByID(ctx context.Context, id int64) (domain.Element, error) {
	query := `SELECT ` + elementSelectColumns + ` FROM elements WHERE id = $1`
	return r.scanElement(r.pool.QueryRow(ctx, query, id))
}

func (r *PgElementRepository) Update(ctx context.Context, id int64, fields map[string]any) (domain.Element, error) {
	setClause, args, err := BuildUpdate(elementUpdateColumns, fields)
	if err != nil {
		return domain.Element{}, err
	}
	query := fmt.Sprintf(
		`UPDATE elements %s WHERE id = $%d RETURNING %s`,
		setClause, len(args)+1, elementSelectColumns,
	)
	args = append(args, id)
	return r.scanElement(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgElementRepository) Delete(ctx context.Context, id int64) (domain.Element, error) {
	query := `DELETE FROM elements WHERE id = $1 RETURNING ` + elementSelectColumns
	return r.scanElement(r.pool.QueryRow(ctx, query, id))
}

func (r *PgElementRepository) scanElement(row pgx.Row) (domain.Element, error) {
	var e domain.Element
	err := row.Scan(
		&e.ID,
		&e.PageID,
		&e.Name,
		&e.RotationZ,
		&e.X,
		&e.Y,
		&e.Width,
		&e.Height,
		&e.ZIndex,
		&e.BackgroundColor,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return domain.Element{}, translateError(err)
	}
	return e, nil
}

func (r *PgElementRepository) collectElements(rows pgx.Rows) ([]domain.Element, error) {
	elements := make([]domain.Element, 0)
	for rows.Next() {
		e, err := r.scanElement(rows)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	return elements, translateError(rows.Err())
}
