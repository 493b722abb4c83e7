package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagecraft/internal/domain"
)

// PageRepository define el contrato de persistencia para páginas.
type PageRepository interface {
	Create(ctx context.Context, page domain.Page) (domain.Page, error)
	List(ctx context.Context, params ListParams) ([]domain.Page, int64, error)
	ListByProject(ctx context.Context, projectID int64, params ListParams) ([]domain.Page, int64, error)
	GetByID(ctx context.Context, id int64) (domain.Page, error)
	Update(ctx context.Context, id int64, fields map[string]any) (domain.Page, error)
	Delete(ctx context.Context, id int64) (domain.Page, error)
}

var (
	pageUpdateColumns = []string{
		"width", "height", "background_color", "background_image", "background_image_type",
	}
	pageSortColumns = []string{
		"id", "project_id", "width", "height", "background_color", "created_at", "updated_at",
	}
)

const pageSelectColumns = `
	id, project_id, width, height, background_color, background_image,
	background_image_type, created_at, updated_at
`

// PgPageRepository implementa PageRepository usando pgxpool.
type PgPageRepository struct {
	pool *pgxpool.Pool
}

func NewPgPageRepository(pool *pgxpool.Pool) *PgPageRepository {
	return &PgPageRepository{pool: pool}
}

func (r *PgPageRepository) Create(ctx context.Context, page domain.Page) (domain.Page, error) {
	const query = `
		INSERT INTO pages (project_id, width, height, background_color, background_image, background_image_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + pageSelectColumns
	return r.scanPage(r.pool.QueryRow(ctx, query,
		page.ProjectID,
		page.Width,
		page.Height,
		page.BackgroundColor,
		page.BackgroundImage,
		page.BackgroundImageType,
	))
}

func (r *PgPageRepository) List(ctx context.Context, params ListParams) ([]domain.Page, int64, error) {
	params.Normalize(pageSortColumns, "id")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pages`).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM pages %s LIMIT $1 OFFSET $2`,
		pageSelectColumns, params.OrderClause(),
	)
	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	pages, err := r.collectPages(rows)
	return pages, total, err
}

func (r *PgPageRepository) ListByProject(ctx context.Context, projectID int64, params ListParams) ([]domain.Page, int64, error) {
	params.Normalize(pageSortColumns, "id")

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pages WHERE project_id = $1`, projectID,
	).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM pages WHERE project_id = $1 %s LIMIT $2 OFFSET $3`,
		pageSelectColumns, params.OrderClause(),
	)
	rows, err := r.pool.Query(ctx, query, projectID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	pages, err := r.collectPages(rows)
	return pages, total, err
}

func (r *PgPageRepository) GetByID(ctx context.Context, id int64) (domain.Page, error) {
	query := `SELECT ` + pageSelectColumns + ` FROM pages WHERE id = $1`
	return r.scanPage(r.pool.QueryRow(ctx, query, id))
}

func (r *PgPageRepository) Update(ctx context.Context, id int64, fields map[string]any) (domain.Page, error) {
	setClause, args, err := BuildUpdate(pageUpdateColumns, fields)
	if err != nil {
		return domain.Page{}, err
	}
	query := fmt.Sprintf(
		`UPDATE pages %s WHERE id = $%d RETURNING %s`,
		setClause, len(args)+1, pageSelectColumns,
	)
	args = append(args, id)
	return r.scanPage(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgPageRepository) Delete(ctx context.Context, id int64) (domain.Page, error) {
	query := `DELETE FROM pages WHERE id = $1 RETURNING ` + pageSelectColumns
	return r.scanPage(r.pool.QueryRow(ctx, query, id))
}

func (r *PgPageRepository) scanPage(row pgx.Row) (domain.Page, error) {
	var p domain.Page
	err := row.Scan(
		&p.ID,
		&p.ProjectID,
		&p.Width,
		&p.Height,
		&p.BackgroundColor,
		&p.BackgroundImage,
		&p.BackgroundImageType,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Page{}, translateError(err)
	}
	return p, nil
}

func (r *PgPageRepository) collectPages(rows pgx.Rows) ([]domain.Page, error) {
	pages := make([]domain.Page, 0)
	for rows.Next() {
		p, err := r.scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, translateError(rows.Err())
}
