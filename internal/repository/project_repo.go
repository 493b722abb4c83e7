package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagecraft/internal/domain"
)

// ProjectRepository define el contrato de persistencia para proyectos.
type ProjectRepository interface {
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	List(ctx context.Context, params ListParams) ([]domain.Project, int64, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
	GetByID(ctx context.Context, id int64) (domain.Project, error)
	Update(ctx context.Context, id int64, fields map[string]any) (domain.Project, error)
	Delete(ctx context.Context, id int64) (domain.Project, error)
}

var (
	projectUpdateColumns = []string{"title", "pages"}
	projectSortColumns   = []string{"id", "title", "pages", "created_at", "updated_at"}
)

const projectSelectColumns = `id, user_id, title, pages, created_at, updated_at`

// PgProjectRepository implementa ProjectRepository usando pgxpool.
type PgProjectRepository struct {
	pool *pgxpool.Pool
}

func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

func (r *PgProjectRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	const query = `
		INSERT INTO projects (user_id, title, pages)
		VALUES ($1, $2, $3)
		RETURNING ` + projectSelectColumns
	return r.scanProject(r.pool.QueryRow(ctx, query, project.UserID, project.Title, project.Pages))
}

func (r *PgProjectRepository) List(ctx context.Context, params ListParams) ([]domain.Project, int64, error) {
	params.Normalize(projectSortColumns, "id")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM projects %s LIMIT $1 OFFSET $2`,
		projectSelectColumns, params.OrderClause(),
	)
	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	projects, err := r.collectProjects(rows)
	return projects, total, err
}

func (r *PgProjectRepository) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	query := `SELECT ` + projectSelectColumns + ` FROM projects WHERE user_id = $1 ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return r.collectProjects(rows)
}

func (r *PgProjectRepository) GetByID(ctx context.Context, id int64) (domain.Project, error) {
	query := `SELECT ` + projectSelectColumns + ` FROM projects WHERE id = $1`
	return r.scanProject(r.pool.QueryRow(ctx, query, id))
}

func (r *PgProjectRepository) Update(ctx context.Context, id int64, fields map[string]any) (domain.Project, error) {
	setClause, args, err := BuildUpdate(projectUpdateColumns, fields)
	if err != nil {
		return domain.Project{}, err
	}
	query := fmt.Sprintf(
		`UPDATE projects %s WHERE id = $%d RETURNING %s`,
		setClause, len(args)+1, projectSelectColumns,
	)
	args = append(args, id)
	return r.scanProject(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgProjectRepository) Delete(ctx context.Context, id int64) (domain.Project, error) {
	query := `DELETE FROM projects WHERE id = $1 RETURNING ` + projectSelectColumns
	return r.scanProject(r.pool.QueryRow(ctx, query, id))
}

func (r *PgProjectRepository) scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Pages, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Project{}, translateError(err)
	}
	return p, nil
}

func (r *PgProjectRepository) collectProjects(rows pgx.Rows) ([]domain.Project, error) {
	projects := make([]domain.Project, 0)
	for rows.Next() {
		p, err := r.scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, translateError(rows.Err())
}
