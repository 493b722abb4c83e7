package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagecraft/internal/domain"
)

// ProjectImageRepository define el contrato para lotes de imágenes de proyecto.
type ProjectImageRepository interface {
	Create(ctx context.Context, set domain.ProjectImageSet) (domain.ProjectImageSet, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectImageSet, error)
	GetByID(ctx context.Context, id int64) (domain.ProjectImageSet, error)
	UpdatePaths(ctx context.Context, id int64, filePaths []string) (domain.ProjectImageSet, error)
	Delete(ctx context.Context, id int64) (domain.ProjectImageSet, error)
}

const projectImageSelectColumns = `id, project_id, user_id, file_paths, created_at, updated_at`

// PgProjectImageRepository implementa ProjectImageRepository usando pgxpool.
type PgProjectImageRepository struct {
	pool *pgxpool.Pool
}

func NewPgProjectImageRepository(pool *pgxpool.Pool) *PgProjectImageRepository {
	return &PgProjectImageRepository{pool: pool}
}

func (r *PgProjectImageRepository) Create(ctx context.Context, set domain.ProjectImageSet) (domain.ProjectImageSet, error) {
	const query = `
		INSERT INTO project_images (project_id, user_id, file_paths)
		VALUES ($1, $2, $3)
		RETURNING ` + projectImageSelectColumns
	return r.scanSet(r.pool.QueryRow(ctx, query, set.ProjectID, set.UserID, set.FilePaths))
}

func (r *PgProjectImageRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectImageSet, error) {
	query := `SELECT ` + projectImageSelectColumns + ` FROM project_images WHERE project_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	sets := make([]domain.ProjectImageSet, 0)
	for rows.Next() {
		s, err := r.scanSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, translateError(rows.Err())
}

func (r *PgProjectImageRepository) GetByID(ctx context.Context, id int64) (domain.ProjectImageSet, error) {
	query := `SELECT ` + projectImageSelectColumns + ` FROM project_images WHERE id = $1`
	return r.scanSet(r.pool.QueryRow(ctx, query, id))
}

func (r *PgProjectImageRepository) UpdatePaths(ctx context.Context, id int64, filePaths []string) (domain.ProjectImageSet, error) {
	const query = `
		UPDATE project_images SET file_paths = $1, updated_at = now()
		WHERE id = $2
		RETURNING ` + projectImageSelectColumns
	return r.scanSet(r.pool.QueryRow(ctx, query, filePaths, id))
}

func (r *PgProjectImageRepository) Delete(ctx context.Context, id int64) (domain.ProjectImageSet, error) {
	query := `DELETE FROM project_images WHERE id = $1 RETURNING ` + projectImageSelectColumns
	return r.scanSet(r.pool.QueryRow(ctx, query, id))
}

func (r *PgProjectImageRepository) scanSet(row pgx.Row) (domain.ProjectImageSet, error) {
	var s domain.ProjectImageSet
	err := row.Scan(&s.ID, &s.ProjectID, &s.UserID, &s.FilePaths, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.ProjectImageSet{}, translateError(err)
	}
	return s, nil
}
