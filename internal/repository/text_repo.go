package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagecraft/internal/domain"
)

// TextRepository define el contrato de persistencia para textos de página.
type TextRepository interface {
	Create(ctx context.Context, text domain.Text) (domain.Text, error)
	ListAll(ctx context.Context) ([]domain.Text, error)
	ListByPage(ctx context.Context, pageID int64) ([]domain.Text, error)
	GetByID(ctx context.Context, id int64) (domain.Text, error)
	Update(ctx context.Context, id int64, fields map[string]any) (domain.Text, error)
	Delete(ctx context.Context, id int64) (domain.Text, error)
}

var textUpdateColumns = []string{
	"name", "text", "color", "rotation", "x", "y", "width", "height",
	"font_size", "font_style", "font_alignment", "line_height", "font_family",
	"font_weight", "text_decoration", "text_transform", "text_shadow",
	"text_outline", "text_background", "text_border", "border_radius",
	"border_color", "border_width", "background_color", "z_index",
}

const textSelectColumns = `
	id, page_id, name, text, color, rotation, x, y, width, height,
	font_size, font_style, font_alignment, line_height, font_family, font_weight,
	text_decoration, text_transform, text_shadow, text_outline, text_background,
	text_border, border_radius, border_color, border_width, background_color,
	z_index, created_at, updated_at
`

// PgTextRepository implementa TextRepository usando pgxpool.
type PgTextRepository struct {
	pool *pgxpool.Pool
}

func NewPgTextRepository(pool *pgxpool.Pool) *PgTextRepository {
	return &PgTextRepository{pool: pool}
}

func (r *PgTextRepository) Create(ctx context.Context, text domain.Text) (domain.Text, error) {
	const query = `
		INSERT INTO texts (
			page_id, name, text, color, rotation, x, y, width, height,
			font_size, font_style, font_alignment, line_height, font_family, font_weight,
			text_decoration, text_transform, text_shadow, text_outline, text_background,
			text_border, border_radius, border_color, border_width, background_color, z_index
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING ` + textSelectColumns
	return r.scanText(r.pool.QueryRow(ctx, query,
		text.PageID,
		text.Name,
		text.Text,
		text.Color,
		text.Rotation,
		text.X,
		text.Y,
		text.Width,
		text.Height,
		text.FontSize,
		text.FontStyle,
		text.FontAlignment,
		text.LineHeight,
		text.FontFamily,
		text.FontWeight,
		text.TextDecoration,
		text.TextTransform,
		text.TextShadow,
		text.TextOutline,
		text.TextBackground,
		text.TextBorder,
		text.BorderRadius,
		text.BorderColor,
		text.BorderWidth,
		text.BackgroundColor,
		text.ZIndex,
	))
}

func (r *PgTextRepository) ListAll(ctx context.Context) ([]domain.Text, error) {
	query := `SELECT ` + textSelectColumns + ` FROM texts ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return r.collectTexts(rows)
}

func (r *PgTextRepository) ListByPage(ctx context.Context, pageID int64) ([]domain.Text, error) {
	query := `SELECT ` + textSelectColumns + ` FROM texts WHERE page_id = $1 ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, pageID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return r.collectTexts(rows)
}

func (r *PgTextRepository) GetByID(ctx context.Context, id int64) (domain.Text, error) {
	query := `SELECT ` + textSelectColumns + ` FROM texts WHERE id = $1`
	return r.scanText(r.pool.QueryRow(ctx, query, id))
}

func (r *PgTextRepository) Update(ctx context.Context, id int64, fields map[string]any) (domain.Text, error) {
	setClause, args, err := BuildUpdate(textUpdateColumns, fields)
	if err != nil {
		return domain.Text{}, err
	}
	query := fmt.Sprintf(
		`UPDATE texts %s WHERE id = $%d RETURNING %s`,
		setClause, len(args)+1, textSelectColumns,
	)
	args = append(args, id)
	return r.scanText(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgTextRepository) Delete(ctx context.Context, id int64) (domain.Text, error) {
	query := `DELETE FROM texts WHERE id = $1 RETURNING ` + textSelectColumns
	return r.scanText(r.pool.QueryRow(ctx, query, id))
}

func (r *PgTextRepository) scanText(row pgx.Row) (domain.Text, error) {
	var t domain.Text
	err := row.Scan(
		&t.ID,
		&t.PageID,
		&t.Name,
		&t.Text,
		&t.Color,
		&t.Rotation,
		&t.X,
		&t.Y,
		&t.Width,
		&t.Height,
		&t.FontSize,
		&t.FontStyle,
		&t.FontAlignment,
		&t.LineHeight,
		&t.FontFamily,
		&t.FontWeight,
		&t.TextDecoration,
		&t.TextTransform,
		&t.TextShadow,
		&t.TextOutline,
		&t.TextBackground,
		&t.TextBorder,
		&t.BorderRadius,
		&t.BorderColor,
		&t.BorderWidth,
		&t.BackgroundColor,
		&t.ZIndex,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return domain.Text{}, translateError(err)
	}
	return t, nil
}

func (r *PgTextRepository) collectTexts(rows pgx.Rows) ([]domain.Text, error) {
	texts := make([]domain.Text, 0)
	for rows.Next() {
		t, err := r.scanText(rows)
		if err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	return texts, translateError(rows.Err())
}
