package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pagecraft/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
	SetResetOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error
	ConsumePasswordReset(ctx context.Context, id, passwordHash string) error
	UpdateProfile(ctx context.Context, id string, fields map[string]any) (domain.User, error)
}

// Columnas de perfil que un cliente puede tocar vía PUT /users/profile/:id.
var userProfileColumns = []string{"user_name", "avatar", "fcm_token"}

const userSelectColumns = `
	id, user_name, email, COALESCE(password, ''), signup_type, fcm_token,
	avatar, COALESCE(reset_otp_hash, ''), reset_otp_expires_at, created_at, updated_at
`

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, user_name, email, password, signup_type, fcm_token, avatar)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.UserName,
		user.Email,
		user.PasswordHash,
		user.SignupType,
		user.FCMToken,
		user.Avatar,
	)
	return translateError(err)
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) UpdateFCMToken(ctx context.Context, id, token string) error {
	const query = `UPDATE users SET fcm_token = $1, updated_at = now() WHERE id = $2`
	tag, err := r.pool.Exec(ctx, query, token, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgUserRepository) SetResetOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error {
	const query = `
		UPDATE users SET reset_otp_hash = $1, reset_otp_expires_at = $2, updated_at = now()
		WHERE id = $3
	`
	tag, err := r.pool.Exec(ctx, query, otpHash, expiresAt, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumePasswordReset cambia la contraseña y limpia el OTP en una sola
// sentencia, de modo que el código no pueda reutilizarse.
func (r *PgUserRepository) ConsumePasswordReset(ctx context.Context, id, passwordHash string) error {
	const query = `
		UPDATE users
		SET password = $1, reset_otp_hash = NULL, reset_otp_expires_at = NULL, updated_at = now()
		WHERE id = $2
	`
	tag, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgUserRepository) UpdateProfile(ctx context.Context, id string, fields map[string]any) (domain.User, error) {
	setClause, args, err := BuildUpdate(userProfileColumns, fields)
	if err != nil {
		return domain.User{}, err
	}
	query := fmt.Sprintf(
		`UPDATE users %s WHERE id = $%d RETURNING %s`,
		setClause, len(args)+1, userSelectColumns,
	)
	args = append(args, id)
	return r.scanUser(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgUserRepository) scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.UserName,
		&u.Email,
		&u.PasswordHash,
		&u.SignupType,
		&u.FCMToken,
		&u.Avatar,
		&u.ResetOTPHash,
		&u.ResetOTPExpiresAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, translateError(err)
	}
	return u, nil
}
