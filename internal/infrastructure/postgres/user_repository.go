package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tourbook/tourbook-api/internal/domain/entity"
	"github.com/tourbook/tourbook-api/internal/domain/repository"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, date_of_birth,
	profile_image_url, role, status, is_email_verified,
	email_verification_token, email_verification_expires,
	password_reset_token, password_reset_expires,
	last_login_at, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.DateOfBirth,
		&u.ProfileImageURL, &u.Role, &u.Status, &u.IsEmailVerified,
		&u.EmailVerificationToken, &u.EmailVerificationExpires,
		&u.PasswordResetToken, &u.PasswordResetExpires,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, phone, date_of_birth,
			profile_image_url, role, status,
			email_verification_token, email_verification_expires)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, is_email_verified, created_at, updated_at
	`, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.DateOfBirth,
		u.ProfileImageURL, u.Role, u.Status,
		u.EmailVerificationToken, u.EmailVerificationExpires)

	err := row.Scan(&u.ID, &u.IsEmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetByVerificationToken matches only unexpired tokens.
func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE email_verification_token = $1 AND email_verification_expires > now()
	`, token)
	return scanUser(row)
}

// GetByResetToken matches only unexpired tokens.
func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE password_reset_token = $1 AND password_reset_expires > now()
	`, token)
	return scanUser(row)
}

// Update applies a partial update as a single statement. Concurrent updates
// of the same record serialize on the row; the last writer wins.
func (r *UserRepository) Update(ctx context.Context, id string, upd repository.UserUpdate) (*entity.User, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.FirstName != nil {
		add("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		add("last_name", *upd.LastName)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.DateOfBirth != nil {
		add("date_of_birth", *upd.DateOfBirth)
	}
	if upd.ProfileImageURL != nil {
		add("profile_image_url", *upd.ProfileImageURL)
	}
	if upd.PasswordHash != nil {
		add("password_hash", *upd.PasswordHash)
	}
	if upd.IsEmailVerified != nil {
		add("is_email_verified", *upd.IsEmailVerified)
	}
	if upd.LastLoginAt != nil {
		add("last_login_at", *upd.LastLoginAt)
	}
	if upd.EmailVerificationToken != nil {
		add("email_verification_token", *upd.EmailVerificationToken)
	}
	if upd.EmailVerificationExpires != nil {
		add("email_verification_expires", *upd.EmailVerificationExpires)
	}
	if upd.PasswordResetToken != nil {
		add("password_reset_token", *upd.PasswordResetToken)
	}
	if upd.PasswordResetExpires != nil {
		add("password_reset_expires", *upd.PasswordResetExpires)
	}
	if upd.ClearEmailVerification {
		sets = append(sets, "email_verification_token = NULL", "email_verification_expires = NULL")
	}
	if upd.ClearPasswordReset {
		sets = append(sets, "password_reset_token = NULL", "password_reset_expires = NULL")
	}

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + userColumns
	row := r.pool.QueryRow(ctx, query, args...)
	return scanUser(row)
}

var _ repository.UserRepository = (*UserRepository)(nil)
