// Package pg implementa repository.Users sobre PostgreSQL (pgxpool).
package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/gymgate/internal/authsvc/repository"
)

const uniqueViolation = "23505"

const userColumns = `id, email, password_hash, first_name, last_name,
	COALESCE(phone, ''), role, COALESCE(gym_id::text, ''), COALESCE(gym_location_id::text, ''),
	is_active, created_at, updated_at`

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Create(ctx context.Context, u *repository.User) error {
	const q = `
		INSERT INTO app_user (email, password_hash, first_name, last_name, phone, role, gym_id, gym_location_id, is_active)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, '')::uuid, NULLIF($8, '')::uuid, $9)
		RETURNING id, created_at, updated_at`
	err := s.pool.QueryRow(ctx, q,
		strings.ToLower(u.Email), u.PasswordHash, u.FirstName, u.LastName,
		u.Phone, u.Role, u.GymID, u.GymLocationID, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUnique(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*repository.User, error) {
	q := `SELECT ` + userColumns + ` FROM app_user WHERE id = $1 AND deleted_at IS NULL`
	return s.scanOne(s.pool.QueryRow(ctx, q, id))
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	q := `SELECT ` + userColumns + ` FROM app_user WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`
	return s.scanOne(s.pool.QueryRow(ctx, q, email))
}

func (s *Store) List(ctx context.Context, f repository.ListFilter) ([]repository.User, int64, error) {
	where := []string{"deleted_at IS NULL"}
	args := []any{}
	if !f.IncludeInactive {
		where = append(where, "is_active = TRUE")
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", n, n, n))
	}
	if f.Role != "" {
		args = append(args, f.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if f.GymID != "" {
		args = append(args, f.GymID)
		where = append(where, fmt.Sprintf("gym_id = $%d::uuid", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM app_user WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf("SELECT %s FROM app_user WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		userColumns, cond, len(args)-1, len(args))
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []repository.User
	for rows.Next() {
		var u repository.User
		if err := scanInto(rows, &u); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

// updateUserSQL escribe todas las columnas mutables del usuario; el
// service hace read-modify-write, así que siempre llegan completas.
const updateUserSQL = `
	UPDATE app_user
	SET email = $2, password_hash = $3, first_name = $4, last_name = $5,
	    phone = NULLIF($6, ''), role = $7, gym_id = NULLIF($8, '')::uuid,
	    gym_location_id = NULLIF($9, '')::uuid, updated_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL
	RETURNING updated_at`

func (s *Store) Update(ctx context.Context, u *repository.User) error {
	err := s.pool.QueryRow(ctx, updateUserSQL,
		u.ID, strings.ToLower(u.Email), u.PasswordHash, u.FirstName, u.LastName,
		u.Phone, u.Role, u.GymID, u.GymLocationID,
	).Scan(&u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		if isUnique(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *Store) SoftDelete(ctx context.Context, id string) error {
	const q = `UPDATE app_user SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	tag, err := s.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) SetActive(ctx context.Context, id string, active bool) (*repository.User, error) {
	q := `UPDATE app_user SET is_active = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + userColumns
	return s.scanOne(s.pool.QueryRow(ctx, q, id, active))
}

func (s *Store) scanOne(row pgx.Row) (*repository.User, error) {
	var u repository.User
	if err := scanInto(row, &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func scanInto(row pgx.Row, u *repository.User) error {
	return row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.Role, &u.GymID, &u.GymLocationID,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
}

func isUnique(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
