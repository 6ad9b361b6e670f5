// Package pg implementa repository.Gyms sobre PostgreSQL (pgxpool).
package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/gymgate/internal/gymsvc/repository"
)

const uniqueViolation = "23505"

const gymColumns = `id, name, COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(address, ''), COALESCE(city, ''), COALESCE(country, ''),
	is_active, created_at, updated_at`

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Create(ctx context.Context, g *repository.Gym) error {
	const q = `
		INSERT INTO gym (name, email, phone, address, city, country, is_active)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)
		RETURNING id, created_at, updated_at`
	err := s.pool.QueryRow(ctx, q,
		g.Name, g.Email, g.Phone, g.Address, g.City, g.Country, g.IsActive,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if isUnique(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert gym: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*repository.Gym, error) {
	q := `SELECT ` + gymColumns + ` FROM gym WHERE id = $1 AND deleted_at IS NULL`
	var g repository.Gym
	if err := scanInto(s.pool.QueryRow(ctx, q, id), &g); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (s *Store) List(ctx context.Context, f repository.ListFilter) ([]repository.Gym, int64, error) {
	where := []string{"deleted_at IS NULL"}
	args := []any{}
	if !f.IncludeInactive {
		where = append(where, "is_active = TRUE")
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR city ILIKE $%d)", n, n))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM gym WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count gyms: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf("SELECT %s FROM gym WHERE %s ORDER BY name LIMIT $%d OFFSET $%d",
		gymColumns, cond, len(args)-1, len(args))
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list gyms: %w", err)
	}
	defer rows.Close()

	var out []repository.Gym
	for rows.Next() {
		var g repository.Gym
		if err := scanInto(rows, &g); err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	return out, total, rows.Err()
}

func (s *Store) Update(ctx context.Context, g *repository.Gym) error {
	const q = `
		UPDATE gym
		SET name = $2, email = NULLIF($3, ''), phone = NULLIF($4, ''),
		    address = NULLIF($5, ''), city = NULLIF($6, ''), country = NULLIF($7, ''),
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`
	err := s.pool.QueryRow(ctx, q,
		g.ID, g.Name, g.Email, g.Phone, g.Address, g.City, g.Country,
	).Scan(&g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	if err != nil {
		if isUnique(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("update gym: %w", err)
	}
	return nil
}

func (s *Store) SoftDelete(ctx context.Context, id string) error {
	const q = `UPDATE gym SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	tag, err := s.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete gym: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanInto(row pgx.Row, g *repository.Gym) error {
	return row.Scan(
		&g.ID, &g.Name, &g.Email, &g.Phone,
		&g.Address, &g.City, &g.Country,
		&g.IsActive, &g.CreatedAt, &g.UpdatedAt,
	)
}

func isUnique(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
