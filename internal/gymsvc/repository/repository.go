// Package repository define el acceso a datos del servicio de gimnasios.
package repository

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("repository: not found")
	ErrDuplicate = errors.New("repository: duplicate")
)

type Gym struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	City      string
	Country   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListFilter struct {
	Offset          int
	Limit           int
	Search          string
	IncludeInactive bool
}

type Gyms interface {
	Create(ctx context.Context, g *Gym) error
	GetByID(ctx context.Context, id string) (*Gym, error)
	List(ctx context.Context, f ListFilter) ([]Gym, int64, error)
	Update(ctx context.Context, g *Gym) error
	SoftDelete(ctx context.Context, id string) error
}
