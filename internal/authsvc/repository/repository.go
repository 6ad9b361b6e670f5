// Package repository define el acceso a datos del servicio de usuarios.
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

// User es el registro completo, hash de password incluido. Nunca cruza
// el wire: el service lo proyecta al tipo api antes de responder.
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Phone         string
	Role          string
	GymID         string
	GymLocationID string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ListFilter struct {
	Offset          int
	Limit           int
	Search          string
	Role            string
	GymID           string
	IncludeInactive bool
}

type Users interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, f ListFilter) ([]User, int64, error)
	Update(ctx context.Context, u *User) error
	SoftDelete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) (*User, error)
}
