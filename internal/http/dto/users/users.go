// Package users contiene los DTOs REST del módulo de usuarios.
package users

import "github.com/dropDatabas3/gymgate/internal/authsvc/api"

type CreateUserRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,e164"`
	Role          string `json:"role,omitempty"`
	GymID         string `json:"gymId,omitempty"`
	GymLocationID string `json:"gymLocationId,omitempty"`
}

type UpdateUserRequest struct {
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Password      *string `json:"password,omitempty" validate:"omitempty,min=8"`
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,e164"`
	Role          *string `json:"role,omitempty"`
	GymID         *string `json:"gymId,omitempty"`
	GymLocationID *string `json:"gymLocationId,omitempty"`
}

// UserResponse reexpone el tipo del servicio: el gateway no reescribe
// la forma del usuario, sólo filtra qué operaciones llegan a él.
type UserResponse = api.User

type ListUsersResponse struct {
	Users    []api.User `json:"users"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}
