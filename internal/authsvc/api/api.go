// Package api define el contrato RPC del servicio de usuarios: rutas y
// tipos de request/response que comparten el servicio y el gateway.
package api

import "time"

// Rutas RPC. El gateway las invoca vía rpc.Client.
const (
	PathUserCreate            = "/rpc/users/create"
	PathUserList              = "/rpc/users/list"
	PathUserGet               = "/rpc/users/get"
	PathUserGetByEmail        = "/rpc/users/get-by-email"
	PathUserUpdate            = "/rpc/users/update"
	PathUserRemove            = "/rpc/users/remove"
	PathUserActivate          = "/rpc/users/activate"
	PathUserDeactivate        = "/rpc/users/deactivate"
	PathUserVerifyCredentials = "/rpc/users/verify-credentials"
)

type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Phone         string    `json:"phone,omitempty"`
	Role          string    `json:"role"`
	GymID         string    `json:"gymId,omitempty"`
	GymLocationID string    `json:"gymLocationId,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateUserRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone,omitempty"`
	Role          string `json:"role,omitempty"`
	GymID         string `json:"gymId,omitempty"`
	GymLocationID string `json:"gymLocationId,omitempty"`
}

// UpdateUserRequest: los punteros distinguen "no tocar" de "poner vacío".
type UpdateUserRequest struct {
	ID            string  `json:"id"`
	Email         *string `json:"email,omitempty"`
	Password      *string `json:"password,omitempty"`
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Role          *string `json:"role,omitempty"`
	GymID         *string `json:"gymId,omitempty"`
	GymLocationID *string `json:"gymLocationId,omitempty"`
}

type ListUsersRequest struct {
	Page            int    `json:"page"`
	PageSize        int    `json:"pageSize"`
	Search          string `json:"search,omitempty"`
	Role            string `json:"role,omitempty"`
	GymID           string `json:"gymId,omitempty"`
	IncludeInactive bool   `json:"includeInactive,omitempty"`
}

type ListUsersResponse struct {
	Users    []User `json:"users"`
	Total    int64  `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type IDRequest struct {
	ID string `json:"id"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type VerifyCredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
