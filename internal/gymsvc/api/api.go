// Package api define el contrato RPC del servicio de gimnasios.
package api

import "time"

const (
	PathGymCreate = "/rpc/gyms/create"
	PathGymList   = "/rpc/gyms/list"
	PathGymGet    = "/rpc/gyms/get"
	PathGymUpdate = "/rpc/gyms/update"
	PathGymRemove = "/rpc/gyms/remove"
)

type Gym struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateGymRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

type UpdateGymRequest struct {
	ID      string  `json:"id"`
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	Country *string `json:"country,omitempty"`
}

type ListGymsRequest struct {
	Page            int    `json:"page"`
	PageSize        int    `json:"pageSize"`
	Search          string `json:"search,omitempty"`
	IncludeInactive bool   `json:"includeInactive,omitempty"`
}

type ListGymsResponse struct {
	Gyms     []Gym `json:"gyms"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

type IDRequest struct {
	ID string `json:"id"`
}
