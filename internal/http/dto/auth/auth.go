// Package auth contiene los DTOs del flujo de autenticación.
package auth

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserInfo es la vista del usuario autenticado que viaja al cliente.
type UserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	GymID         string `json:"gymId,omitempty"`
	GymLocationID string `json:"gymLocationId,omitempty"`
}

type LoginResponse struct {
	User UserInfo `json:"user"`
}

// CheckResponse responde /auth/check. CanRefresh sólo aparece cuando el
// access token no sirve pero el refresh todavía puede salvarlo.
type CheckResponse struct {
	Authenticated bool      `json:"authenticated"`
	CanRefresh    *bool     `json:"canRefresh,omitempty"`
	User          *UserInfo `json:"user,omitempty"`
}

type RefreshResponse struct {
	User UserInfo `json:"user"`
}
