// Package users contiene el controller REST del módulo de usuarios.
package users

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/gymgate/internal/authn"
	"github.com/dropDatabas3/gymgate/internal/authsvc/api"
	"github.com/dropDatabas3/gymgate/internal/authz"
	dto "github.com/dropDatabas3/gymgate/internal/http/dto/users"
	"github.com/dropDatabas3/gymgate/internal/http/helpers"
	svc "github.com/dropDatabas3/gymgate/internal/http/services/users"
	"github.com/dropDatabas3/gymgate/internal/httperrors"
)

type Controller struct {
	service svc.Service
	engine  *authz.Engine
}

func NewController(service svc.Service, engine *authz.Engine) *Controller {
	return &Controller{service: service, engine: engine}
}

// Create maneja POST /users/create. Ruta pública: el registro inicial
// no exige sesión.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if err := helpers.Validate(req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	user, err := c.service.Create(r.Context(), api.CreateUserRequest{
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Role:          req.Role,
		GymID:         req.GymID,
		GymLocationID: req.GymLocationID,
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, user)
}

// queryInt lee un query param numérico con default.
func queryInt(r *http.Request, name string, def int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// List maneja GET /users
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := c.service.List(r.Context(), api.ListUsersRequest{
		Page:            queryInt(r, "page", 1),
		PageSize:        queryInt(r, "pageSize", 20),
		Search:          q.Get("search"),
		Role:            q.Get("role"),
		GymID:           q.Get("gymId"),
		IncludeInactive: q.Get("includeInactive") == "true",
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.ListUsersResponse{
		Users:    out.Users,
		Total:    out.Total,
		Page:     out.Page,
		PageSize: out.PageSize,
	})
}

// Get maneja GET /users/{id}. Un member sólo puede leerse a sí mismo.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	principal := authn.PrincipalFrom(r.Context())

	if err := c.engine.AuthorizeSelf(principal, "users", "read", id); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	user, err := c.service.Get(r.Context(), id)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

// GetByEmail maneja GET /users/email/{email}
func (c *Controller) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := c.service.GetByEmail(r.Context(), email)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

// Update maneja PATCH /users/{id}. Un member sólo puede editarse a sí
// mismo, y nunca cambiar su propio rol.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	principal := authn.PrincipalFrom(r.Context())

	if err := c.engine.AuthorizeSelf(principal, "users", "update", id); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	var req dto.UpdateUserRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if err := helpers.Validate(req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	// Self-update no puede escalar rol ni moverse de gimnasio.
	if principal != nil && principal.UserID == id {
		if err := c.engine.Authorize(principal, &authz.Permission{Resource: "users", Action: "update"}); err != nil {
			req.Role = nil
			req.GymID = nil
			req.GymLocationID = nil
		}
	}

	user, err := c.service.Update(r.Context(), api.UpdateUserRequest{
		ID:            id,
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Role:          req.Role,
		GymID:         req.GymID,
		GymLocationID: req.GymLocationID,
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

// Remove maneja DELETE /users/{id} (soft delete).
func (c *Controller) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := c.service.Remove(r.Context(), id); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "User removed"})
}

// Activate maneja PATCH /users/{id}/activate
func (c *Controller) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := c.service.Activate(r.Context(), id)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}

// Deactivate maneja PATCH /users/{id}/deactivate
func (c *Controller) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := c.service.Deactivate(r.Context(), id)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, user)
}
