// Package gyms contiene el controller REST del módulo de gimnasios.
package gyms

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/gymgate/internal/gymsvc/api"
	dto "github.com/dropDatabas3/gymgate/internal/http/dto/gyms"
	"github.com/dropDatabas3/gymgate/internal/http/helpers"
	svc "github.com/dropDatabas3/gymgate/internal/http/services/gyms"
	"github.com/dropDatabas3/gymgate/internal/httperrors"
)

type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Create maneja POST /gyms
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGymRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if err := helpers.Validate(req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	gym, err := c.service.Create(r.Context(), api.CreateGymRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, gym)
}

// List maneja GET /gyms
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := 1, 20
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		page = n
	}
	if n, err := strconv.Atoi(q.Get("pageSize")); err == nil && n > 0 {
		pageSize = n
	}

	out, err := c.service.List(r.Context(), api.ListGymsRequest{
		Page:            page,
		PageSize:        pageSize,
		Search:          q.Get("search"),
		IncludeInactive: q.Get("includeInactive") == "true",
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.ListGymsResponse{
		Gyms:     out.Gyms,
		Total:    out.Total,
		Page:     out.Page,
		PageSize: out.PageSize,
	})
}

// Get maneja GET /gyms/{id}
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	gym, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, gym)
}

// Update maneja PATCH /gyms/{id}
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateGymRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if err := helpers.Validate(req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	gym, err := c.service.Update(r.Context(), api.UpdateGymRequest{
		ID:      chi.URLParam(r, "id"),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, gym)
}

// Remove maneja DELETE /gyms/{id}
func (c *Controller) Remove(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "Gym removed"})
}
