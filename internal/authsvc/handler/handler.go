// Package handler expone el servicio de usuarios sobre la frontera RPC
// interna. Cada ruta decodifica el request, delega al service y responde
// resultado o fault; la traducción de errores ocurre en rpc.WriteFault.
package handler

import (
	"net/http"

	"github.com/dropDatabas3/gymgate/internal/authsvc/api"
	"github.com/dropDatabas3/gymgate/internal/authsvc/service"
	"github.com/dropDatabas3/gymgate/internal/rpc"
)

type Handler struct {
	svc service.Service
}

func New(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register monta las rutas RPC en el mux del servicio.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST "+api.PathUserCreate, h.create)
	mux.HandleFunc("POST "+api.PathUserList, h.list)
	mux.HandleFunc("POST "+api.PathUserGet, h.get)
	mux.HandleFunc("POST "+api.PathUserGetByEmail, h.getByEmail)
	mux.HandleFunc("POST "+api.PathUserUpdate, h.update)
	mux.HandleFunc("POST "+api.PathUserRemove, h.remove)
	mux.HandleFunc("POST "+api.PathUserActivate, h.activate)
	mux.HandleFunc("POST "+api.PathUserDeactivate, h.deactivate)
	mux.HandleFunc("POST "+api.PathUserVerifyCredentials, h.verifyCredentials)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req api.CreateUserRequest
	if !rpc.ReadRequest(w, r, &req) {
		return
	}
	u, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		rpc.WriteFault(w, err)
		return
	}
	rpc.WriteResult(w, http.StatusCreated, u)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var req api.ListUsersRequest
	if !rpc.ReadRequest(w, r, &req) {
		return
	}
	res, err := h.svc.List(r.Context(), &req)
	if err != nil {
		rpc.WriteFault(w, err)
		return
	}
	rpc.WriteResult(w, http.StatusOK, res)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	var req api.IDRequest
	if !rpc.ReadRequest(w, r, &req) {
		return
	}
	u, err := h.svc.Get(r.Context(), req.ID)
	if err != nil {
		rpc.WriteFault(w, err)
		return
	}
	rpc.WriteResult(w, http.StatusOK, u)
}

func (h *Handler) getByEmail(w http.ResponseWriter, r *http.Request) {
	var req api.EmailRequest
	if !rpc.ReadRequest(w, r, &req) {
		return
	}
	u, err := h.svc.GetByEmail(r.Context(), req.Email)
	if err != nil {
		rpc.WriteFault(w, err)
		return
	}
	rpc.WriteResult(w, http.StatusOK, u)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateUserRequest
	if !rpc.ReadRequest(w, r, &req) {
		return
	}
	u, err := h.svc.Update(r.Context(), &req)
	if err != nil {
		rpc.WriteFault(w, err)
		return
	}
	rpc.WriteResult(w, http.StatusOK, u)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	var req api.IDRequest
	if !rpc.ReadRequest(w, r, &req) {
		return
	}
	if err := h.svc.Remove(r.Context(), req.ID); err != nil {
		rpc.WriteFault(w, err)
		return
	}
	rpc.WriteResult(w, http.StatusOK, map[string]bool{"removed": true})
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	var req api.IDRequest
	if !rpc.ReadRequest(w, r, &req) {
		return
	}
	var (
		u   *api.User
		err error
	)
	if active {
		u, err = h.svc.Activate(r.Context(), req.ID)
	} else {
		u, err = h.svc.Deactivate(r.Context(), req.ID)
	}
	if err != nil {
		rpc.WriteFault(w, err)
		return
	}
	rpc.WriteResult(w, http.StatusOK, u)
}

func (h *Handler) verifyCredentials(w http.ResponseWriter, r *http.Request) {
	var req api.VerifyCredentialsRequest
	if !rpc.ReadRequest(w, r, &req) {
		return
	}
	u, err := h.svc.VerifyCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		rpc.WriteFault(w, err)
		return
	}
	rpc.WriteResult(w, http.StatusOK, u)
}
