// Package handler expone el servicio de gimnasios sobre la frontera RPC.
package handler

import (
	"net/http"

	"github.com/dropDatabas3/gymgate/internal/gymsvc/api"
	"github.com/dropDatabas3/gymgate/internal/gymsvc/service"
	"github.com/dropDatabas3/gymgate/internal/rpc"
)

type Handler struct {
	svc service.Service
}

func New(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST "+api.PathGymCreate, h.create)
	mux.HandleFunc("POST "+api.PathGymList, h.list)
	mux.HandleFunc("POST "+api.PathGymGet, h.get)
	mux.HandleFunc("POST "+api.PathGymUpdate, h.update)
	mux.HandleFunc("POST "+api.PathGymRemove, h.remove)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req api.CreateGymRequest
	if !rpc.ReadRequest(w, r, &req) {
		return
	}
	g, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		rpc.WriteFault(w, err)
		return
	}
	rpc.WriteResult(w, http.StatusCreated, g)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var req api.ListGymsRequest
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
	g, err := h.svc.Get(r.Context(), req.ID)
	if err != nil {
		rpc.WriteFault(w, err)
		return
	}
	rpc.WriteResult(w, http.StatusOK, g)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateGymRequest
	if !rpc.ReadRequest(w, r, &req) {
		return
	}
	g, err := h.svc.Update(r.Context(), &req)
	if err != nil {
		rpc.WriteFault(w, err)
		return
	}
	rpc.WriteResult(w, http.StatusOK, g)
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
