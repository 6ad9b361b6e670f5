// Package health contiene el controller de health checks.
package health

import (
	"net/http"

	"github.com/dropDatabas3/gymgate/internal/http/helpers"
	svc "github.com/dropDatabas3/gymgate/internal/http/services/health"
)

type Controller struct {
	service svc.Service
}

func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Healthz maneja GET /healthz: liveness, siempre 200.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz maneja GET /readyz: readiness con estado de dependencias.
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	resp := c.service.Check(r.Context())
	status := http.StatusOK
	if resp.Status == "degraded" {
		status = http.StatusServiceUnavailable
	}
	helpers.WriteJSON(w, status, resp)
}
