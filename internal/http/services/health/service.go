// Package health implementa el health check del gateway.
package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

type Component struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok | unavailable
}

type Response struct {
	Status     string      `json:"status"` // ready | degraded
	Components []Component `json:"components,omitempty"`
}

// Probe verifica una dependencia (redis, servicio upstream).
type Probe func(ctx context.Context) error

type Service interface {
	Check(ctx context.Context) Response
}

type service struct {
	probes map[string]Probe
}

func NewService(probes map[string]Probe) Service {
	return &service{probes: probes}
}

// Check corre todas las probes en paralelo con un deadline corto: una
// dependencia colgada no puede arrastrar el readiness check completo.
func (s *service) Check(ctx context.Context) Response {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var (
		mu    sync.Mutex
		comps []Component
	)
	g, ctx := errgroup.WithContext(ctx)
	for name, probe := range s.probes {
		name, probe := name, probe
		g.Go(func() error {
			comp := Component{Name: name, Status: "ok"}
			if err := probe(ctx); err != nil {
				comp.Status = "unavailable"
			}
			mu.Lock()
			comps = append(comps, comp)
			mu.Unlock()
			// Una probe caída no cancela a las demás.
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(comps, func(i, j int) bool { return comps[i].Name < comps[j].Name })

	resp := Response{Status: "ready", Components: comps}
	for _, c := range comps {
		if c.Status != "ok" {
			resp.Status = "degraded"
			break
		}
	}
	return resp
}
