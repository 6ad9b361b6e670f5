// Package metrics define las métricas Prometheus del gateway en un paquete
// aparte para evitar ciclos de import entre HTTP y RPC.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_http_requests_total",
		Help: "Requests HTTP por método, ruta y status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_http_request_duration_ms",
		Help:    "Duración de requests HTTP en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"method", "route"})

	AuthResultsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_auth_results_total",
		Help: "Resultados de autenticación (ok, missing_token, invalid_token)",
	}, []string{"result"})

	RPCCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_rpc_calls_total",
		Help: "Llamadas RPC a servicios internos por servicio y código",
	}, []string{"service", "code"})

	RPCCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_rpc_call_duration_ms",
		Help:    "Duración de llamadas RPC en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"service"})
)

// Register registra las métricas del gateway en el registry dado (o el default si es nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AuthResultsTotal,
		RPCCallsTotal,
		RPCCallDuration,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
