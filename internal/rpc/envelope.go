// Package rpc define la frontera interna gateway ↔ microservicios:
// el fault canónico (Envelope), el traductor bidireccional de la taxonomía
// de errores, y el cliente/servidor JSON-over-HTTP que la transporta.
package rpc

import "fmt"

// Code es el código semántico de un fault RPC (vocabulario gRPC).
type Code int

const (
	CodeOK              Code = 0
	CodeInvalidArgument Code = 3
	CodeNotFound        Code = 5
	CodeAlreadyExists   Code = 6
	CodePermissionDenied Code = 7
	CodeInternal        Code = 13
	CodeUnauthenticated Code = 16
)

// Envelope es el fault canónico que cruza el wire RPC.
// Status es un hint HTTP explícito del origen; 0 = sin hint, el consumidor
// mapea desde Code.
type Envelope struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

// Error implementa error para poder propagar el envelope por return value.
func (e *Envelope) Error() string {
	return fmt.Sprintf("rpc fault code=%d status=%d: %s", e.Code, e.Status, e.Message)
}
