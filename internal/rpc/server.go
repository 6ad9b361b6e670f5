package rpc

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/dropDatabas3/gymgate/internal/observability/logger"
)

// Helpers del lado servidor de la frontera RPC: los servicios internos
// responden JSON y, ante error, el Envelope traducido.

// WriteFault serializa el error como Envelope con el status HTTP del hint.
// Los servicios levantan AppError internamente; acá se traduce UNA vez.
func WriteFault(w http.ResponseWriter, err error) {
	env, ok := err.(*Envelope)
	if !ok {
		env = ToEnvelope(err)
	}

	status := env.Status
	if status == 0 {
		status = statusFromCode(env.Code)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// WriteResult serializa una respuesta exitosa.
func WriteResult(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// ReadRequest decodifica el body JSON de una llamada RPC entrante.
// Limita el body a 1MB; tolera EOF (body vacío) para requests sin payload.
func ReadRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil && err != io.EOF {
		logger.From(r.Context()).Debug("rpc: invalid request body", logger.Err(err))
		WriteFault(w, &Envelope{Code: CodeInvalidArgument, Message: "invalid request body", Status: http.StatusBadRequest})
		return false
	}
	return true
}
