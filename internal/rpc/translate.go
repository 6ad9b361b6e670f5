package rpc

import (
	"net/http"

	"github.com/dropDatabas3/gymgate/internal/httperrors"
)

// Traductor bidireccional RPC ↔ HTTP. ÚNICO punto del sistema donde se
// mapean status: ningún otro componente arma su propia tabla.

// statusFromCode mapea código RPC → status HTTP.
func statusFromCode(code Code) int {
	switch code {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// codeFromStatus mapea status HTTP → código RPC (dirección inversa).
// Exhaustivo sobre el set de statuses del sistema para garantizar que el
// round-trip preserve la clase.
func codeFromStatus(status int) Code {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeInvalidArgument
	case http.StatusUnauthorized:
		return CodeUnauthenticated
	case http.StatusForbidden:
		return CodePermissionDenied
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeAlreadyExists
	default:
		return CodeInternal
	}
}

// FromEnvelope decodifica un fault llegado del backend RPC al error nativo
// del edge. El mensaje viaja textual; un envelope malformado o con código
// desconocido colapsa a Internal genérico — jamás se propaga un código sin
// mapear hasta el borde.
func FromEnvelope(env *Envelope) *httperrors.AppError {
	if env == nil {
		return httperrors.ErrInternal
	}

	status := env.Status
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
		http.StatusNotFound, http.StatusConflict:
		// hint explícito dentro del set conocido: se respeta
	default:
		// sin hint o hint fuera del set: decide el código semántico
		status = statusFromCode(env.Code)
	}

	switch status {
	case http.StatusBadRequest:
		return httperrors.ErrBadRequest.WithMessage(env.Message)
	case http.StatusUnauthorized:
		return httperrors.ErrUnauthorized.WithMessage(env.Message)
	case http.StatusForbidden:
		return httperrors.ErrForbidden.WithMessage(env.Message)
	case http.StatusNotFound:
		return httperrors.ErrNotFound.WithMessage(env.Message)
	case http.StatusConflict:
		return httperrors.ErrConflict.WithMessage(env.Message)
	default:
		return httperrors.ErrInternal
	}
}

// Translate convierte cualquier error devuelto por Client.Call al error
// nativo del edge. Lo que no sea un Envelope colapsa a Internal.
func Translate(err error) *httperrors.AppError {
	if err == nil {
		return nil
	}
	if env, ok := err.(*Envelope); ok {
		return FromEnvelope(env)
	}
	return httperrors.ErrInternal
}

// ToEnvelope envuelve un error criado dentro de un servicio RPC en el fault
// canónico que cruza el wire, con el mensaje original y el hint de status.
func ToEnvelope(err error) *Envelope {
	appErr := httperrors.FromError(err)
	return &Envelope{
		Code:    codeFromStatus(appErr.HTTPStatus),
		Message: appErr.Message,
		Status:  appErr.HTTPStatus,
	}
}
