package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/gymgate/internal/authn"
	"github.com/dropDatabas3/gymgate/internal/authz"
	"github.com/dropDatabas3/gymgate/internal/httperrors"
	"github.com/dropDatabas3/gymgate/internal/observability/logger"
)

// AuthConfig configura el middleware de autenticación/autorización de una ruta.
type AuthConfig struct {
	Guard  *authn.Guard
	Engine *authz.Engine

	// Mode AuthPublic deja pasar sin token; el principal se adjunta
	// igual si el token venía y era válido.
	Mode authn.AuthMode

	// Require es el permiso exigido después de autenticar. Nil = sólo autenticación.
	Require *authz.Permission
}

// WithAuth extrae las credenciales del request, autentica contra el guard
// y autoriza contra el engine. Las credenciales quedan en el contexto para
// flujos que necesitan leer ambas cookies (refresh, check).
func WithAuth(cfg AuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			creds := authn.FromRequest(r)
			ctx := authn.WithCredentials(r.Context(), creds)

			principal, err := cfg.Guard.Authenticate(creds)
			if err != nil {
				if cfg.Mode == authn.AuthPublic {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				logger.From(ctx).Debug("authentication rejected", logger.Err(err))
				httperrors.WriteError(w, err)
				return
			}

			ctx = authn.WithPrincipal(ctx, principal)

			if cfg.Require != nil {
				if err := cfg.Engine.Authorize(principal, cfg.Require); err != nil {
					logger.From(ctx).Debug("authorization rejected",
						logger.UserID(principal.UserID),
						logger.RoleName(string(principal.Role)),
						logger.Err(err),
					)
					httperrors.WriteError(w, err)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
