package authn

import (
	"github.com/dropDatabas3/gymgate/internal/httperrors"
	"github.com/dropDatabas3/gymgate/internal/token"
)

// AuthMode declara qué exige una ruta u operación respecto de autenticación.
type AuthMode int

const (
	// AuthRequired exige access token válido (default del zero value).
	AuthRequired AuthMode = iota
	// AuthPublic saltea el guard por completo; no se adjunta principal.
	AuthPublic
)

// Guard verifica credenciales y produce el principal del request.
// Contrato verify-only: el guard NUNCA auto-refresca inline; el refresh es
// una operación explícita del caller (ver el flujo /auth/refresh).
type Guard struct {
	tokens *token.Service
}

func NewGuard(tokens *token.Service) *Guard {
	return &Guard{tokens: tokens}
}

// Authenticate es la máquina de estados compartida por REST y GraphQL.
// Cualquier divergencia de comportamiento entre los dos transportes es un
// bug: ambos llegan acá con la misma vista Credentials.
//
//	sin credencial      → Unauthenticated "No token provided"
//	verificación falla  → Unauthenticated "Invalid or expired token"
//	ok                  → Principal poblado desde los claims verificados
func (g *Guard) Authenticate(creds Credentials) (*Principal, error) {
	raw := BearerToken(creds)
	if raw == "" {
		return nil, httperrors.ErrTokenMissing
	}

	claims, err := g.tokens.VerifyAccess(raw)
	if err != nil {
		return nil, httperrors.ErrTokenInvalid.WithCause(err)
	}

	return &Principal{
		UserID:        claims.Subject,
		Email:         claims.Email,
		Role:          claims.Role,
		GymID:         claims.GymID,
		GymLocationID: claims.GymLocationID,
	}, nil
}
