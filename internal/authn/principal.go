// Package authn contiene el extractor de credenciales y el guard de
// autenticación. Todo lo que hay después del transporte depende solo de la
// interfaz Credentials, nunca del shape concreto (REST vs GraphQL).
package authn

import "context"

// Principal es la identidad autenticada adjunta al request tras verificar
// el access token. Read-only por el resto del ciclo de vida del request;
// nunca se persiste.
type Principal struct {
	UserID        string
	Email         string
	Role          string
	GymID         string
	GymLocationID string
}

type ctxKey string

const ctxPrincipalKey ctxKey = "principal"

// WithPrincipal inyecta el principal en el contexto.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey, p)
}

// PrincipalFrom obtiene el principal del contexto.
// Retorna nil si el guard no corrió o la ruta es pública.
func PrincipalFrom(ctx context.Context) *Principal {
	if v := ctx.Value(ctxPrincipalKey); v != nil {
		if p, ok := v.(*Principal); ok {
			return p
		}
	}
	return nil
}
