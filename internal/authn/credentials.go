package authn

import (
	"context"
	"net/http"
	"strings"
)

// Nombres de cookie del par de tokens.
const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
)

// Credentials es la vista canónica {cookie, header} de un request, sea cual
// sea el transporte que lo trajo. Los adaptadores nunca fallan: valor vacío
// significa "no presente" y el caller decide qué implica eso para la ruta.
type Credentials interface {
	Cookie(name string) string
	Header(name string) string
}

// ─── Adaptador REST ───

type requestCredentials struct {
	r *http.Request
}

// FromRequest adapta un *http.Request al contrato Credentials.
func FromRequest(r *http.Request) Credentials {
	return requestCredentials{r: r}
}

func (c requestCredentials) Cookie(name string) string {
	ck, err := c.r.Cookie(name)
	if err != nil || ck == nil {
		return ""
	}
	return ck.Value
}

func (c requestCredentials) Header(name string) string {
	return c.r.Header.Get(name)
}

// ─── Adaptador GraphQL ───
//
// El handler de /graphql captura cookies y headers del request HTTP y los
// deja en el contexto de ejecución; los resolvers rehidratan Credentials
// desde ahí. Mismo contrato, otro origen.

type credsCtxKey struct{}

type mapCredentials struct {
	cookies map[string]string
	headers http.Header
}

// NewMapCredentials construye Credentials desde mapas sueltos (GraphQL y tests).
func NewMapCredentials(cookies map[string]string, headers http.Header) Credentials {
	if cookies == nil {
		cookies = map[string]string{}
	}
	if headers == nil {
		headers = http.Header{}
	}
	return mapCredentials{cookies: cookies, headers: headers}
}

func (c mapCredentials) Cookie(name string) string { return c.cookies[name] }
func (c mapCredentials) Header(name string) string { return c.headers.Get(name) }

// WithCredentials deja las credenciales en el contexto (handler GraphQL).
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credsCtxKey{}, creds)
}

// CredentialsFrom recupera las credenciales del contexto de un resolver.
// Retorna nil si el contexto no pasó por el handler GraphQL.
func CredentialsFrom(ctx context.Context) Credentials {
	if v := ctx.Value(credsCtxKey{}); v != nil {
		if c, ok := v.(Credentials); ok {
			return c
		}
	}
	return nil
}

// BearerToken localiza la credencial portadora con precedencia fija:
//  1. cookie access_token
//  2. header Authorization: Bearer <token>
//
// La cookie gana para que un header cacheado viejo no pise una cookie
// recién rotada. Nunca falla; "" = sin credencial.
func BearerToken(creds Credentials) string {
	if creds == nil {
		return ""
	}
	if v := creds.Cookie(CookieAccessToken); v != "" {
		return v
	}
	ah := strings.TrimSpace(creds.Header("Authorization"))
	if i := strings.IndexByte(ah, ' '); i > 0 && strings.EqualFold(ah[:i], "Bearer") {
		return strings.TrimSpace(ah[i+1:])
	}
	return ""
}
