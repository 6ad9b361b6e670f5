package helpers

import (
	"net/http"
	"strings"
	"time"
)

// CookieSettings agrupa los atributos comunes de las cookies de sesión.
// Domain vacío deja la cookie host-only.
type CookieSettings struct {
	Domain   string
	SameSite string
	Secure   bool
}

func ParseSameSite(s string) http.SameSite {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Build arma una cookie HttpOnly con TTL. Path siempre "/" para que el
// refresh token llegue en cualquier ruta del gateway.
func (cs CookieSettings) Build(name, value string, ttl time.Duration) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   cs.Secure,
		SameSite: ParseSameSite(cs.SameSite),
	}
	if strings.TrimSpace(cs.Domain) != "" {
		ck.Domain = cs.Domain
	}
	if ttl > 0 {
		ck.Expires = time.Now().Add(ttl).UTC()
		ck.MaxAge = int(ttl.Seconds())
	}
	return ck
}

// Deletion arma la cookie de borrado (MaxAge -1, Expires en el pasado).
// Los atributos deben coincidir con los de Build o el browser no la pisa.
func (cs CookieSettings) Deletion(name string) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   cs.Secure,
		SameSite: ParseSameSite(cs.SameSite),
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
	}
	if strings.TrimSpace(cs.Domain) != "" {
		ck.Domain = cs.Domain
	}
	return ck
}
