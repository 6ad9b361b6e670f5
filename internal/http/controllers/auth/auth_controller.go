// Package auth contiene el controller del flujo de autenticación.
package auth

import (
	"net/http"
	"time"

	"github.com/dropDatabas3/gymgate/internal/authn"
	dto "github.com/dropDatabas3/gymgate/internal/http/dto/auth"
	"github.com/dropDatabas3/gymgate/internal/http/helpers"
	svc "github.com/dropDatabas3/gymgate/internal/http/services/auth"
	"github.com/dropDatabas3/gymgate/internal/httperrors"
	"github.com/dropDatabas3/gymgate/internal/observability/logger"
	"github.com/dropDatabas3/gymgate/internal/token"
)

// Config define cookies y TTLs con los que el controller emite el par.
type Config struct {
	Cookies    helpers.CookieSettings
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Controller struct {
	service svc.Service
	cfg     Config
}

func NewController(service svc.Service, cfg Config) *Controller {
	return &Controller{service: service, cfg: cfg}
}

// setPair escribe ambas cookies de sesión.
func (c *Controller) setPair(w http.ResponseWriter, pair *token.Pair) {
	http.SetCookie(w, c.cfg.Cookies.Build(authn.CookieAccessToken, pair.AccessToken, c.cfg.AccessTTL))
	http.SetCookie(w, c.cfg.Cookies.Build(authn.CookieRefreshToken, pair.RefreshToken, c.cfg.RefreshTTL))
}

// clearPair borra ambas cookies de sesión.
func (c *Controller) clearPair(w http.ResponseWriter) {
	http.SetCookie(w, c.cfg.Cookies.Deletion(authn.CookieAccessToken))
	http.SetCookie(w, c.cfg.Cookies.Deletion(authn.CookieRefreshToken))
}

// Login maneja POST /auth/login
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("Auth.Login"))

	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if err := helpers.Validate(req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	info, pair, err := c.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}

	c.setPair(w, pair)
	log.Debug("session cookies issued", logger.UserID(info.ID))
	helpers.WriteJSON(w, http.StatusOK, dto.LoginResponse{User: *info})
}

// Refresh maneja POST /auth/refresh. Cualquier falla limpia ambas cookies:
// un refresh muerto no debe quedar dando vueltas en el browser.
func (c *Controller) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	creds := authn.CredentialsFrom(ctx)
	if creds == nil {
		creds = authn.FromRequest(r)
	}

	info, pair, err := c.service.Refresh(ctx, creds)
	if err != nil {
		c.clearPair(w)
		httperrors.WriteError(w, err)
		return
	}

	c.setPair(w, pair)
	helpers.WriteJSON(w, http.StatusOK, dto.RefreshResponse{User: *info})
}

// Logout maneja POST /auth/logout
func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	c.clearPair(w)
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Me maneja GET /auth/me
func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	info, err := c.service.Me(ctx, authn.PrincipalFrom(ctx))
	if err != nil {
		httperrors.WriteError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{"user": info})
}

// Check maneja GET /auth/check. Siempre responde 200: el estado de la
// sesión va en el body, no en el status.
func (c *Controller) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	creds := authn.CredentialsFrom(ctx)
	if creds == nil {
		creds = authn.FromRequest(r)
	}

	helpers.WriteJSON(w, http.StatusOK, c.service.Check(ctx, creds))
}
