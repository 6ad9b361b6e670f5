// Package router arma el router chi del gateway: middlewares globales,
// rutas REST con su política de auth por ruta, GraphQL y observabilidad.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/gymgate/internal/authn"
	"github.com/dropDatabas3/gymgate/internal/authz"
	authctrl "github.com/dropDatabas3/gymgate/internal/http/controllers/auth"
	gymsctrl "github.com/dropDatabas3/gymgate/internal/http/controllers/gyms"
	healthctrl "github.com/dropDatabas3/gymgate/internal/http/controllers/health"
	usersctrl "github.com/dropDatabas3/gymgate/internal/http/controllers/users"
	mw "github.com/dropDatabas3/gymgate/internal/http/middlewares"
	"github.com/dropDatabas3/gymgate/internal/rate"
)

// Deps contiene todo lo que el router necesita para armar el árbol de rutas.
type Deps struct {
	Guard  *authn.Guard
	Engine *authz.Engine

	Auth   *authctrl.Controller
	Users  *usersctrl.Controller
	Gyms   *gymsctrl.Controller
	Health *healthctrl.Controller

	// GraphQL es el handler del edge /graphql; la autorización por
	// operación vive adentro, acá sólo se le acercan las credenciales.
	GraphQL http.Handler

	CORSAllowedOrigins []string
	GlobalLimiter      rate.Limiter
	LoginLimiter       rate.Limiter
}

// New construye el handler raíz del gateway.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRecover())
	r.Use(mw.WithRequestID())
	r.Use(mw.WithSecurityHeaders())
	r.Use(mw.WithCORS(deps.CORSAllowedOrigins))
	r.Use(mw.WithRateLimit(mw.RateLimitConfig{
		Limiter:   deps.GlobalLimiter,
		Whitelist: []string{"/healthz", "/readyz", "/metrics"},
	}))
	r.Use(mw.WithLogging())
	r.Use(mw.WithMetrics())

	// Políticas de auth por ruta.
	public := mw.WithAuth(mw.AuthConfig{Guard: deps.Guard, Engine: deps.Engine, Mode: authn.AuthPublic})
	required := mw.WithAuth(mw.AuthConfig{Guard: deps.Guard, Engine: deps.Engine, Mode: authn.AuthRequired})
	perm := func(resource, action string) mw.Middleware {
		return mw.WithAuth(mw.AuthConfig{
			Guard:   deps.Guard,
			Engine:  deps.Engine,
			Mode:    authn.AuthRequired,
			Require: &authz.Permission{Resource: resource, Action: action},
		})
	}

	// Observabilidad
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Auth
	r.Route("/auth", func(r chi.Router) {
		r.Use(mw.WithNoStore())

		r.With(public, mw.WithRateLimit(mw.RateLimitConfig{
			Limiter: deps.LoginLimiter,
			KeyFunc: mw.IPOnlyRateKey,
		})).Post("/login", deps.Auth.Login)

		r.With(public).Post("/refresh", deps.Auth.Refresh)
		r.With(public).Post("/logout", deps.Auth.Logout)
		r.With(public).Get("/check", deps.Auth.Check)
		r.With(required).Get("/me", deps.Auth.Me)
	})

	// Users
	r.Route("/users", func(r chi.Router) {
		r.With(public).Post("/create", deps.Users.Create)

		r.With(perm("users", "read")).Get("/", deps.Users.List)
		r.With(perm("users", "read")).Get("/email/{email}", deps.Users.GetByEmail)

		// Lectura/edición por id: el scoping self vive en el controller.
		r.With(required).Get("/{id}", deps.Users.Get)
		r.With(required).Patch("/{id}", deps.Users.Update)

		r.With(perm("users", "delete")).Delete("/{id}", deps.Users.Remove)
		r.With(perm("users", "activate")).Patch("/{id}/activate", deps.Users.Activate)
		r.With(perm("users", "deactivate")).Patch("/{id}/deactivate", deps.Users.Deactivate)
	})

	// Gyms
	r.Route("/gyms", func(r chi.Router) {
		r.With(perm("gyms", "create")).Post("/", deps.Gyms.Create)
		r.With(perm("gyms", "read")).Get("/", deps.Gyms.List)
		r.With(perm("gyms", "read")).Get("/{id}", deps.Gyms.Get)
		r.With(perm("gyms", "update")).Patch("/{id}", deps.Gyms.Update)
		r.With(perm("gyms", "delete")).Delete("/{id}", deps.Gyms.Remove)
	})

	// GraphQL: la ruta es pública a nivel HTTP, cada operación decide.
	if deps.GraphQL != nil {
		r.With(public).Handle("/graphql", deps.GraphQL)
	}

	return r
}
