// Binario del gateway: edge HTTP (REST + GraphQL) que autentica, autoriza
// y delega por RPC a los servicios internos.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/gymgate/internal/authn"
	"github.com/dropDatabas3/gymgate/internal/authz"
	"github.com/dropDatabas3/gymgate/internal/cache"
	memcache "github.com/dropDatabas3/gymgate/internal/cache/memory"
	redcache "github.com/dropDatabas3/gymgate/internal/cache/redis"
	"github.com/dropDatabas3/gymgate/internal/config"
	authctrl "github.com/dropDatabas3/gymgate/internal/http/controllers/auth"
	gymsctrl "github.com/dropDatabas3/gymgate/internal/http/controllers/gyms"
	healthctrl "github.com/dropDatabas3/gymgate/internal/http/controllers/health"
	usersctrl "github.com/dropDatabas3/gymgate/internal/http/controllers/users"
	gqledge "github.com/dropDatabas3/gymgate/internal/http/graphql"
	"github.com/dropDatabas3/gymgate/internal/http/helpers"
	"github.com/dropDatabas3/gymgate/internal/http/router"
	authsvc "github.com/dropDatabas3/gymgate/internal/http/services/auth"
	gymssvc "github.com/dropDatabas3/gymgate/internal/http/services/gyms"
	healthsvc "github.com/dropDatabas3/gymgate/internal/http/services/health"
	userssvc "github.com/dropDatabas3/gymgate/internal/http/services/users"
	"github.com/dropDatabas3/gymgate/internal/metrics"
	"github.com/dropDatabas3/gymgate/internal/observability/logger"
	"github.com/dropDatabas3/gymgate/internal/rate"
	"github.com/dropDatabas3/gymgate/internal/rpc"
	"github.com/dropDatabas3/gymgate/internal/token"
)

func main() {
	var (
		flagConfig  = flag.String("config", "", "ruta a config.yaml (opcional, env pisa yaml)")
		flagEnvFile = flag.String("env-file", ".env", "ruta a .env (si existe, se carga)")
	)
	flag.Parse()

	if *flagEnvFile != "" {
		if st, err := os.Stat(*flagEnvFile); err == nil && !st.IsDir() {
			_ = godotenv.Load(*flagEnvFile)
		}
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		logger.L().Fatal("config", logger.Err(err))
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: "gateway",
	})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatal("metrics", logger.Err(err))
	}

	// Token service + guard + engine
	tokens := token.NewService(token.Config{
		AccessSecret:  []byte(cfg.JWT.AccessSecret),
		RefreshSecret: []byte(cfg.JWT.RefreshSecret),
		AccessTTL:     cfg.AccessTTL(),
		RefreshTTL:    cfg.RefreshTTL(),
	})
	guard := authn.NewGuard(tokens)
	engine := authz.NewEngine()

	// Redis: compartido entre cache y rate limiting cuando está configurado.
	var redisClient *rdb.Client
	needsRedis := strings.EqualFold(cfg.Cache.Kind, "redis") || cfg.Rate.Enabled
	if needsRedis && cfg.Cache.Redis.Addr != "" {
		redisClient = rdb.NewClient(&rdb.Options{
			Addr: cfg.Cache.Redis.Addr,
			DB:   cfg.Cache.Redis.DB,
		})
	}

	var cc cache.Cache
	if strings.EqualFold(cfg.Cache.Kind, "redis") && redisClient != nil {
		cc = redcache.New(redisClient, cfg.Cache.Redis.Prefix)
		log.Info("cache: redis", logger.String("addr", cfg.Cache.Redis.Addr))
	} else {
		ttl, _ := time.ParseDuration(cfg.Cache.Memory.DefaultTTL)
		cc = memcache.New(ttl)
		log.Info("cache: memory")
	}

	// Rate limiters (solo con Redis; sin Redis el middleware queda noop).
	var globalLimiter, loginLimiter rate.Limiter
	if cfg.Rate.Enabled && redisClient != nil {
		win, _ := time.ParseDuration(cfg.Rate.Window)
		loginWin, _ := time.ParseDuration(cfg.Rate.Login.Window)
		globalLimiter = rate.NewRedisLimiter(redisClient, cfg.Cache.Redis.Prefix+"rl", cfg.Rate.MaxRequests, win)
		loginLimiter = rate.NewRedisLimiter(redisClient, cfg.Cache.Redis.Prefix+"rl:login", cfg.Rate.Login.Limit, loginWin)
	}

	// Clientes RPC hacia los servicios internos
	authClient := rpc.NewClient(cfg.Services.AuthURL, cfg.RPCTimeout())
	gymClient := rpc.NewClient(cfg.Services.GymURL, cfg.RPCTimeout())

	users := userssvc.NewService(userssvc.Deps{Client: authClient, Cache: cc})
	gyms := gymssvc.NewService(gymssvc.Deps{Client: gymClient, Cache: cc})
	auth := authsvc.NewService(authsvc.Deps{Tokens: tokens, Users: users})

	probes := map[string]healthsvc.Probe{
		"auth_service": servicePing(authClient),
		"gym_service":  servicePing(gymClient),
	}
	if redisClient != nil {
		probes["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	health := healthsvc.NewService(probes)

	cookies := helpers.CookieSettings{
		Domain:   cfg.Auth.Cookie.Domain,
		SameSite: cfg.Auth.Cookie.SameSite,
		Secure:   cfg.Auth.Cookie.Secure,
	}

	schema, err := gqledge.NewSchema(gqledge.Deps{
		Guard:  guard,
		Engine: engine,
		Users:  users,
		Gyms:   gyms,
	})
	if err != nil {
		log.Fatal("graphql schema", logger.Err(err))
	}

	handler := router.New(router.Deps{
		Guard:  guard,
		Engine: engine,
		Auth: authctrl.NewController(auth, authctrl.Config{
			Cookies:    cookies,
			AccessTTL:  cfg.AccessTTL(),
			RefreshTTL: cfg.RefreshTTL(),
		}),
		Users:              usersctrl.NewController(users, engine),
		Gyms:               gymsctrl.NewController(gyms),
		Health:             healthctrl.NewController(health),
		GraphQL:            gqledge.NewHandler(schema),
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		GlobalLimiter:      globalLimiter,
		LoginLimiter:       loginLimiter,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("gateway up", logger.String("addr", cfg.Server.Addr), logger.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http", logger.Err(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown", logger.Err(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

// servicePing chequea que el servicio interno responda algo en /healthz.
// Un fault RPC estructurado también cuenta como vivo: hubo respuesta.
func servicePing(client *rpc.Client) healthsvc.Probe {
	return func(ctx context.Context) error {
		err := client.Get(ctx, "/healthz", nil, nil)
		if err == nil {
			return nil
		}
		if env, ok := err.(*rpc.Envelope); ok && env.Status != 0 && env.Status < 500 {
			return nil
		}
		return err
	}
}
