// Package users implementa el servicio de usuarios del gateway: un wrapper
// sobre el cliente RPC con cache de lecturas e invalidación en escrituras.
package users

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/dropDatabas3/gymgate/internal/authsvc/api"
	"github.com/dropDatabas3/gymgate/internal/cache"
	"github.com/dropDatabas3/gymgate/internal/metrics"
	"github.com/dropDatabas3/gymgate/internal/observability/logger"
	"github.com/dropDatabas3/gymgate/internal/rpc"
)

type Service interface {
	Create(ctx context.Context, in api.CreateUserRequest) (*api.User, error)
	List(ctx context.Context, in api.ListUsersRequest) (*api.ListUsersResponse, error)
	Get(ctx context.Context, id string) (*api.User, error)
	GetFresh(ctx context.Context, id string) (*api.User, error)
	GetByEmail(ctx context.Context, email string) (*api.User, error)
	Update(ctx context.Context, in api.UpdateUserRequest) (*api.User, error)
	Remove(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) (*api.User, error)
	Deactivate(ctx context.Context, id string) (*api.User, error)
	VerifyCredentials(ctx context.Context, email, password string) (*api.User, error)
}

// Deps contiene las dependencias del servicio de usuarios.
type Deps struct {
	Client   *rpc.Client
	Cache    cache.Cache
	CacheTTL time.Duration
}

type service struct {
	deps Deps
}

func NewService(deps Deps) Service {
	if deps.CacheTTL == 0 {
		deps.CacheTTL = 2 * time.Minute
	}
	return &service{deps: deps}
}

// call centraliza la llamada RPC con métricas y traducción de fault.
func (s *service) call(ctx context.Context, path string, in, out any) error {
	start := time.Now()
	err := s.deps.Client.Post(ctx, path, in, out)
	metrics.RPCCallDuration.WithLabelValues("users").Observe(float64(time.Since(start).Milliseconds()))

	if err != nil {
		code := rpc.CodeInternal
		if env, ok := err.(*rpc.Envelope); ok {
			code = env.Code
		}
		metrics.RPCCallsTotal.WithLabelValues("users", strconv.Itoa(int(code))).Inc()
		return rpc.Translate(err)
	}
	metrics.RPCCallsTotal.WithLabelValues("users", "0").Inc()
	return nil
}

func userKey(id string) string { return "user:" + id }

func (s *service) cached(id string) *api.User {
	if s.deps.Cache == nil {
		return nil
	}
	b, ok := s.deps.Cache.Get(userKey(id))
	if !ok {
		return nil
	}
	var u api.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil
	}
	return &u
}

func (s *service) remember(u *api.User) {
	if s.deps.Cache == nil || u == nil {
		return
	}
	if b, err := json.Marshal(u); err == nil {
		s.deps.Cache.Set(userKey(u.ID), b, s.deps.CacheTTL)
	}
}

func (s *service) forget(id string) {
	if s.deps.Cache != nil {
		s.deps.Cache.Delete(userKey(id))
	}
}

func (s *service) Create(ctx context.Context, in api.CreateUserRequest) (*api.User, error) {
	var u api.User
	if err := s.call(ctx, api.PathUserCreate, in, &u); err != nil {
		return nil, err
	}
	s.remember(&u)
	return &u, nil
}

func (s *service) List(ctx context.Context, in api.ListUsersRequest) (*api.ListUsersResponse, error) {
	var out api.ListUsersResponse
	if err := s.call(ctx, api.PathUserList, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Get(ctx context.Context, id string) (*api.User, error) {
	if u := s.cached(id); u != nil {
		logger.From(ctx).Debug("user cache hit", logger.UserID(id))
		return u, nil
	}
	var u api.User
	if err := s.call(ctx, api.PathUserGet, api.IDRequest{ID: id}, &u); err != nil {
		return nil, err
	}
	s.remember(&u)
	return &u, nil
}

// GetFresh relee el usuario del servicio sin mirar el cache. Lo usan los
// flujos que deciden sobre el estado vivo de la cuenta (refresh, me): un
// registro cacheado puede no reflejar una desactivación reciente.
func (s *service) GetFresh(ctx context.Context, id string) (*api.User, error) {
	var u api.User
	if err := s.call(ctx, api.PathUserGet, api.IDRequest{ID: id}, &u); err != nil {
		return nil, err
	}
	s.remember(&u)
	return &u, nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*api.User, error) {
	var u api.User
	if err := s.call(ctx, api.PathUserGetByEmail, api.EmailRequest{Email: email}, &u); err != nil {
		return nil, err
	}
	s.remember(&u)
	return &u, nil
}

func (s *service) Update(ctx context.Context, in api.UpdateUserRequest) (*api.User, error) {
	var u api.User
	if err := s.call(ctx, api.PathUserUpdate, in, &u); err != nil {
		return nil, err
	}
	s.forget(in.ID)
	s.remember(&u)
	return &u, nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	var u api.User
	if err := s.call(ctx, api.PathUserRemove, api.IDRequest{ID: id}, &u); err != nil {
		return err
	}
	s.forget(id)
	return nil
}

func (s *service) Activate(ctx context.Context, id string) (*api.User, error) {
	var u api.User
	if err := s.call(ctx, api.PathUserActivate, api.IDRequest{ID: id}, &u); err != nil {
		return nil, err
	}
	s.forget(id)
	s.remember(&u)
	return &u, nil
}

func (s *service) Deactivate(ctx context.Context, id string) (*api.User, error) {
	var u api.User
	if err := s.call(ctx, api.PathUserDeactivate, api.IDRequest{ID: id}, &u); err != nil {
		return nil, err
	}
	s.forget(id)
	s.remember(&u)
	return &u, nil
}

func (s *service) VerifyCredentials(ctx context.Context, email, password string) (*api.User, error) {
	var u api.User
	in := api.VerifyCredentialsRequest{Email: email, Password: password}
	if err := s.call(ctx, api.PathUserVerifyCredentials, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
