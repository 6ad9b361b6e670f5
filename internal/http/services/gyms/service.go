// Package gyms implementa el servicio de gimnasios del gateway.
package gyms

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/dropDatabas3/gymgate/internal/cache"
	"github.com/dropDatabas3/gymgate/internal/gymsvc/api"
	"github.com/dropDatabas3/gymgate/internal/metrics"
	"github.com/dropDatabas3/gymgate/internal/rpc"
)

type Service interface {
	Create(ctx context.Context, in api.CreateGymRequest) (*api.Gym, error)
	List(ctx context.Context, in api.ListGymsRequest) (*api.ListGymsResponse, error)
	Get(ctx context.Context, id string) (*api.Gym, error)
	Update(ctx context.Context, in api.UpdateGymRequest) (*api.Gym, error)
	Remove(ctx context.Context, id string) error
}

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

func (s *service) call(ctx context.Context, path string, in, out any) error {
	start := time.Now()
	err := s.deps.Client.Post(ctx, path, in, out)
	metrics.RPCCallDuration.WithLabelValues("gyms").Observe(float64(time.Since(start).Milliseconds()))

	if err != nil {
		code := rpc.CodeInternal
		if env, ok := err.(*rpc.Envelope); ok {
			code = env.Code
		}
		metrics.RPCCallsTotal.WithLabelValues("gyms", strconv.Itoa(int(code))).Inc()
		return rpc.Translate(err)
	}
	metrics.RPCCallsTotal.WithLabelValues("gyms", "0").Inc()
	return nil
}

func gymKey(id string) string { return "gym:" + id }

func (s *service) Create(ctx context.Context, in api.CreateGymRequest) (*api.Gym, error) {
	var g api.Gym
	if err := s.call(ctx, api.PathGymCreate, in, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *service) List(ctx context.Context, in api.ListGymsRequest) (*api.ListGymsResponse, error) {
	var out api.ListGymsResponse
	if err := s.call(ctx, api.PathGymList, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) Get(ctx context.Context, id string) (*api.Gym, error) {
	if s.deps.Cache != nil {
		if b, ok := s.deps.Cache.Get(gymKey(id)); ok {
			var g api.Gym
			if err := json.Unmarshal(b, &g); err == nil {
				return &g, nil
			}
		}
	}
	var g api.Gym
	if err := s.call(ctx, api.PathGymGet, api.IDRequest{ID: id}, &g); err != nil {
		return nil, err
	}
	if s.deps.Cache != nil {
		if b, err := json.Marshal(&g); err == nil {
			s.deps.Cache.Set(gymKey(id), b, s.deps.CacheTTL)
		}
	}
	return &g, nil
}

func (s *service) Update(ctx context.Context, in api.UpdateGymRequest) (*api.Gym, error) {
	var g api.Gym
	if err := s.call(ctx, api.PathGymUpdate, in, &g); err != nil {
		return nil, err
	}
	if s.deps.Cache != nil {
		s.deps.Cache.Delete(gymKey(in.ID))
	}
	return &g, nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	var g api.Gym
	if err := s.call(ctx, api.PathGymRemove, api.IDRequest{ID: id}, &g); err != nil {
		return err
	}
	if s.deps.Cache != nil {
		s.deps.Cache.Delete(gymKey(id))
	}
	return nil
}
