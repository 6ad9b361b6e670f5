// Package service implementa la lógica de negocio del servicio de gimnasios.
package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/dropDatabas3/gymgate/internal/gymsvc/api"
	"github.com/dropDatabas3/gymgate/internal/gymsvc/repository"
	"github.com/dropDatabas3/gymgate/internal/httperrors"
	"github.com/dropDatabas3/gymgate/internal/observability/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service interface {
	Create(ctx context.Context, req *api.CreateGymRequest) (*api.Gym, error)
	List(ctx context.Context, req *api.ListGymsRequest) (*api.ListGymsResponse, error)
	Get(ctx context.Context, id string) (*api.Gym, error)
	Update(ctx context.Context, req *api.UpdateGymRequest) (*api.Gym, error)
	Remove(ctx context.Context, id string) error
}

type Deps struct {
	Repo repository.Gyms
}

type gymService struct {
	repo repository.Gyms
	log  *zap.Logger
}

func NewGymService(deps Deps) Service {
	return &gymService{
		repo: deps.Repo,
		log:  logger.L().With(logger.Layer("service"), logger.Component("gyms")),
	}
}

func (s *gymService) Create(ctx context.Context, req *api.CreateGymRequest) (*api.Gym, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, httperrors.ErrBadRequest.WithDetail("name is required")
	}

	g := &repository.Gym{
		Name:     name,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, httperrors.ErrAlreadyExists.WithMessage("Gym already exists")
		}
		s.log.Error("create gym failed", logger.Err(err))
		return nil, httperrors.ErrInternal.WithCause(err)
	}

	s.log.Info("gym created", logger.GymID(g.ID))
	return toAPI(g), nil
}

func (s *gymService) List(ctx context.Context, req *api.ListGymsRequest) (*api.ListGymsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	gyms, total, err := s.repo.List(ctx, repository.ListFilter{
		Offset:          (page - 1) * size,
		Limit:           size,
		Search:          strings.TrimSpace(req.Search),
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		s.log.Error("list gyms failed", logger.Err(err))
		return nil, httperrors.ErrInternal.WithCause(err)
	}

	out := make([]api.Gym, 0, len(gyms))
	for i := range gyms {
		out = append(out, *toAPI(&gyms[i]))
	}
	return &api.ListGymsResponse{Gyms: out, Total: total, Page: page, PageSize: size}, nil
}

func (s *gymService) Get(ctx context.Context, id string) (*api.Gym, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOrInternal(err, "get gym")
	}
	return toAPI(g), nil
}

func (s *gymService) Update(ctx context.Context, req *api.UpdateGymRequest) (*api.Gym, error) {
	if req.ID == "" {
		return nil, httperrors.ErrBadRequest.WithDetail("id is required")
	}
	g, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, s.notFoundOrInternal(err, "update gym")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, httperrors.ErrBadRequest.WithDetail("name cannot be empty")
		}
		g.Name = name
	}
	if req.Email != nil {
		g.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		g.Phone = *req.Phone
	}
	if req.Address != nil {
		g.Address = *req.Address
	}
	if req.City != nil {
		g.City = *req.City
	}
	if req.Country != nil {
		g.Country = *req.Country
	}

	if err := s.repo.Update(ctx, g); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, httperrors.ErrAlreadyExists.WithMessage("Gym already exists")
		}
		return nil, s.notFoundOrInternal(err, "update gym")
	}
	return toAPI(g), nil
}

func (s *gymService) Remove(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return s.notFoundOrInternal(err, "remove gym")
	}
	s.log.Info("gym removed", logger.GymID(id))
	return nil
}

func (s *gymService) notFoundOrInternal(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return httperrors.ErrNotFound.WithMessage("Gym not found")
	}
	s.log.Error(op+" failed", logger.Err(err))
	return httperrors.ErrInternal.WithCause(err)
}

func toAPI(g *repository.Gym) *api.Gym {
	return &api.Gym{
		ID:        g.ID,
		Name:      g.Name,
		Email:     g.Email,
		Phone:     g.Phone,
		Address:   g.Address,
		City:      g.City,
		Country:   g.Country,
		IsActive:  g.IsActive,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
