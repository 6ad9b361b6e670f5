// Package service implementa la lógica de negocio del servicio de usuarios:
// altas con hash de password, verificación de credenciales y ciclo de vida
// de la cuenta. Habla AppError hacia arriba; el handler RPC lo traduce.
package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/dropDatabas3/gymgate/internal/authsvc/api"
	"github.com/dropDatabas3/gymgate/internal/authsvc/repository"
	"github.com/dropDatabas3/gymgate/internal/authz"
	"github.com/dropDatabas3/gymgate/internal/httperrors"
	"github.com/dropDatabas3/gymgate/internal/observability/logger"
	"github.com/dropDatabas3/gymgate/internal/security/password"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service interface {
	Create(ctx context.Context, req *api.CreateUserRequest) (*api.User, error)
	List(ctx context.Context, req *api.ListUsersRequest) (*api.ListUsersResponse, error)
	Get(ctx context.Context, id string) (*api.User, error)
	GetByEmail(ctx context.Context, email string) (*api.User, error)
	Update(ctx context.Context, req *api.UpdateUserRequest) (*api.User, error)
	Remove(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) (*api.User, error)
	Deactivate(ctx context.Context, id string) (*api.User, error)
	VerifyCredentials(ctx context.Context, email, plain string) (*api.User, error)
}

type Deps struct {
	Repo repository.Users
}

type userService struct {
	repo repository.Users
	log  *zap.Logger
}

func NewUserService(deps Deps) Service {
	return &userService{
		repo: deps.Repo,
		log:  logger.L().With(logger.Layer("service"), logger.Component("users")),
	}
}

func (s *userService) Create(ctx context.Context, req *api.CreateUserRequest) (*api.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, httperrors.ErrBadRequest.WithDetail("email and password are required")
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, httperrors.ErrInternal.WithCause(err)
	}

	role := authz.ParseRole(req.Role)
	if req.Role == "" {
		role = authz.RoleMember
	}

	u := &repository.User{
		Email:         email,
		PasswordHash:  hash,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Phone:         req.Phone,
		Role:          role.String(),
		GymID:         req.GymID,
		GymLocationID: req.GymLocationID,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, httperrors.ErrAlreadyExists.WithMessage("User already exists")
		}
		s.log.Error("create user failed", logger.Err(err))
		return nil, httperrors.ErrInternal.WithCause(err)
	}

	s.log.Info("user created", logger.UserID(u.ID), logger.RoleName(u.Role))
	return toAPI(u), nil
}

func (s *userService) List(ctx context.Context, req *api.ListUsersRequest) (*api.ListUsersResponse, error) {
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

	users, total, err := s.repo.List(ctx, repository.ListFilter{
		Offset:          (page - 1) * size,
		Limit:           size,
		Search:          strings.TrimSpace(req.Search),
		Role:            req.Role,
		GymID:           req.GymID,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		s.log.Error("list users failed", logger.Err(err))
		return nil, httperrors.ErrInternal.WithCause(err)
	}

	out := make([]api.User, 0, len(users))
	for i := range users {
		out = append(out, *toAPI(&users[i]))
	}
	return &api.ListUsersResponse{Users: out, Total: total, Page: page, PageSize: size}, nil
}

func (s *userService) Get(ctx context.Context, id string) (*api.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOrInternal(err, "get user")
	}
	return toAPI(u), nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*api.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.notFoundOrInternal(err, "get user by email")
	}
	return toAPI(u), nil
}

func (s *userService) Update(ctx context.Context, req *api.UpdateUserRequest) (*api.User, error) {
	if req.ID == "" {
		return nil, httperrors.ErrBadRequest.WithDetail("id is required")
	}
	u, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, s.notFoundOrInternal(err, "update user")
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, httperrors.ErrBadRequest.WithDetail("email cannot be empty")
		}
		u.Email = email
	}
	if req.Password != nil {
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return nil, httperrors.ErrInternal.WithCause(err)
		}
		u.PasswordHash = hash
	}
	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Role != nil {
		u.Role = authz.ParseRole(*req.Role).String()
	}
	if req.GymID != nil {
		u.GymID = *req.GymID
	}
	if req.GymLocationID != nil {
		u.GymLocationID = *req.GymLocationID
	}

	if err := s.repo.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, httperrors.ErrAlreadyExists.WithMessage("User already exists")
		}
		return nil, s.notFoundOrInternal(err, "update user")
	}

	// El cambio de password re-hashea pero no cambia lo proyectado.
	if req.Password != nil {
		s.log.Info("user password changed", logger.UserID(u.ID))
	}
	return toAPI(u), nil
}

func (s *userService) Remove(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return s.notFoundOrInternal(err, "remove user")
	}
	s.log.Info("user removed", logger.UserID(id))
	return nil
}

func (s *userService) Activate(ctx context.Context, id string) (*api.User, error) {
	return s.setActive(ctx, id, true)
}

func (s *userService) Deactivate(ctx context.Context, id string) (*api.User, error) {
	return s.setActive(ctx, id, false)
}

func (s *userService) setActive(ctx context.Context, id string, active bool) (*api.User, error) {
	u, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, s.notFoundOrInternal(err, "set active")
	}
	s.log.Info("user active flag changed", logger.UserID(id), logger.Bool("active", active))
	return toAPI(u), nil
}

// VerifyCredentials no distingue hacia afuera entre "email inexistente" y
// "password incorrecto": ambos son Invalid credentials. La cuenta desactivada
// sí se distingue, pero recién DESPUÉS de verificar el password.
func (s *userService) VerifyCredentials(ctx context.Context, email, plain string) (*api.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperrors.ErrInvalidCredentials
		}
		s.log.Error("verify credentials failed", logger.Err(err))
		return nil, httperrors.ErrInternal.WithCause(err)
	}
	if !password.Verify(plain, u.PasswordHash) {
		return nil, httperrors.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, httperrors.ErrAccountDeactivated
	}
	return toAPI(u), nil
}

func (s *userService) notFoundOrInternal(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return httperrors.ErrUserNotFound
	}
	s.log.Error(op+" failed", logger.Err(err))
	return httperrors.ErrInternal.WithCause(err)
}

func toAPI(u *repository.User) *api.User {
	return &api.User{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Phone:         u.Phone,
		Role:          u.Role,
		GymID:         u.GymID,
		GymLocationID: u.GymLocationID,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
