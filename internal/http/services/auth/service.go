// Package auth implementa el flujo de autenticación del gateway: login
// contra el servicio de usuarios, emisión del par de tokens, refresh con
// rotación y el estado de sesión para los clientes.
package auth

import (
	"context"

	"github.com/dropDatabas3/gymgate/internal/authn"
	"github.com/dropDatabas3/gymgate/internal/authsvc/api"
	dto "github.com/dropDatabas3/gymgate/internal/http/dto/auth"
	usersvc "github.com/dropDatabas3/gymgate/internal/http/services/users"
	"github.com/dropDatabas3/gymgate/internal/httperrors"
	"github.com/dropDatabas3/gymgate/internal/metrics"
	"github.com/dropDatabas3/gymgate/internal/observability/logger"
	"github.com/dropDatabas3/gymgate/internal/token"
)

type Service interface {
	Login(ctx context.Context, email, password string) (*dto.UserInfo, *token.Pair, error)
	Refresh(ctx context.Context, creds authn.Credentials) (*dto.UserInfo, *token.Pair, error)
	Check(ctx context.Context, creds authn.Credentials) dto.CheckResponse
	Me(ctx context.Context, principal *authn.Principal) (*dto.UserInfo, error)
}

// Deps contiene las dependencias del servicio de autenticación.
type Deps struct {
	Tokens *token.Service
	Users  usersvc.Service
}

type service struct {
	deps Deps
}

func NewService(deps Deps) Service {
	return &service{deps: deps}
}

func userInfo(u *api.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:            u.ID,
		Email:         u.Email,
		Role:          u.Role,
		GymID:         u.GymID,
		GymLocationID: u.GymLocationID,
	}
}

func claimsInfo(c *token.Claims) *dto.UserInfo {
	return &dto.UserInfo{
		ID:            c.Subject,
		Email:         c.Email,
		Role:          c.Role,
		GymID:         c.GymID,
		GymLocationID: c.GymLocationID,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*dto.UserInfo, *token.Pair, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
	)

	user, err := s.deps.Users.VerifyCredentials(ctx, email, password)
	if err != nil {
		log.Info("login rejected", logger.Email(email), logger.Err(err))
		metrics.AuthResultsTotal.WithLabelValues("login_rejected").Inc()
		return nil, nil, err
	}

	pair, err := s.deps.Tokens.IssuePair(user.ID, user.Email, user.Role, user.GymID, user.GymLocationID)
	if err != nil {
		log.Error("token issue failed", logger.UserID(user.ID), logger.Err(err))
		return nil, nil, httperrors.ErrInternal.WithCause(err)
	}

	log.Info("login ok", logger.UserID(user.ID), logger.RoleName(user.Role))
	metrics.AuthResultsTotal.WithLabelValues("login_ok").Inc()
	return userInfo(user), &pair, nil
}

// Refresh rota el par completo: valida el refresh token, relee el usuario
// sin cache para refrescar rol, gimnasio y estado de la cuenta, y emite
// access + refresh nuevos. Un usuario desactivado no rota nunca.
func (s *service) Refresh(ctx context.Context, creds authn.Credentials) (*dto.UserInfo, *token.Pair, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.refresh"),
	)

	raw := creds.Cookie(authn.CookieRefreshToken)
	if raw == "" {
		return nil, nil, httperrors.ErrTokenMissing
	}

	claims, err := s.deps.Tokens.VerifyRefresh(raw)
	if err != nil {
		log.Debug("refresh token rejected", logger.Err(err))
		metrics.AuthResultsTotal.WithLabelValues("refresh_rejected").Inc()
		return nil, nil, httperrors.ErrTokenInvalid.WithCause(err)
	}

	user, err := s.deps.Users.GetFresh(ctx, claims.Subject)
	if err != nil {
		log.Info("refresh user lookup failed", logger.UserID(claims.Subject), logger.Err(err))
		return nil, nil, err
	}
	if !user.IsActive {
		log.Info("refresh for deactivated user", logger.UserID(user.ID))
		return nil, nil, httperrors.ErrAccountDeactivated
	}

	pair, err := s.deps.Tokens.IssuePair(user.ID, user.Email, user.Role, user.GymID, user.GymLocationID)
	if err != nil {
		return nil, nil, httperrors.ErrInternal.WithCause(err)
	}

	metrics.AuthResultsTotal.WithLabelValues("refresh_ok").Inc()
	return userInfo(user), &pair, nil
}

// Check reporta el estado de sesión sin efectos: nunca emite tokens ni
// toca cookies. CanRefresh sólo aparece cuando el access no sirve pero
// hay un refresh token en juego que podría salvarlo.
func (s *service) Check(ctx context.Context, creds authn.Credentials) dto.CheckResponse {
	if access := authn.BearerToken(creds); access != "" {
		if claims, err := s.deps.Tokens.VerifyAccess(access); err == nil {
			return dto.CheckResponse{Authenticated: true, User: claimsInfo(&claims)}
		}
	}

	refresh := creds.Cookie(authn.CookieRefreshToken)
	if refresh == "" {
		return dto.CheckResponse{Authenticated: false}
	}

	canRefresh := false
	if _, err := s.deps.Tokens.VerifyRefresh(refresh); err == nil {
		canRefresh = true
	}
	return dto.CheckResponse{Authenticated: false, CanRefresh: &canRefresh}
}

// Me devuelve el usuario fresco detrás del principal autenticado.
func (s *service) Me(ctx context.Context, principal *authn.Principal) (*dto.UserInfo, error) {
	if principal == nil {
		return nil, httperrors.ErrUnauthorized
	}
	user, err := s.deps.Users.GetFresh(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return userInfo(user), nil
}
