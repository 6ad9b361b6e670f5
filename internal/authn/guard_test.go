package authn_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymgate/internal/authn"
	"github.com/dropDatabas3/gymgate/internal/httperrors"
	"github.com/dropDatabas3/gymgate/internal/token"
)

func newGuardFixture(t *testing.T, accessTTL time.Duration) (*authn.Guard, *token.Service) {
	t.Helper()
	svc := token.NewService(token.Config{
		AccessSecret:  []byte("guard-access-secret"),
		RefreshSecret: []byte("guard-refresh-secret"),
		AccessTTL:     accessTTL,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	return authn.NewGuard(svc), svc
}

func TestGuard_NoCredential(t *testing.T) {
	guard, _ := newGuardFixture(t, 15*time.Minute)

	r := httptest.NewRequest(http.MethodGet, "/users", nil)
	p, err := guard.Authenticate(authn.FromRequest(r))
	require.Nil(t, p)

	var appErr *httperrors.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
	require.Equal(t, "No token provided", appErr.Message)
}

func TestGuard_ValidToken_AttachesPrincipal(t *testing.T) {
	guard, svc := newGuardFixture(t, 15*time.Minute)

	pair, err := svc.IssuePair("u-77", "coach@gym.test", "trainer", "gym-1", "loc-1")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/users", nil)
	r.AddCookie(&http.Cookie{Name: authn.CookieAccessToken, Value: pair.AccessToken})

	p, err := guard.Authenticate(authn.FromRequest(r))
	require.NoError(t, err)
	require.Equal(t, &authn.Principal{
		UserID:        "u-77",
		Email:         "coach@gym.test",
		Role:          "trainer",
		GymID:         "gym-1",
		GymLocationID: "loc-1",
	}, p)
}

func TestGuard_ExpiredToken(t *testing.T) {
	guard, svc := newGuardFixture(t, -time.Minute)

	pair, err := svc.IssuePair("u-1", "x@gym.test", "member", "", "")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/users", nil)
	r.AddCookie(&http.Cookie{Name: authn.CookieAccessToken, Value: pair.AccessToken})

	p, err := guard.Authenticate(authn.FromRequest(r))
	require.Nil(t, p)

	var appErr *httperrors.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
	require.Equal(t, "Invalid or expired token", appErr.Message)
}

func TestGuard_RefreshTokenRejectedAsAccess(t *testing.T) {
	// El guard jamás acepta un refresh donde espera un access: el refresh
	// está firmado con el otro secreto.
	guard, svc := newGuardFixture(t, 15*time.Minute)

	pair, err := svc.IssuePair("u-1", "x@gym.test", "member", "", "")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/users", nil)
	r.AddCookie(&http.Cookie{Name: authn.CookieAccessToken, Value: pair.RefreshToken})

	_, err = guard.Authenticate(authn.FromRequest(r))
	var appErr *httperrors.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, "Invalid or expired token", appErr.Message)
}

func TestGuard_RESTAndGraphQLParity(t *testing.T) {
	// El invariante central del gateway: mismo material crudo, mismo
	// resultado, sin importar el transporte.
	guard, svc := newGuardFixture(t, 15*time.Minute)

	pair, err := svc.IssuePair("u-9", "same@gym.test", "admin", "g", "l")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/users", nil)
	r.AddCookie(&http.Cookie{Name: authn.CookieAccessToken, Value: pair.AccessToken})

	viaREST, errREST := guard.Authenticate(authn.FromRequest(r))
	viaGQL, errGQL := guard.Authenticate(authn.NewMapCredentials(
		map[string]string{authn.CookieAccessToken: pair.AccessToken}, nil,
	))

	require.NoError(t, errREST)
	require.NoError(t, errGQL)
	require.Equal(t, viaREST, viaGQL)
}
