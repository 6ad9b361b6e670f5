package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymgate/internal/authn"
	"github.com/dropDatabas3/gymgate/internal/authz"
	mw "github.com/dropDatabas3/gymgate/internal/http/middlewares"
	"github.com/dropDatabas3/gymgate/internal/token"
)

func testGuard(t *testing.T) (*authn.Guard, *token.Service) {
	t.Helper()
	tokens := token.NewService(token.Config{
		AccessSecret:  []byte("mw-test-access"),
		RefreshSecret: []byte("mw-test-refresh"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	return authn.NewGuard(tokens), tokens
}

// echo registra si el handler corrió y con qué principal.
func echo(ran *bool, principal **authn.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*ran = true
		*principal = authn.PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func accessCookie(t *testing.T, tokens *token.Service, userID, role string) *http.Cookie {
	t.Helper()
	pair, err := tokens.IssuePair(userID, userID+"@gym.test", role, "", "")
	require.NoError(t, err)
	return &http.Cookie{Name: authn.CookieAccessToken, Value: pair.AccessToken}
}

func TestWithAuth_RequiredRejectsMissingToken(t *testing.T) {
	guard, _ := testGuard(t)
	var ran bool
	var p *authn.Principal

	h := mw.WithAuth(mw.AuthConfig{Guard: guard, Engine: authz.NewEngine(), Mode: authn.AuthRequired})(echo(&ran, &p))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, ran)
}

func TestWithAuth_RequiredAttachesPrincipal(t *testing.T) {
	guard, tokens := testGuard(t)
	var ran bool
	var p *authn.Principal

	h := mw.WithAuth(mw.AuthConfig{Guard: guard, Engine: authz.NewEngine(), Mode: authn.AuthRequired})(echo(&ran, &p))

	req := httptest.NewRequest("GET", "/x", nil)
	req.AddCookie(accessCookie(t, tokens, "u-1", "admin"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ran)
	require.NotNil(t, p)
	require.Equal(t, "u-1", p.UserID)
}

func TestWithAuth_PublicPassesWithoutPrincipal(t *testing.T) {
	guard, _ := testGuard(t)
	var ran bool
	var p *authn.Principal

	h := mw.WithAuth(mw.AuthConfig{Guard: guard, Engine: authz.NewEngine(), Mode: authn.AuthPublic})(echo(&ran, &p))

	req := httptest.NewRequest("GET", "/x", nil)
	req.AddCookie(&http.Cookie{Name: authn.CookieAccessToken, Value: "garbage"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ran)
	require.Nil(t, p)
}

func TestWithAuth_PublicStillAttachesValidPrincipal(t *testing.T) {
	guard, tokens := testGuard(t)
	var ran bool
	var p *authn.Principal

	h := mw.WithAuth(mw.AuthConfig{Guard: guard, Engine: authz.NewEngine(), Mode: authn.AuthPublic})(echo(&ran, &p))

	req := httptest.NewRequest("GET", "/x", nil)
	req.AddCookie(accessCookie(t, tokens, "u-2", "member"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, ran)
	require.NotNil(t, p)
	require.Equal(t, "u-2", p.UserID)
}

func TestWithAuth_PermissionDenied(t *testing.T) {
	guard, tokens := testGuard(t)
	var ran bool
	var p *authn.Principal

	h := mw.WithAuth(mw.AuthConfig{
		Guard:   guard,
		Engine:  authz.NewEngine(),
		Mode:    authn.AuthRequired,
		Require: &authz.Permission{Resource: "users", Action: "delete"},
	})(echo(&ran, &p))

	req := httptest.NewRequest("GET", "/x", nil)
	req.AddCookie(accessCookie(t, tokens, "u-3", "member"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, ran)
}

func TestWithAuth_BearerHeaderWorksToo(t *testing.T) {
	guard, tokens := testGuard(t)
	var ran bool
	var p *authn.Principal

	h := mw.WithAuth(mw.AuthConfig{Guard: guard, Engine: authz.NewEngine(), Mode: authn.AuthRequired})(echo(&ran, &p))

	pair, err := tokens.IssuePair("u-4", "u-4@gym.test", "staff", "", "")
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ran)
	require.Equal(t, "u-4", p.UserID)
}
