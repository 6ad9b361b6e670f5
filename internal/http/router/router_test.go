package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymgate/internal/authn"
	userhandler "github.com/dropDatabas3/gymgate/internal/authsvc/handler"
	userrepo "github.com/dropDatabas3/gymgate/internal/authsvc/repository"
	usersvcimpl "github.com/dropDatabas3/gymgate/internal/authsvc/service"
	"github.com/dropDatabas3/gymgate/internal/authz"
	memcache "github.com/dropDatabas3/gymgate/internal/cache/memory"
	gymhandler "github.com/dropDatabas3/gymgate/internal/gymsvc/handler"
	gymrepo "github.com/dropDatabas3/gymgate/internal/gymsvc/repository"
	gymsvcimpl "github.com/dropDatabas3/gymgate/internal/gymsvc/service"
	authctrl "github.com/dropDatabas3/gymgate/internal/http/controllers/auth"
	gymsctrl "github.com/dropDatabas3/gymgate/internal/http/controllers/gyms"
	healthctrl "github.com/dropDatabas3/gymgate/internal/http/controllers/health"
	usersctrl "github.com/dropDatabas3/gymgate/internal/http/controllers/users"
	gqledge "github.com/dropDatabas3/gymgate/internal/http/graphql"
	"github.com/dropDatabas3/gymgate/internal/http/helpers"
	"github.com/dropDatabas3/gymgate/internal/http/router"
	gatewayauth "github.com/dropDatabas3/gymgate/internal/http/services/auth"
	gatewaygyms "github.com/dropDatabas3/gymgate/internal/http/services/gyms"
	healthsvc "github.com/dropDatabas3/gymgate/internal/http/services/health"
	gatewayusers "github.com/dropDatabas3/gymgate/internal/http/services/users"
	"github.com/dropDatabas3/gymgate/internal/rpc"
	"github.com/dropDatabas3/gymgate/internal/token"
)

// ─── fakes de repositorio para los servicios internos ───

type memUsers struct {
	mu    sync.Mutex
	seq   int
	users map[string]*userrepo.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]*userrepo.User{}} }

func (m *memUsers) Create(_ context.Context, u *userrepo.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.users {
		if strings.EqualFold(other.Email, u.Email) {
			return userrepo.ErrDuplicate
		}
	}
	m.seq++
	u.ID = "user-" + string(rune('a'+m.seq))
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*userrepo.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, userrepo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*userrepo.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, userrepo.ErrNotFound
}

func (m *memUsers) List(_ context.Context, _ userrepo.ListFilter) ([]userrepo.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []userrepo.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (m *memUsers) Update(_ context.Context, u *userrepo.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return userrepo.ErrNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return userrepo.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUsers) SetActive(_ context.Context, id string, active bool) (*userrepo.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, userrepo.ErrNotFound
	}
	u.IsActive = active
	cp := *u
	return &cp, nil
}

type memGyms struct {
	mu   sync.Mutex
	gyms map[string]*gymrepo.Gym
}

func newMemGyms() *memGyms { return &memGyms{gyms: map[string]*gymrepo.Gym{}} }

func (m *memGyms) Create(_ context.Context, g *gymrepo.Gym) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID = "gym-1"
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	cp := *g
	m.gyms[g.ID] = &cp
	return nil
}

func (m *memGyms) GetByID(_ context.Context, id string) (*gymrepo.Gym, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.gyms[id]
	if !ok {
		return nil, gymrepo.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *memGyms) List(_ context.Context, _ gymrepo.ListFilter) ([]gymrepo.Gym, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []gymrepo.Gym
	for _, g := range m.gyms {
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

func (m *memGyms) Update(_ context.Context, g *gymrepo.Gym) error { return nil }
func (m *memGyms) SoftDelete(_ context.Context, id string) error  { return nil }

// ─── armado del gateway completo contra backends in-process ───

type gatewayFixture struct {
	srv    *httptest.Server
	tokens *token.Service
	repo   *memUsers
}

func newGateway(t *testing.T) *gatewayFixture {
	t.Helper()

	repo := newMemUsers()
	backend := http.NewServeMux()
	userhandler.New(usersvcimpl.NewUserService(usersvcimpl.Deps{Repo: repo})).Register(backend)
	gymhandler.New(gymsvcimpl.NewGymService(gymsvcimpl.Deps{Repo: newMemGyms()})).Register(backend)
	backendSrv := httptest.NewServer(backend)
	t.Cleanup(backendSrv.Close)

	tokens := token.NewService(token.Config{
		AccessSecret:  []byte("router-test-access-secret"),
		RefreshSecret: []byte("router-test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
	})
	guard := authn.NewGuard(tokens)
	engine := authz.NewEngine()

	client := rpc.NewClient(backendSrv.URL, 2*time.Second)
	cc := memcache.New(time.Minute)
	users := gatewayusers.NewService(gatewayusers.Deps{Client: client, Cache: cc})
	gyms := gatewaygyms.NewService(gatewaygyms.Deps{Client: client, Cache: cc})
	auth := gatewayauth.NewService(gatewayauth.Deps{Tokens: tokens, Users: users})

	schema, err := gqledge.NewSchema(gqledge.Deps{Guard: guard, Engine: engine, Users: users, Gyms: gyms})
	require.NoError(t, err)

	h := router.New(router.Deps{
		Guard:  guard,
		Engine: engine,
		Auth: authctrl.NewController(auth, authctrl.Config{
			Cookies:    helpers.CookieSettings{SameSite: "Lax"},
			AccessTTL:  15 * time.Minute,
			RefreshTTL: time.Hour,
		}),
		Users:   usersctrl.NewController(users, engine),
		Gyms:    gymsctrl.NewController(gyms),
		Health:  healthctrl.NewController(healthsvc.NewService(nil)),
		GraphQL: gqledge.NewHandler(schema),
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &gatewayFixture{srv: srv, tokens: tokens, repo: repo}
}

func (f *gatewayFixture) do(t *testing.T, method, path string, body any, cookies []*http.Cookie) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func (f *gatewayFixture) createUser(t *testing.T, email string) string {
	t.Helper()
	resp, body := f.do(t, "POST", "/users/create", map[string]string{
		"email":     email,
		"password":  "super-secret-1",
		"firstName": "Test",
		"lastName":  "User",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func (f *gatewayFixture) login(t *testing.T, email string) []*http.Cookie {
	t.Helper()
	resp, _ := f.do(t, "POST", "/auth/login", map[string]string{
		"email":    email,
		"password": "super-secret-1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func cookieValue(cookies []*http.Cookie, name string) string {
	for _, ck := range cookies {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

// ─── escenarios ───

func TestLogin_SetsSessionCookies(t *testing.T) {
	f := newGateway(t)
	f.createUser(t, "login@gym.test")

	cookies := f.login(t, "login@gym.test")
	require.NotEmpty(t, cookieValue(cookies, authn.CookieAccessToken))
	require.NotEmpty(t, cookieValue(cookies, authn.CookieRefreshToken))

	resp, body := f.do(t, "GET", "/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	require.Equal(t, "login@gym.test", user["email"])
}

func TestLogin_WrongPasswordLeavesNoCookies(t *testing.T) {
	f := newGateway(t)
	f.createUser(t, "wrongpw@gym.test")

	resp, body := f.do(t, "POST", "/auth/login", map[string]string{
		"email":    "wrongpw@gym.test",
		"password": "not-the-password",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Invalid credentials", body["message"])
	require.Empty(t, resp.Cookies())
}

func TestCheck_NoCredentials(t *testing.T) {
	f := newGateway(t)

	resp, body := f.do(t, "GET", "/auth/check", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, false, body["authenticated"])
	_, present := body["canRefresh"]
	require.False(t, present)
}

func TestCheck_ExpiredAccessWithLiveRefresh(t *testing.T) {
	f := newGateway(t)
	id := f.createUser(t, "stale@gym.test")

	// Par con access nacido vencido pero refresh vivo, mismos secretos.
	stale := token.NewService(token.Config{
		AccessSecret:  []byte("router-test-access-secret"),
		RefreshSecret: []byte("router-test-refresh-secret"),
		AccessTTL:     -time.Minute,
		RefreshTTL:    time.Hour,
	})
	pair, err := stale.IssuePair(id, "stale@gym.test", "member", "", "")
	require.NoError(t, err)

	cookies := []*http.Cookie{
		{Name: authn.CookieAccessToken, Value: pair.AccessToken},
		{Name: authn.CookieRefreshToken, Value: pair.RefreshToken},
	}

	resp, body := f.do(t, "GET", "/auth/check", nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, false, body["authenticated"])
	require.Equal(t, true, body["canRefresh"])

	// Y /auth/refresh lo rescata con un par nuevo.
	resp, _ = f.do(t, "POST", "/auth/refresh", nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fresh := resp.Cookies()
	require.NotEmpty(t, cookieValue(fresh, authn.CookieAccessToken))
	require.NotEmpty(t, cookieValue(fresh, authn.CookieRefreshToken))
}

func TestRefresh_DeactivatedUserClearsCookies(t *testing.T) {
	f := newGateway(t)
	id := f.createUser(t, "inactive@gym.test")
	cookies := f.login(t, "inactive@gym.test")

	_, err := f.repo.SetActive(context.Background(), id, false)
	require.NoError(t, err)

	resp, body := f.do(t, "POST", "/auth/refresh", nil, cookies)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "User account is deactivated", body["message"])

	// Ambas cookies deben volver vacías y vencidas.
	cleared := resp.Cookies()
	require.Len(t, cleared, 2)
	for _, ck := range cleared {
		require.Empty(t, ck.Value)
		require.True(t, ck.MaxAge < 0 || ck.Expires.Before(time.Now()))
	}
}

func TestLogout_AlwaysSucceeds(t *testing.T) {
	f := newGateway(t)

	resp, body := f.do(t, "POST", "/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Logout successful", body["message"])
	require.Len(t, resp.Cookies(), 2)
}

func TestUsers_MemberSelfScoping(t *testing.T) {
	f := newGateway(t)
	selfID := f.createUser(t, "self@gym.test")
	otherID := f.createUser(t, "other@gym.test")
	cookies := f.login(t, "self@gym.test")

	// Un member no lista usuarios.
	resp, _ := f.do(t, "GET", "/users/", nil, cookies)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Pero sí se lee a sí mismo.
	resp, body := f.do(t, "GET", "/users/"+selfID, nil, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "self@gym.test", body["email"])

	// Y no a otro.
	resp, _ = f.do(t, "GET", "/users/"+otherID, nil, cookies)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProtectedRoute_WithoutToken(t *testing.T) {
	f := newGateway(t)

	resp, body := f.do(t, "GET", "/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "No token provided", body["message"])
}

func TestGraphQL_ParityWithREST(t *testing.T) {
	f := newGateway(t)
	f.createUser(t, "gql@gym.test")

	// Sin credenciales: mismo mensaje que REST, status 200 con errors.
	resp, body := f.do(t, "POST", "/graphql", map[string]string{
		"query": "{ me { email } }",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	errs := body["errors"].([]any)
	first := errs[0].(map[string]any)
	require.Equal(t, "No token provided", first["message"])

	// Con la cookie de sesión, la misma operación resuelve.
	cookies := f.login(t, "gql@gym.test")
	resp, body = f.do(t, "POST", "/graphql", map[string]string{
		"query": "{ me { email } }",
	}, cookies)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	me := data["me"].(map[string]any)
	require.Equal(t, "gql@gym.test", me["email"])
}

func TestGraphQL_InvalidTokenMessageMatchesREST(t *testing.T) {
	f := newGateway(t)
	garbage := []*http.Cookie{{Name: authn.CookieAccessToken, Value: "not-a-jwt"}}

	resp, restBody := f.do(t, "GET", "/auth/me", nil, garbage)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	restMsg := restBody["message"].(string)

	resp, gqlBody := f.do(t, "POST", "/graphql", map[string]string{
		"query": "{ me { email } }",
	}, garbage)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	errs := gqlBody["errors"].([]any)
	gqlMsg := errs[0].(map[string]any)["message"].(string)

	// Mismo texto en ambos transportes, sin prefijo de código ni causa.
	require.Equal(t, restMsg, gqlMsg)
	require.Equal(t, "Invalid or expired token", gqlMsg)
	require.NotContains(t, gqlMsg, "[")
	require.NotContains(t, gqlMsg, "TOKEN_INVALID")
}

func TestHealthz(t *testing.T) {
	f := newGateway(t)
	resp, body := f.do(t, "GET", "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["status"])
}
