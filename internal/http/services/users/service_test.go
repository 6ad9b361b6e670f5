package users_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymgate/internal/authsvc/api"
	memcache "github.com/dropDatabas3/gymgate/internal/cache/memory"
	"github.com/dropDatabas3/gymgate/internal/http/services/users"
	"github.com/dropDatabas3/gymgate/internal/rpc"
)

// backendState simula el servicio de usuarios: cuenta los hits reales y
// permite mutar el registro por fuera del gateway (p.ej. una desactivación
// hecha por otro proceso).
type backendState struct {
	hits int
	user api.User
}

func newUserBackend(t *testing.T) (*backendState, users.Service) {
	t.Helper()
	state := &backendState{
		user: api.User{ID: "u-1", Email: "ana@gym.test", Role: "member", IsActive: true},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+api.PathUserGet, func(w http.ResponseWriter, r *http.Request) {
		state.hits++
		var req api.IDRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, state.user.ID, req.ID)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(state.user)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	svc := users.NewService(users.Deps{
		Client: rpc.NewClient(srv.URL, 2*time.Second),
		Cache:  memcache.New(time.Minute),
	})
	return state, svc
}

func TestGet_ServesFromCache(t *testing.T) {
	state, svc := newUserBackend(t)
	ctx := context.Background()

	u, err := svc.Get(ctx, "u-1")
	require.NoError(t, err)
	require.True(t, u.IsActive)
	require.Equal(t, 1, state.hits)

	// El registro cambia detrás del cache: Get sigue sirviendo lo viejo.
	state.user.IsActive = false
	u, err = svc.Get(ctx, "u-1")
	require.NoError(t, err)
	require.True(t, u.IsActive)
	require.Equal(t, 1, state.hits)
}

func TestGetFresh_BypassesCache(t *testing.T) {
	state, svc := newUserBackend(t)
	ctx := context.Background()

	u, err := svc.Get(ctx, "u-1")
	require.NoError(t, err)
	require.True(t, u.IsActive)
	require.Equal(t, 1, state.hits)

	// Desactivación por fuera del gateway: GetFresh la ve aunque el
	// registro cacheado siga activo.
	state.user.IsActive = false
	u, err = svc.GetFresh(ctx, "u-1")
	require.NoError(t, err)
	require.False(t, u.IsActive)
	require.Equal(t, 2, state.hits)

	// Y deja el cache actualizado para las lecturas siguientes.
	u, err = svc.Get(ctx, "u-1")
	require.NoError(t, err)
	require.False(t, u.IsActive)
	require.Equal(t, 2, state.hits)
}
