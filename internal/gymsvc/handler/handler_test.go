package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymgate/internal/gymsvc/api"
	"github.com/dropDatabas3/gymgate/internal/gymsvc/handler"
	"github.com/dropDatabas3/gymgate/internal/gymsvc/repository"
	"github.com/dropDatabas3/gymgate/internal/gymsvc/service"
	"github.com/dropDatabas3/gymgate/internal/rpc"
)

type fakeRepo struct {
	mu   sync.Mutex
	seq  int
	gyms map[string]*repository.Gym
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{gyms: map[string]*repository.Gym{}}
}

func (f *fakeRepo) Create(_ context.Context, g *repository.Gym) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.gyms {
		if other.Name == g.Name {
			return repository.ErrDuplicate
		}
	}
	f.seq++
	g.ID = "g-" + string(rune('0'+f.seq))
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	cp := *g
	f.gyms[g.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*repository.Gym, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.gyms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

// List imita el orden y la paginación del store real (ORDER BY name).
func (f *fakeRepo) List(_ context.Context, filter repository.ListFilter) ([]repository.Gym, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []repository.Gym
	for _, g := range f.gyms {
		all = append(all, *g)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))

	if filter.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

func (f *fakeRepo) Update(_ context.Context, g *repository.Gym) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.gyms[g.ID]; !ok {
		return repository.ErrNotFound
	}
	g.UpdatedAt = time.Now()
	cp := *g
	f.gyms[g.ID] = &cp
	return nil
}

func (f *fakeRepo) SoftDelete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.gyms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.gyms, id)
	return nil
}

func newTestServer(t *testing.T) *rpc.Client {
	t.Helper()
	mux := http.NewServeMux()
	handler.New(service.NewGymService(service.Deps{Repo: newFakeRepo()})).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return rpc.NewClient(srv.URL, 2*time.Second)
}

func TestGymRPC_CreateGetUpdateRemove(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	var created api.Gym
	err := client.Post(ctx, api.PathGymCreate, &api.CreateGymRequest{Name: "Iron Temple", City: "Córdoba"}, &created)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.True(t, created.IsActive)

	var got api.Gym
	err = client.Post(ctx, api.PathGymGet, &api.IDRequest{ID: created.ID}, &got)
	require.NoError(t, err)
	require.Equal(t, "Iron Temple", got.Name)

	city := "Rosario"
	var updated api.Gym
	err = client.Post(ctx, api.PathGymUpdate, &api.UpdateGymRequest{ID: created.ID, City: &city}, &updated)
	require.NoError(t, err)
	require.Equal(t, "Rosario", updated.City)
	require.Equal(t, "Iron Temple", updated.Name)

	err = client.Post(ctx, api.PathGymRemove, &api.IDRequest{ID: created.ID}, nil)
	require.NoError(t, err)

	err = client.Post(ctx, api.PathGymGet, &api.IDRequest{ID: created.ID}, nil)
	env, ok := err.(*rpc.Envelope)
	require.True(t, ok)
	require.Equal(t, rpc.CodeNotFound, env.Code)
	require.Equal(t, "Gym not found", env.Message)
}

func TestGymRPC_DuplicateNameConflicts(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	req := &api.CreateGymRequest{Name: "Duplicado"}
	require.NoError(t, client.Post(ctx, api.PathGymCreate, req, nil))

	err := client.Post(ctx, api.PathGymCreate, req, nil)
	env, ok := err.(*rpc.Envelope)
	require.True(t, ok)
	require.Equal(t, rpc.CodeAlreadyExists, env.Code)
	require.Equal(t, http.StatusConflict, env.Status)
}

func TestGymRPC_ListPagination(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	for _, name := range []string{"Alfa", "Bravo", "Charlie", "Delta", "Echo"} {
		require.NoError(t, client.Post(ctx, api.PathGymCreate, &api.CreateGymRequest{Name: name}, nil))
	}

	var first api.ListGymsResponse
	err := client.Post(ctx, api.PathGymList, &api.ListGymsRequest{Page: 1, PageSize: 2}, &first)
	require.NoError(t, err)
	require.Equal(t, int64(5), first.Total)
	require.Len(t, first.Gyms, 2)
	require.Equal(t, "Alfa", first.Gyms[0].Name)
	require.Equal(t, "Bravo", first.Gyms[1].Name)

	var last api.ListGymsResponse
	err = client.Post(ctx, api.PathGymList, &api.ListGymsRequest{Page: 3, PageSize: 2}, &last)
	require.NoError(t, err)
	require.Equal(t, int64(5), last.Total)
	require.Len(t, last.Gyms, 1)
	require.Equal(t, "Echo", last.Gyms[0].Name)

	// Página fuera de rango: lista vacía pero el total se mantiene.
	var empty api.ListGymsResponse
	err = client.Post(ctx, api.PathGymList, &api.ListGymsRequest{Page: 9, PageSize: 2}, &empty)
	require.NoError(t, err)
	require.Equal(t, int64(5), empty.Total)
	require.Empty(t, empty.Gyms)
}

func TestGymRPC_MissingNameIsInvalidArgument(t *testing.T) {
	client := newTestServer(t)

	err := client.Post(context.Background(), api.PathGymCreate, &api.CreateGymRequest{}, nil)
	env, ok := err.(*rpc.Envelope)
	require.True(t, ok)
	require.Equal(t, rpc.CodeInvalidArgument, env.Code)
}
