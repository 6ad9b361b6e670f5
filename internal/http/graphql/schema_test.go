package graphql_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	graphqlgo "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymgate/internal/authn"
	userapi "github.com/dropDatabas3/gymgate/internal/authsvc/api"
	"github.com/dropDatabas3/gymgate/internal/authz"
	gymapi "github.com/dropDatabas3/gymgate/internal/gymsvc/api"
	gqledge "github.com/dropDatabas3/gymgate/internal/http/graphql"
	"github.com/dropDatabas3/gymgate/internal/httperrors"
	"github.com/dropDatabas3/gymgate/internal/token"
)

type fakeUsers struct {
	removed []string
}

func (f *fakeUsers) Create(_ context.Context, in userapi.CreateUserRequest) (*userapi.User, error) {
	return &userapi.User{ID: "u-new", Email: in.Email, Role: "member", IsActive: true}, nil
}
func (f *fakeUsers) Get(_ context.Context, id string) (*userapi.User, error) {
	return &userapi.User{ID: id, Email: id + "@gym.test", Role: "member", IsActive: true}, nil
}
func (f *fakeUsers) GetFresh(ctx context.Context, id string) (*userapi.User, error) {
	return f.Get(ctx, id)
}
func (f *fakeUsers) Remove(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return nil
}
func (f *fakeUsers) List(context.Context, userapi.ListUsersRequest) (*userapi.ListUsersResponse, error) {
	return &userapi.ListUsersResponse{}, nil
}
func (f *fakeUsers) GetByEmail(context.Context, string) (*userapi.User, error) {
	return nil, httperrors.ErrUserNotFound
}
func (f *fakeUsers) Update(_ context.Context, in userapi.UpdateUserRequest) (*userapi.User, error) {
	u := &userapi.User{ID: in.ID, Role: "member"}
	if in.Role != nil {
		u.Role = *in.Role
	}
	return u, nil
}
func (f *fakeUsers) Activate(context.Context, string) (*userapi.User, error) {
	return nil, httperrors.ErrInternal
}
func (f *fakeUsers) Deactivate(context.Context, string) (*userapi.User, error) {
	return nil, httperrors.ErrInternal
}
func (f *fakeUsers) VerifyCredentials(context.Context, string, string) (*userapi.User, error) {
	return nil, httperrors.ErrInvalidCredentials
}

type fakeGyms struct{}

func (fakeGyms) Create(context.Context, gymapi.CreateGymRequest) (*gymapi.Gym, error) {
	return &gymapi.Gym{ID: "g-1"}, nil
}
func (fakeGyms) List(context.Context, gymapi.ListGymsRequest) (*gymapi.ListGymsResponse, error) {
	return &gymapi.ListGymsResponse{}, nil
}
func (fakeGyms) Get(context.Context, string) (*gymapi.Gym, error) {
	return nil, httperrors.ErrNotFound
}
func (fakeGyms) Update(context.Context, gymapi.UpdateGymRequest) (*gymapi.Gym, error) {
	return nil, httperrors.ErrInternal
}
func (fakeGyms) Remove(context.Context, string) error { return nil }

type fixture struct {
	schema graphqlgo.Schema
	tokens *token.Service
	users  *fakeUsers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens := token.NewService(token.Config{
		AccessSecret:  []byte("gql-test-access"),
		RefreshSecret: []byte("gql-test-refresh"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	users := &fakeUsers{}
	schema, err := gqledge.NewSchema(gqledge.Deps{
		Guard:  authn.NewGuard(tokens),
		Engine: authz.NewEngine(),
		Users:  users,
		Gyms:   fakeGyms{},
	})
	require.NoError(t, err)
	return &fixture{schema: schema, tokens: tokens, users: users}
}

// run ejecuta una operación con las credenciales dadas en el contexto,
// igual que lo hace el handler HTTP.
func (f *fixture) run(query string, creds authn.Credentials) *graphqlgo.Result {
	ctx := context.Background()
	if creds != nil {
		ctx = authn.WithCredentials(ctx, creds)
	}
	return graphqlgo.Do(graphqlgo.Params{Schema: f.schema, RequestString: query, Context: ctx})
}

func (f *fixture) bearer(t *testing.T, userID, role string) authn.Credentials {
	t.Helper()
	pair, err := f.tokens.IssuePair(userID, userID+"@gym.test", role, "", "")
	require.NoError(t, err)
	h := http.Header{}
	h.Set("Authorization", "Bearer "+pair.AccessToken)
	return authn.NewMapCredentials(nil, h)
}

func TestCreateUser_PublicMutation(t *testing.T) {
	f := newFixture(t)

	res := f.run(`mutation { createUser(email: "new@gym.test", password: "secretpass", firstName: "N", lastName: "U") { id email } }`, nil)
	require.False(t, res.HasErrors(), "%v", res.Errors)

	data := res.Data.(map[string]any)
	created := data["createUser"].(map[string]any)
	require.Equal(t, "new@gym.test", created["email"])
}

func TestGuardedQuery_WithoutCredentials(t *testing.T) {
	f := newFixture(t)

	res := f.run(`{ users { total } }`, nil)
	require.True(t, res.HasErrors())
	require.Equal(t, "No token provided", res.Errors[0].Message)
	require.NotContains(t, res.Errors[0].Message, "[")
}

func TestGuardedQuery_GarbageToken(t *testing.T) {
	f := newFixture(t)
	h := http.Header{}
	h.Set("Authorization", "Bearer garbage")

	res := f.run(`{ users { total } }`, authn.NewMapCredentials(nil, h))
	require.True(t, res.HasErrors())
	// El mensaje viaja limpio: sin prefijo de código ni causa interna.
	require.Equal(t, "Invalid or expired token", res.Errors[0].Message)
	require.NotContains(t, res.Errors[0].Message, "TOKEN_INVALID")
	require.NotContains(t, res.Errors[0].Message, ":")
}

func TestRemoveUser_RequiresPermission(t *testing.T) {
	f := newFixture(t)

	res := f.run(`mutation { removeUser(id: "victim") }`, f.bearer(t, "u-member", "member"))
	require.True(t, res.HasErrors())
	require.Empty(t, f.users.removed)

	res = f.run(`mutation { removeUser(id: "victim") }`, f.bearer(t, "u-admin", "admin"))
	require.False(t, res.HasErrors(), "%v", res.Errors)
	require.Equal(t, []string{"victim"}, f.users.removed)
}

func TestUserQuery_SelfScoping(t *testing.T) {
	f := newFixture(t)
	creds := f.bearer(t, "u-self", "member")

	res := f.run(`{ user(id: "u-self") { email } }`, creds)
	require.False(t, res.HasErrors(), "%v", res.Errors)

	res = f.run(`{ user(id: "u-other") { email } }`, creds)
	require.True(t, res.HasErrors())
}

func TestUpdateUser_SelfCannotEscalateRole(t *testing.T) {
	f := newFixture(t)

	res := f.run(`mutation { updateUser(id: "u-self", role: "admin") { role } }`, f.bearer(t, "u-self", "member"))
	require.False(t, res.HasErrors(), "%v", res.Errors)

	data := res.Data.(map[string]any)
	updated := data["updateUser"].(map[string]any)
	// El rol pedido se descarta: el fake devuelve el rol efectivo del request.
	require.Equal(t, "member", updated["role"])
}
