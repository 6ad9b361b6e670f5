// Package graphql implementa el edge GraphQL del gateway. Las operaciones
// pegan contra los mismos servicios que REST y pasan por el mismo guard:
// la política por operación se declara acá, no en la ruta HTTP.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/dropDatabas3/gymgate/internal/authn"
	authapi "github.com/dropDatabas3/gymgate/internal/authsvc/api"
	"github.com/dropDatabas3/gymgate/internal/authz"
	gymapi "github.com/dropDatabas3/gymgate/internal/gymsvc/api"
	gymsvc "github.com/dropDatabas3/gymgate/internal/http/services/gyms"
	usersvc "github.com/dropDatabas3/gymgate/internal/http/services/users"
	"github.com/dropDatabas3/gymgate/internal/httperrors"
)

// Deps contiene las dependencias del schema.
type Deps struct {
	Guard  *authn.Guard
	Engine *authz.Engine
	Users  usersvc.Service
	Gyms   gymsvc.Service
}

type resolveFn func(p graphql.ResolveParams, principal *authn.Principal) (any, error)

// clientError es el error que cruza al array errors del body GraphQL.
// Error() devuelve el mismo texto que REST pone en el campo message; el
// código y el status viajan en extensions. La cadena de causas interna
// nunca llega al cliente.
type clientError struct {
	app *httperrors.AppError
}

func (e *clientError) Error() string { return e.app.Message }

func (e *clientError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":       e.app.Code,
		"statusCode": e.app.HTTPStatus,
	}
}

func asClientError(err error) error {
	if err == nil {
		return nil
	}
	return &clientError{app: httperrors.FromError(err)}
}

// guarded autentica la operación con las credenciales del contexto y,
// si corresponde, exige el permiso dado. Mismo guard que REST; todo error
// sale reducido a su mensaje de cliente.
func (d Deps) guarded(require *authz.Permission, resolve resolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		principal, err := d.Guard.Authenticate(authn.CredentialsFrom(p.Context))
		if err != nil {
			return nil, asClientError(err)
		}
		if require != nil {
			if err := d.Engine.Authorize(principal, require); err != nil {
				return nil, asClientError(err)
			}
		}
		out, err := resolve(p, principal)
		if err != nil {
			return nil, asClientError(err)
		}
		return out, nil
	}
}

func argString(p graphql.ResolveParams, name string) string {
	if v, ok := p.Args[name].(string); ok {
		return v
	}
	return ""
}

func argInt(p graphql.ResolveParams, name string, def int) int {
	if v, ok := p.Args[name].(int); ok && v > 0 {
		return v
	}
	return def
}

func argBool(p graphql.ResolveParams, name string) bool {
	v, _ := p.Args[name].(bool)
	return v
}

func argStringPtr(p graphql.ResolveParams, name string) *string {
	if v, ok := p.Args[name].(string); ok {
		return &v
	}
	return nil
}

// NewSchema arma el schema del edge.
func NewSchema(d Deps) (graphql.Schema, error) {
	pagingArgs := graphql.FieldConfigArgument{
		"page":            &graphql.ArgumentConfig{Type: graphql.Int},
		"pageSize":        &graphql.ArgumentConfig{Type: graphql.Int},
		"search":          &graphql.ArgumentConfig{Type: graphql.String},
		"includeInactive": &graphql.ArgumentConfig{Type: graphql.Boolean},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": {
				Type: userType,
				Resolve: d.guarded(nil, func(p graphql.ResolveParams, principal *authn.Principal) (any, error) {
					return d.Users.Get(p.Context, principal.UserID)
				}),
			},
			"user": {
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: d.guarded(nil, func(p graphql.ResolveParams, principal *authn.Principal) (any, error) {
					id := argString(p, "id")
					if err := d.Engine.AuthorizeSelf(principal, "users", "read", id); err != nil {
						return nil, err
					}
					return d.Users.Get(p.Context, id)
				}),
			},
			"userByEmail": {
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: d.guarded(&authz.Permission{Resource: "users", Action: "read"}, func(p graphql.ResolveParams, _ *authn.Principal) (any, error) {
					return d.Users.GetByEmail(p.Context, argString(p, "email"))
				}),
			},
			"users": {
				Type: userListType,
				Args: mergeArgs(pagingArgs, graphql.FieldConfigArgument{
					"role":  &graphql.ArgumentConfig{Type: graphql.String},
					"gymId": &graphql.ArgumentConfig{Type: graphql.ID},
				}),
				Resolve: d.guarded(&authz.Permission{Resource: "users", Action: "read"}, func(p graphql.ResolveParams, _ *authn.Principal) (any, error) {
					return d.Users.List(p.Context, authapi.ListUsersRequest{
						Page:            argInt(p, "page", 1),
						PageSize:        argInt(p, "pageSize", 20),
						Search:          argString(p, "search"),
						Role:            argString(p, "role"),
						GymID:           argString(p, "gymId"),
						IncludeInactive: argBool(p, "includeInactive"),
					})
				}),
			},
			"gym": {
				Type: gymType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: d.guarded(&authz.Permission{Resource: "gyms", Action: "read"}, func(p graphql.ResolveParams, _ *authn.Principal) (any, error) {
					return d.Gyms.Get(p.Context, argString(p, "id"))
				}),
			},
			"gyms": {
				Type: gymListType,
				Args: pagingArgs,
				Resolve: d.guarded(&authz.Permission{Resource: "gyms", Action: "read"}, func(p graphql.ResolveParams, _ *authn.Principal) (any, error) {
					return d.Gyms.List(p.Context, gymapi.ListGymsRequest{
						Page:            argInt(p, "page", 1),
						PageSize:        argInt(p, "pageSize", 20),
						Search:          argString(p, "search"),
						IncludeInactive: argBool(p, "includeInactive"),
					})
				}),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			// createUser es la única mutación pública: registro inicial.
			"createUser": {
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"email":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"firstName":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"lastName":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phone":         &graphql.ArgumentConfig{Type: graphql.String},
					"role":          &graphql.ArgumentConfig{Type: graphql.String},
					"gymId":         &graphql.ArgumentConfig{Type: graphql.ID},
					"gymLocationId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					u, err := d.Users.Create(p.Context, authapi.CreateUserRequest{
						Email:         argString(p, "email"),
						Password:      argString(p, "password"),
						FirstName:     argString(p, "firstName"),
						LastName:      argString(p, "lastName"),
						Phone:         argString(p, "phone"),
						Role:          argString(p, "role"),
						GymID:         argString(p, "gymId"),
						GymLocationID: argString(p, "gymLocationId"),
					})
					if err != nil {
						return nil, asClientError(err)
					}
					return u, nil
				},
			},
			"updateUser": {
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id":            &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"email":         &graphql.ArgumentConfig{Type: graphql.String},
					"password":      &graphql.ArgumentConfig{Type: graphql.String},
					"firstName":     &graphql.ArgumentConfig{Type: graphql.String},
					"lastName":      &graphql.ArgumentConfig{Type: graphql.String},
					"phone":         &graphql.ArgumentConfig{Type: graphql.String},
					"role":          &graphql.ArgumentConfig{Type: graphql.String},
					"gymId":         &graphql.ArgumentConfig{Type: graphql.ID},
					"gymLocationId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: d.guarded(nil, func(p graphql.ResolveParams, principal *authn.Principal) (any, error) {
					id := argString(p, "id")
					if err := d.Engine.AuthorizeSelf(principal, "users", "update", id); err != nil {
						return nil, err
					}
					req := authapi.UpdateUserRequest{
						ID:            id,
						Email:         argStringPtr(p, "email"),
						Password:      argStringPtr(p, "password"),
						FirstName:     argStringPtr(p, "firstName"),
						LastName:      argStringPtr(p, "lastName"),
						Phone:         argStringPtr(p, "phone"),
						Role:          argStringPtr(p, "role"),
						GymID:         argStringPtr(p, "gymId"),
						GymLocationID: argStringPtr(p, "gymLocationId"),
					}
					// Self-update no escala rol ni cambia de gimnasio.
					if principal.UserID == id {
						if err := d.Engine.Authorize(principal, &authz.Permission{Resource: "users", Action: "update"}); err != nil {
							req.Role = nil
							req.GymID = nil
							req.GymLocationID = nil
						}
					}
					return d.Users.Update(p.Context, req)
				}),
			},
			"removeUser": {
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: d.guarded(&authz.Permission{Resource: "users", Action: "delete"}, func(p graphql.ResolveParams, _ *authn.Principal) (any, error) {
					if err := d.Users.Remove(p.Context, argString(p, "id")); err != nil {
						return nil, err
					}
					return true, nil
				}),
			},
			"activateUser": {
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: d.guarded(&authz.Permission{Resource: "users", Action: "activate"}, func(p graphql.ResolveParams, _ *authn.Principal) (any, error) {
					return d.Users.Activate(p.Context, argString(p, "id"))
				}),
			},
			"deactivateUser": {
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: d.guarded(&authz.Permission{Resource: "users", Action: "deactivate"}, func(p graphql.ResolveParams, _ *authn.Principal) (any, error) {
					return d.Users.Deactivate(p.Context, argString(p, "id"))
				}),
			},
			"createGym": {
				Type: gymType,
				Args: graphql.FieldConfigArgument{
					"name":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":   &graphql.ArgumentConfig{Type: graphql.String},
					"phone":   &graphql.ArgumentConfig{Type: graphql.String},
					"address": &graphql.ArgumentConfig{Type: graphql.String},
					"city":    &graphql.ArgumentConfig{Type: graphql.String},
					"country": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: d.guarded(&authz.Permission{Resource: "gyms", Action: "create"}, func(p graphql.ResolveParams, _ *authn.Principal) (any, error) {
					return d.Gyms.Create(p.Context, gymapi.CreateGymRequest{
						Name:    argString(p, "name"),
						Email:   argString(p, "email"),
						Phone:   argString(p, "phone"),
						Address: argString(p, "address"),
						City:    argString(p, "city"),
						Country: argString(p, "country"),
					})
				}),
			},
			"updateGym": {
				Type: gymType,
				Args: graphql.FieldConfigArgument{
					"id":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":    &graphql.ArgumentConfig{Type: graphql.String},
					"email":   &graphql.ArgumentConfig{Type: graphql.String},
					"phone":   &graphql.ArgumentConfig{Type: graphql.String},
					"address": &graphql.ArgumentConfig{Type: graphql.String},
					"city":    &graphql.ArgumentConfig{Type: graphql.String},
					"country": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: d.guarded(&authz.Permission{Resource: "gyms", Action: "update"}, func(p graphql.ResolveParams, _ *authn.Principal) (any, error) {
					return d.Gyms.Update(p.Context, gymapi.UpdateGymRequest{
						ID:      argString(p, "id"),
						Name:    argStringPtr(p, "name"),
						Email:   argStringPtr(p, "email"),
						Phone:   argStringPtr(p, "phone"),
						Address: argStringPtr(p, "address"),
						City:    argStringPtr(p, "city"),
						Country: argStringPtr(p, "country"),
					})
				}),
			},
			"removeGym": {
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: d.guarded(&authz.Permission{Resource: "gyms", Action: "delete"}, func(p graphql.ResolveParams, _ *authn.Principal) (any, error) {
					if err := d.Gyms.Remove(p.Context, argString(p, "id")); err != nil {
						return nil, err
					}
					return true, nil
				}),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

func mergeArgs(base, extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	out := graphql.FieldConfigArgument{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
