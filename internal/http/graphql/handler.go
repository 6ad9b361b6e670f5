package graphql

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/dropDatabas3/gymgate/internal/authn"
	"github.com/dropDatabas3/gymgate/internal/http/helpers"
	"github.com/dropDatabas3/gymgate/internal/httperrors"
	"github.com/dropDatabas3/gymgate/internal/observability/logger"
)

// Handler sirve POST /graphql. Los errores de auth viajan en el array
// errors del body con status 200, como espera cualquier cliente GraphQL.
type Handler struct {
	schema graphql.Schema
}

func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	var req request
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.Query == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("query is required"))
		return
	}

	// Unificar credenciales: las cookies y headers del request se vuelcan
	// a la misma vista que usa REST, así el guard no distingue transportes.
	cookies := make(map[string]string)
	for _, ck := range r.Cookies() {
		cookies[ck.Name] = ck.Value
	}
	creds := authn.NewMapCredentials(cookies, r.Header)
	ctx := authn.WithCredentials(r.Context(), creds)

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})

	if result.HasErrors() {
		logger.From(ctx).Debug("graphql completed with errors",
			logger.Op(req.OperationName),
			logger.Int("errors", len(result.Errors)),
		)
	}

	helpers.WriteJSON(w, http.StatusOK, result)
}
