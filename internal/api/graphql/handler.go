package graphql

import (
	"encoding/json"
	"net/http"

	"blogql/internal/common"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
)

type Handler struct {
	schema graphql.Schema
}

func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// formattedError is the per-error shape clients consume:
// {message, data?, statusCode}.
type formattedError struct {
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	StatusCode int         `json:"statusCode"`
}

type response struct {
	Data   interface{}      `json:"data"`
	Errors []formattedError `json:"errors,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(), // carries the resolved AuthContext
	})

	resp := response{Data: result.Data}
	for _, gqlErr := range result.Errors {
		resp.Errors = append(resp.Errors, formatError(gqlErr))
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func formatError(gqlErr gqlerrors.FormattedError) formattedError {
	orig := gqlErr.OriginalError()
	if orig == nil {
		// Query syntax / type errors have no operation behind them.
		return formattedError{
			Message:    gqlErr.Message,
			StatusCode: http.StatusBadRequest,
		}
	}

	// The executor hands resolver errors back inside (possibly nested)
	// *gqlerrors.Error wrappers, which carry no Unwrap; peel them off so
	// errors.Is reaches the domain sentinels.
	for {
		ge, ok := orig.(*gqlerrors.Error)
		if !ok || ge.OriginalError == nil {
			break
		}
		orig = ge.OriginalError
	}

	fe := formattedError{
		Message:    gqlErr.Message,
		StatusCode: common.HTTPStatusFromError(orig),
	}
	if violations := common.ViolationsFromError(orig); violations != nil {
		fe.Data = violations
	}
	return fe
}
