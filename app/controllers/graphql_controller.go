package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/launchpad/pkg/ctx"
)

// GraphQLController executes queries against the catalogue schema.
type GraphQLController struct {
	Schema graphql.Schema
}

// graphqlRequest is the standard GraphQL-over-HTTP POST body.
type graphqlRequest struct {
	Query         string                 `json:"query" validate:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Query handles POST /graphql, and GET /graphql with the query in the URL.
func (gc *GraphQLController) Query(c *ctx.Context) {
	var req graphqlRequest
	if c.Method() == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if req.Query == "" {
			c.Error(http.StatusBadRequest, "query parameter is required")
			return
		}
	} else if !c.BindJSON(&req) {
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         gc.Schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Context(),
	})

	// GraphQL reports field errors in-band with HTTP 200.
	c.JSON(http.StatusOK, result)
}
