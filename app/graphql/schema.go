// Package graphql exposes a read-only GraphQL view of the catalogue at
// /graphql, alongside the REST endpoints.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/launchpad/app/services"
	"github.com/shashiranjanraj/launchpad/internal/store"
	gqlschema "github.com/shashiranjanraj/launchpad/pkg/graphql"
)

// productType mirrors the product detail JSON shape.
var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"title":       &graphql.Field{Type: graphql.String},
		"priceCents":  &graphql.Field{Type: graphql.Int},
		"rating":      &graphql.Field{Type: graphql.Float},
		"tags":        &graphql.Field{Type: graphql.NewList(graphql.String)},
		"images":      &graphql.Field{Type: graphql.NewList(graphql.String)},
		"stock":       &graphql.Field{Type: graphql.Int},
		"description": &graphql.Field{Type: graphql.String},
	},
})

// reviewType exposes product reviews.
var reviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Review",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"productId": &graphql.Field{Type: graphql.String},
		"userId":    &graphql.Field{Type: graphql.String},
		"body":      &graphql.Field{Type: graphql.String},
		"stars":     &graphql.Field{Type: graphql.Int},
		"helpful":   &graphql.Field{Type: graphql.Int},
	},
})

// NewSchema builds the read-only catalogue schema over the catalog service.
func NewSchema(catalog *services.Catalog) (graphql.Schema, error) {
	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"tag":   &graphql.ArgumentConfig{Type: graphql.String},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := store.ProductFilter{}
					if tag, ok := p.Args["tag"].(string); ok {
						filter.Tag = tag
					}
					if limit, ok := p.Args["limit"].(int); ok {
						filter.Limit = limit
					}
					return catalog.Products(p.Context, filter), nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					product, ok := catalog.Product(p.Context, id)
					if !ok {
						return nil, nil
					}
					return product, nil
				},
			},
			"trending": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.Trending(p.Context), nil
				},
			},
			"search": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q, _ := p.Args["query"].(string)
					return catalog.Search(p.Context, q), nil
				},
			},
			"reviews": &graphql.Field{
				Type: graphql.NewList(reviewType),
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["productId"].(string)
					return catalog.Reviews(p.Context, id), nil
				},
			},
		},
	})

	return gqlschema.NewSchema(rootQuery)
}
