// Package controllers holds the HTTP endpoints. Controllers stay thin:
// parse input, call a service, shape the response.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/launchpad/app/resources"
	"github.com/shashiranjanraj/launchpad/app/services"
	"github.com/shashiranjanraj/launchpad/config"
	"github.com/shashiranjanraj/launchpad/internal/store"
	"github.com/shashiranjanraj/launchpad/pkg/ctx"
	"github.com/shashiranjanraj/launchpad/pkg/logger"
	"github.com/shashiranjanraj/launchpad/pkg/resource"
	"github.com/shashiranjanraj/launchpad/pkg/session"
)

// userID resolves the acting user: explicit userId query/body value first,
// demo user otherwise. The demo runs single-user, so there is no auth.
func userID(c *ctx.Context) string {
	if id := c.Query("userId"); id != "" {
		return id
	}
	return config.DemoUserID()
}

// recentlyViewedMax caps the session's recently-viewed list.
const recentlyViewedMax = 10

// CatalogController serves product pages: catalogue, detail, search,
// trending, recommended, and reviews.
type CatalogController struct {
	Catalog *services.Catalog
}

// Index handles GET /api/products?tag=&limit=.
func (cc *CatalogController) Index(c *ctx.Context) {
	filter := store.ProductFilter{Tag: c.Query("tag")}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.Error(http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = n
	}

	products := cc.Catalog.Products(c.Context(), filter)
	resource.Many(products, resources.ProductCard).
		WithMeta(resource.Map{"count": len(products)}).
		Respond(c.W)
}

// Show handles GET /api/products/{id}.
func (cc *CatalogController) Show(c *ctx.Context) {
	id := c.Param("id")

	product, ok := cc.Catalog.Product(c.Context(), id)
	if !ok {
		c.NotFound("product not found")
		return
	}

	cc.recordView(c, id)

	// The product page shows the reviews inline, so they ride along.
	reviews := cc.Catalog.Reviews(c.Context(), id)
	resource.One(product, resources.ProductDetail).
		WithMeta(resource.Map{"reviews": reviews, "reviewCount": len(reviews)}).
		Respond(c.W)
}

// Search handles GET /api/search?q=.
func (cc *CatalogController) Search(c *ctx.Context) {
	products := cc.Catalog.Search(c.Context(), c.Query("q"))
	resource.Many(products, resources.ProductCard).
		WithMeta(resource.Map{"count": len(products)}).
		Respond(c.W)
}

// Trending handles GET /api/trending.
func (cc *CatalogController) Trending(c *ctx.Context) {
	resource.Many(cc.Catalog.Trending(c.Context()), resources.ProductCard).Respond(c.W)
}

// Recommended handles GET /api/recommended?userId=.
func (cc *CatalogController) Recommended(c *ctx.Context) {
	products := cc.Catalog.Recommended(c.Context(), userID(c))
	resource.Many(products, resources.ProductCard).Respond(c.W)
}

// Reviews handles GET /api/products/{id}/reviews.
func (cc *CatalogController) Reviews(c *ctx.Context) {
	c.Success(cc.Catalog.Reviews(c.Context(), c.Param("id")))
}

// reviewInput is the POST body for creating a review. The product comes
// from the URL, the user defaults to the demo user.
type reviewInput struct {
	UserID string `json:"userId"`
	Body   string `json:"body"  validate:"required,max=2000"`
	Stars  int    `json:"stars" validate:"required,gte=1,lte=5"`
}

// CreateReview handles POST /api/products/{id}/reviews.
func (cc *CatalogController) CreateReview(c *ctx.Context) {
	var input reviewInput
	if !c.BindJSON(&input) {
		return
	}
	if input.UserID == "" {
		input.UserID = config.DemoUserID()
	}

	review, err := cc.Catalog.AddReview(c.Context(), store.ReviewDraft{
		ProductID: c.Param("id"),
		UserID:    input.UserID,
		Body:      input.Body,
		Stars:     input.Stars,
	})
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			c.NotFound("product not found")
			return
		}
		c.Error(http.StatusInternalServerError, err.Error())
		return
	}

	c.Created(review)
}

// recordView appends the product to the session's recently-viewed list,
// newest first, deduplicated, capped.
func (cc *CatalogController) recordView(c *ctx.Context, productID string) {
	sess := session.FromCtx(c.R)

	var recent []string
	if raw, ok := sess.Get("recently_viewed"); ok {
		if list, ok := raw.([]interface{}); ok {
			for _, v := range list {
				if s, ok := v.(string); ok && s != productID {
					recent = append(recent, s)
				}
			}
		}
	}

	recent = append([]string{productID}, recent...)
	if len(recent) > recentlyViewedMax {
		recent = recent[:recentlyViewedMax]
	}

	sess.Set("recently_viewed", recent)
	if err := sess.Save(c.W); err != nil {
		logger.WithCtx(c.Context()).Warn("session save failed", "error", err)
	}
}
