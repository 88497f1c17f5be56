package controllers

import (
	"github.com/shashiranjanraj/launchpad/app/resources"
	"github.com/shashiranjanraj/launchpad/app/services"
	"github.com/shashiranjanraj/launchpad/config"
	"github.com/shashiranjanraj/launchpad/pkg/ctx"
	"github.com/shashiranjanraj/launchpad/pkg/resource"
)

// StarredController serves the favorites list and its mutations.
type StarredController struct {
	Profiles *services.Profiles
	Catalog  *services.Catalog
}

// Index handles GET /api/starred?userId= — the user's starred products in
// catalogue storage order.
func (sc *StarredController) Index(c *ctx.Context) {
	products := sc.Profiles.Starred(c.Context(), userID(c))
	resource.Many(products, resources.ProductCard).
		WithMeta(resource.Map{"count": len(products)}).
		Respond(c.W)
}

// Count handles GET /api/starred/count?userId= — the header badge.
func (sc *StarredController) Count(c *ctx.Context) {
	c.Success(map[string]int{"count": sc.Profiles.StarredCount(c.Context(), userID(c))})
}

// Probe handles GET /api/starred/{productId}?userId= — is this product starred?
func (sc *StarredController) Probe(c *ctx.Context) {
	starred := sc.Profiles.IsStarred(c.Context(), userID(c), c.Param("productId"))
	c.Success(map[string]bool{"starred": starred})
}

// starInput is the body for star mutations.
type starInput struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId" validate:"required"`
}

func (in *starInput) user() string {
	if in.UserID != "" {
		return in.UserID
	}
	return config.DemoUserID()
}

// productExists 404s and returns false when the product id does not resolve.
// The starred list must never hold a dangling product id.
func (sc *StarredController) productExists(c *ctx.Context, productID string) bool {
	if _, ok := sc.Catalog.Product(c.Context(), productID); !ok {
		c.NotFound("product not found")
		return false
	}
	return true
}

// Add handles POST /api/starred. Starring twice is a no-op.
func (sc *StarredController) Add(c *ctx.Context) {
	var input starInput
	if !c.BindJSON(&input) {
		return
	}

	if !sc.productExists(c, input.ProductID) {
		return
	}
	if !sc.Profiles.Star(c.Context(), input.user(), input.ProductID) {
		c.NotFound("user not found")
		return
	}
	c.Success(map[string]bool{"starred": true})
}

// Remove handles POST /api/starred/remove. Removing an absent product is a
// no-op.
func (sc *StarredController) Remove(c *ctx.Context) {
	var input starInput
	if !c.BindJSON(&input) {
		return
	}

	if !sc.Profiles.Unstar(c.Context(), input.user(), input.ProductID) {
		c.NotFound("user not found")
		return
	}
	c.Success(map[string]bool{"starred": false})
}

// AddByPath handles POST /api/starred/{productId}/add — the form-action
// flavor of Add, with the product in the URL.
func (sc *StarredController) AddByPath(c *ctx.Context) {
	if !sc.productExists(c, c.Param("productId")) {
		return
	}
	if !sc.Profiles.Star(c.Context(), userID(c), c.Param("productId")) {
		c.NotFound("user not found")
		return
	}
	c.Success(map[string]bool{"starred": true})
}

// RemoveByPath handles POST /api/starred/{productId}/remove.
func (sc *StarredController) RemoveByPath(c *ctx.Context) {
	if !sc.Profiles.Unstar(c.Context(), userID(c), c.Param("productId")) {
		c.NotFound("user not found")
		return
	}
	c.Success(map[string]bool{"starred": false})
}

// Toggle handles POST /api/starred/toggle.
func (sc *StarredController) Toggle(c *ctx.Context) {
	var input starInput
	if !c.BindJSON(&input) {
		return
	}

	if !sc.productExists(c, input.ProductID) {
		return
	}

	starred, ok := sc.Profiles.ToggleStar(c.Context(), input.user(), input.ProductID)
	if !ok {
		c.NotFound("user not found")
		return
	}
	c.Success(map[string]bool{"starred": starred})
}
