package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/launchpad/app/services"
	"github.com/shashiranjanraj/launchpad/config"
	"github.com/shashiranjanraj/launchpad/internal/store"
	"github.com/shashiranjanraj/launchpad/pkg/ctx"
)

// CartController serves the cart page and its mutation endpoints.
type CartController struct {
	Carts *services.Carts
}

// Show handles GET /api/cart?userId=.
func (cc *CartController) Show(c *ctx.Context) {
	cart := cc.Carts.Cart(c.Context(), userID(c))
	c.Success(map[string]interface{}{
		"cart":          cart,
		"itemCount":     cart.ItemCount(),
		"subtotalCents": cart.Subtotal(),
	})
}

// Count handles GET /api/cart-count?userId= — the header badge.
func (cc *CartController) Count(c *ctx.Context) {
	c.Success(map[string]int{"count": cc.Carts.Count(c.Context(), userID(c))})
}

// cartInput is the body for add/update/remove. Quantity semantics differ
// per endpoint: add merges, update sets absolute. A pointer keeps an
// omitted quantity distinguishable from an explicit zero.
type cartInput struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity"`
}

func (in *cartInput) user() string {
	if in.UserID != "" {
		return in.UserID
	}
	return config.DemoUserID()
}

// Add handles POST /api/cart. An omitted quantity means one; an explicit
// non-positive quantity is a validation failure.
func (cc *CartController) Add(c *ctx.Context) {
	var input cartInput
	if !c.BindJSON(&input) {
		return
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity <= 0 {
		c.ValidationError(map[string]string{"quantity": "must be a positive integer"})
		return
	}

	cart, err := cc.Carts.Add(c.Context(), input.user(), input.ProductID, quantity)
	if err != nil {
		cc.fail(c, err)
		return
	}
	c.Success(cart)
}

// Update handles POST /api/cart/update — sets a line's quantity to an
// absolute value; zero removes the line, negative is rejected.
func (cc *CartController) Update(c *ctx.Context) {
	var input cartInput
	if !c.BindJSON(&input) {
		return
	}

	if input.Quantity == nil {
		c.ValidationError(map[string]string{"quantity": "is required"})
		return
	}
	if *input.Quantity < 0 {
		c.ValidationError(map[string]string{"quantity": "must be zero or a positive integer"})
		return
	}

	cart, err := cc.Carts.UpdateItem(c.Context(), input.user(), input.ProductID, *input.Quantity)
	if err != nil {
		cc.fail(c, err)
		return
	}
	c.Success(cart)
}

// Remove handles POST /api/cart/remove.
func (cc *CartController) Remove(c *ctx.Context) {
	var input cartInput
	if !c.BindJSON(&input) {
		return
	}

	cart, err := cc.Carts.Remove(c.Context(), input.user(), input.ProductID)
	if err != nil {
		cc.fail(c, err)
		return
	}
	c.Success(cart)
}

// Clear handles POST /api/cart/clear.
func (cc *CartController) Clear(c *ctx.Context) {
	var input struct {
		UserID string `json:"userId"`
	}
	// An empty body is fine here; the demo user is implied.
	_, _ = c.ShouldBindJSON(&input)

	uid := input.UserID
	if uid == "" {
		uid = config.DemoUserID()
	}

	cart, err := cc.Carts.Clear(c.Context(), uid)
	if err != nil {
		cc.fail(c, err)
		return
	}
	c.Success(cart)
}

// Checkout handles POST /api/checkout: snapshots the order, clears the
// cart, and queues the confirmation.
func (cc *CartController) Checkout(c *ctx.Context) {
	var input struct {
		UserID string `json:"userId"`
	}
	_, _ = c.ShouldBindJSON(&input)

	uid := input.UserID
	if uid == "" {
		uid = config.DemoUserID()
	}

	order, err := cc.Carts.Checkout(c.Context(), uid)
	if err != nil {
		if errors.Is(err, store.ErrCartNotFound) {
			c.Error(http.StatusConflict, "cart is empty")
			return
		}
		c.Error(http.StatusInternalServerError, err.Error())
		return
	}
	c.Success(order)
}

func (cc *CartController) fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity):
		c.ValidationError(map[string]string{"quantity": "must be a positive integer"})
	case errors.Is(err, services.ErrInsufficientStock):
		c.ValidationError(map[string]string{"quantity": "exceeds available stock"})
	case errors.Is(err, store.ErrProductNotFound):
		c.NotFound("product not found")
	case errors.Is(err, store.ErrCartNotFound):
		c.NotFound("cart not found")
	case errors.Is(err, store.ErrItemNotFound):
		c.NotFound("item not in cart")
	default:
		c.Error(http.StatusInternalServerError, err.Error())
	}
}
