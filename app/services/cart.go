package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/launchpad/app/events"
	"github.com/shashiranjanraj/launchpad/app/jobs"
	"github.com/shashiranjanraj/launchpad/internal/store"
	"github.com/shashiranjanraj/launchpad/pkg/cache"
	"github.com/shashiranjanraj/launchpad/pkg/event"
	"github.com/shashiranjanraj/launchpad/pkg/logger"
	"github.com/shashiranjanraj/launchpad/pkg/metrics"
	"github.com/shashiranjanraj/launchpad/pkg/queue"
)

// Validation failures raised before a mutation reaches the store. Controllers
// surface these as field-level messages.
var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Order is the summary returned by Checkout. The total is computed from the
// cart as it stood at checkout, before it is cleared.
type Order struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	ItemCount  int       `json:"itemCount"`
	TotalCents int       `json:"totalCents"`
	PlacedAt   time.Time `json:"placedAt"`
}

// Carts serves cart reads and mutations, plus checkout.
type Carts struct {
	store *store.Store
}

// NewCarts creates a Carts service over the given store.
func NewCarts(s *store.Store) *Carts {
	return &Carts{store: s}
}

// Cart returns the user's cart. A user with no cart gets an empty one back,
// without one being created.
func (c *Carts) Cart(ctx context.Context, userID string) store.Cart {
	defer metrics.ObserveStoreOp("get_cart", time.Now())

	cart, ok := c.store.GetCart(ctx, userID)
	if !ok {
		return store.Cart{UserID: userID, Items: []store.CartItem{}}
	}
	return cart
}

// Count returns the summed quantity in the user's cart. Missing cart is 0.
// The header badge polls this, so the value is cached until the next
// mutation invalidates it.
func (c *Carts) Count(ctx context.Context, userID string) int {
	var count int
	err := cache.Remember(cartCountKey(userID), countCacheTTL, &count, func() (interface{}, error) {
		cart, ok := c.store.GetCart(ctx, userID)
		if !ok {
			return 0, nil
		}
		return cart.ItemCount(), nil
	})
	if err != nil {
		cart, ok := c.store.GetCart(ctx, userID)
		if !ok {
			return 0
		}
		return cart.ItemCount()
	}
	return count
}

// Add puts quantity units of a product in the user's cart, merging with an
// existing line if present. The quantity must be positive and within the
// product's stock; the store itself does not check stock.
func (c *Carts) Add(ctx context.Context, userID, productID string, quantity int) (store.Cart, error) {
	defer metrics.ObserveStoreOp("add_to_cart", time.Now())

	if quantity <= 0 {
		return store.Cart{}, fmt.Errorf("add %d of %q: %w", quantity, productID, ErrInvalidQuantity)
	}
	product, ok := c.store.GetProduct(ctx, productID)
	if !ok {
		return store.Cart{}, fmt.Errorf("add to cart: %q: %w", productID, store.ErrProductNotFound)
	}
	if quantity > product.Stock {
		return store.Cart{}, fmt.Errorf("add %d of %q (stock %d): %w",
			quantity, productID, product.Stock, ErrInsufficientStock)
	}

	cart, err := c.store.AddToCart(ctx, userID, productID, quantity)
	if err != nil {
		return store.Cart{}, err
	}

	c.announce(userID, cart)
	return cart, nil
}

// UpdateItem sets a line's quantity to an absolute value; zero removes the
// line. Negative quantities and sets beyond the product's stock are rejected.
func (c *Carts) UpdateItem(ctx context.Context, userID, productID string, quantity int) (store.Cart, error) {
	defer metrics.ObserveStoreOp("update_cart_item", time.Now())

	if quantity < 0 {
		return store.Cart{}, fmt.Errorf("set %q to %d: %w", productID, quantity, ErrInvalidQuantity)
	}
	if quantity > 0 {
		product, ok := c.store.GetProduct(ctx, productID)
		if !ok {
			return store.Cart{}, fmt.Errorf("update cart: %q: %w", productID, store.ErrProductNotFound)
		}
		if quantity > product.Stock {
			return store.Cart{}, fmt.Errorf("set %q to %d (stock %d): %w",
				productID, quantity, product.Stock, ErrInsufficientStock)
		}
	}

	cart, err := c.store.UpdateCartItem(ctx, userID, productID, quantity)
	if err != nil {
		return store.Cart{}, err
	}

	c.announce(userID, cart)
	return cart, nil
}

// Remove deletes a line from the cart regardless of quantity.
func (c *Carts) Remove(ctx context.Context, userID, productID string) (store.Cart, error) {
	defer metrics.ObserveStoreOp("remove_from_cart", time.Now())

	cart, err := c.store.RemoveFromCart(ctx, userID, productID)
	if err != nil {
		return store.Cart{}, err
	}

	c.announce(userID, cart)
	return cart, nil
}

// Clear empties the cart without checking out.
func (c *Carts) Clear(ctx context.Context, userID string) (store.Cart, error) {
	defer metrics.ObserveStoreOp("clear_cart", time.Now())

	cart, err := c.store.ClearCart(ctx, userID)
	if err != nil {
		return store.Cart{}, err
	}

	c.announce(userID, cart)
	return cart, nil
}

// Checkout snapshots the cart into an order summary, clears the cart, and
// queues the confirmation notification. The order total always reflects the
// cart as it stood before the clear.
func (c *Carts) Checkout(ctx context.Context, userID string) (Order, error) {
	defer metrics.ObserveStoreOp("checkout", time.Now())

	cart, ok := c.store.GetCart(ctx, userID)
	if !ok || len(cart.Items) == 0 {
		return Order{}, fmt.Errorf("checkout for %q: %w", userID, store.ErrCartNotFound)
	}

	order := Order{
		ID:         fmt.Sprintf("order_%d", time.Now().UnixNano()),
		UserID:     userID,
		ItemCount:  cart.ItemCount(),
		TotalCents: cart.Subtotal(),
		PlacedAt:   time.Now(),
	}

	cleared, err := c.store.ClearCart(ctx, userID)
	if err != nil {
		return Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	c.announce(userID, cleared)
	event.FireAsync(events.OrderPlaced, events.OrderPayload{
		UserID:     userID,
		OrderID:    order.ID,
		TotalCents: order.TotalCents,
	})

	job := &jobs.OrderConfirmationJob{
		OrderID:    order.ID,
		UserID:     userID,
		TotalCents: order.TotalCents,
		ItemCount:  order.ItemCount,
	}
	if user, ok := c.store.GetUser(ctx, userID); ok {
		job.UserName = user.Name
		job.Email = user.Email
		job.Notify = user.Preferences.Notifications
	}
	if err := queue.Dispatch(job); err != nil {
		// The order stands either way; only the notification is lost.
		logger.WithCtx(ctx).Error("order confirmation dispatch failed",
			"order_id", order.ID, "error", err)
	}

	return order, nil
}

func (c *Carts) announce(userID string, cart store.Cart) {
	if err := cache.Forget(cartCountKey(userID)); err != nil {
		logger.Warn("cart count invalidation failed", "user_id", userID, "error", err)
	}
	event.FireAsync(events.CartUpdated, events.CartPayload{
		UserID:    userID,
		ItemCount: cart.ItemCount(),
	})
}

func cartCountKey(userID string) string { return "launchpad:cart-count:" + userID }
