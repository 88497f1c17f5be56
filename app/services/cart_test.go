package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/launchpad/app/events"
	"github.com/shashiranjanraj/launchpad/internal/store"
	"github.com/shashiranjanraj/launchpad/pkg/event"
)

func newCartService(t *testing.T) (*Carts, *store.Store) {
	t.Helper()
	s := store.New()
	s.Seed()
	return NewCarts(s), s
}

func TestCartMissingUserReturnsEmptyCart(t *testing.T) {
	carts, _ := newCartService(t)
	ctx := context.Background()

	cart := carts.Cart(ctx, "demo_user")
	assert.Equal(t, "demo_user", cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, carts.Count(ctx, "demo_user"))
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	carts, _ := newCartService(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "demo_user", "p_1", 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = carts.Add(ctx, "demo_user", "p_1", -5)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	assert.Empty(t, carts.Cart(ctx, "demo_user").Items)
}

func TestAddRejectsQuantityOverStock(t *testing.T) {
	carts, _ := newCartService(t)
	ctx := context.Background()

	// p_4 has 5 in stock.
	_, err := carts.Add(ctx, "demo_user", "p_4", 100)
	require.ErrorIs(t, err, ErrInsufficientStock)

	assert.Empty(t, carts.Cart(ctx, "demo_user").Items)
}

func TestUpdateItemRejectsNegativeQuantity(t *testing.T) {
	carts, _ := newCartService(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "demo_user", "p_1", 2)
	require.NoError(t, err)

	_, err = carts.UpdateItem(ctx, "demo_user", "p_1", -3)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	// The line survives untouched.
	cart := carts.Cart(ctx, "demo_user")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestUpdateItemRejectsQuantityOverStock(t *testing.T) {
	carts, _ := newCartService(t)
	ctx := context.Background()

	// p_3 has 8 in stock.
	_, err := carts.Add(ctx, "demo_user", "p_3", 1)
	require.NoError(t, err)

	_, err = carts.UpdateItem(ctx, "demo_user", "p_3", 9)
	require.ErrorIs(t, err, ErrInsufficientStock)

	cart := carts.Cart(ctx, "demo_user")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCheckoutSnapshotsTotalBeforeClearing(t *testing.T) {
	carts, s := newCartService(t)
	ctx := context.Background()
	require.NoError(t, s.SeedDemoCart("demo_user"))

	// 2x p_1 (19999) + 1x p_3 (14999) + 1x p_5 (8999)
	order, err := carts.Checkout(ctx, "demo_user")
	require.NoError(t, err)

	assert.Equal(t, 4, order.ItemCount)
	assert.Equal(t, 2*19999+14999+8999, order.TotalCents)
	assert.Equal(t, "demo_user", order.UserID)
	assert.NotEmpty(t, order.ID)
	assert.WithinDuration(t, time.Now(), order.PlacedAt, time.Minute)

	// The cart is empty afterwards.
	assert.Equal(t, 0, carts.Count(ctx, "demo_user"))
}

func TestCheckoutEmptyCartFails(t *testing.T) {
	carts, _ := newCartService(t)
	ctx := context.Background()

	_, err := carts.Checkout(ctx, "demo_user")
	require.ErrorIs(t, err, store.ErrCartNotFound)
}

func TestCartMutationsFireCartUpdated(t *testing.T) {
	carts, _ := newCartService(t)
	ctx := context.Background()

	got := make(chan events.CartPayload, 8)
	event.Listen(events.CartUpdated, func(payload interface{}) {
		if p, ok := payload.(events.CartPayload); ok {
			got <- p
		}
	})
	t.Cleanup(event.Flush)

	_, err := carts.Add(ctx, "demo_user", "p_2", 3)
	require.NoError(t, err)

	select {
	case p := <-got:
		assert.Equal(t, "demo_user", p.UserID)
		assert.Equal(t, 3, p.ItemCount)
	case <-time.After(time.Second):
		t.Fatal("no cart.updated event fired")
	}
}

func TestCheckoutFiresOrderPlaced(t *testing.T) {
	carts, s := newCartService(t)
	ctx := context.Background()
	require.NoError(t, s.SeedDemoCart("demo_user"))

	got := make(chan events.OrderPayload, 1)
	event.Listen(events.OrderPlaced, func(payload interface{}) {
		if p, ok := payload.(events.OrderPayload); ok {
			got <- p
		}
	})
	t.Cleanup(event.Flush)

	order, err := carts.Checkout(ctx, "demo_user")
	require.NoError(t, err)

	select {
	case p := <-got:
		assert.Equal(t, order.ID, p.OrderID)
		assert.Equal(t, order.TotalCents, p.TotalCents)
	case <-time.After(time.Second):
		t.Fatal("no order.placed event fired")
	}
}

func TestUpdateItemZeroRemovesLine(t *testing.T) {
	carts, _ := newCartService(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "demo_user", "p_1", 2)
	require.NoError(t, err)

	cart, err := carts.UpdateItem(ctx, "demo_user", "p_1", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestRemoveUnknownItemFails(t *testing.T) {
	carts, _ := newCartService(t)
	ctx := context.Background()

	_, err := carts.Add(ctx, "demo_user", "p_1", 1)
	require.NoError(t, err)

	_, err = carts.Remove(ctx, "demo_user", "p_4")
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}
