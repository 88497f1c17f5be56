package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeded() *Store {
	s := New()
	s.Seed()
	return s
}

func TestGetProductReturnsMatchingID(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	for _, id := range []string{"p_1", "p_2", "p_3", "p_4", "p_5"} {
		p, ok := s.GetProduct(ctx, id)
		require.True(t, ok, "seeded product %s must exist", id)
		assert.Equal(t, id, p.ID)
	}

	_, ok := s.GetProduct(ctx, "p_999")
	assert.False(t, ok)
}

func TestListProductsFilterAndLimit(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	all := s.ListProducts(ctx, ProductFilter{})
	assert.Len(t, all, 5)

	gaming := s.ListProducts(ctx, ProductFilter{Tag: "gaming"})
	require.Len(t, gaming, 2)
	assert.Equal(t, "p_3", gaming[0].ID)
	assert.Equal(t, "p_5", gaming[1].ID)

	limited := s.ListProducts(ctx, ProductFilter{Limit: 2})
	require.Len(t, limited, 2)
	assert.Equal(t, "p_1", limited[0].ID)
	assert.Equal(t, "p_2", limited[1].ID)
}

func TestListProductsReturnsCopies(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	first := s.ListProducts(ctx, ProductFilter{})[0]
	first.Title = "mutated"
	first.Tags[0] = "mutated"
	first.Specs["Weight"] = "mutated"

	again, ok := s.GetProduct(ctx, first.ID)
	require.True(t, ok)
	assert.Equal(t, "Wireless Bluetooth Headphones", again.Title)
	assert.Equal(t, "electronics", again.Tags[0])
	assert.Equal(t, "250g", again.Specs["Weight"])
}

func TestSearchProductsMatchesTitleDescriptionAndTags(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	byTitle := s.SearchProducts(ctx, "MONITOR")
	require.Len(t, byTitle, 1)
	assert.Equal(t, "p_4", byTitle[0].ID)

	byTag := s.SearchProducts(ctx, "gaming")
	assert.Len(t, byTag, 2)

	byDescription := s.SearchProducts(ctx, "noise cancellation")
	require.Len(t, byDescription, 1)
	assert.Equal(t, "p_1", byDescription[0].ID)

	assert.Empty(t, s.SearchProducts(ctx, "no such thing"))
}

func TestTrendingProductsSortedByRatingDescending(t *testing.T) {
	s := newSeeded()

	trending := s.TrendingProducts(context.Background())
	require.NotEmpty(t, trending)
	assert.LessOrEqual(t, len(trending), 6)

	// p_4 (4.8) is the single highest-rated seed product.
	assert.Equal(t, "p_4", trending[0].ID)
	for i := 1; i < len(trending); i++ {
		assert.GreaterOrEqual(t, trending[i-1].Rating, trending[i].Rating)
	}
}

func TestRecommendedProductsFallsBackToTrending(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	unknown := s.RecommendedProducts(ctx, "nobody")
	trending := s.TrendingProducts(ctx)
	assert.Equal(t, trending, unknown)

	// u_1 favours electronics + gaming → every product matches, capped at 4,
	// storage order.
	recommended := s.RecommendedProducts(ctx, "u_1")
	require.Len(t, recommended, 4)
	assert.Equal(t, "p_1", recommended[0].ID)
}

func TestAddReviewAssignsIDAndDefaults(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	stored, err := s.AddReview(ctx, ReviewDraft{
		ProductID: "p_3",
		UserID:    "u_1",
		Body:      "Clacky in the best way.",
		Stars:     5,
	})
	require.NoError(t, err)
	assert.Equal(t, "r_4", stored.ID)
	assert.Equal(t, 0, stored.Helpful)
	assert.False(t, stored.CreatedAt.IsZero())

	reviews := s.Reviews(ctx, "p_3")
	require.Len(t, reviews, 1)
	assert.Equal(t, stored.ID, reviews[0].ID)

	_, err = s.AddReview(ctx, ReviewDraft{ProductID: "p_999", UserID: "u_1", Body: "x", Stars: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddToCartMergesQuantities(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	_, err := s.AddToCart(ctx, "demo_user", "p_1", 2)
	require.NoError(t, err)
	cart, err := s.AddToCart(ctx, "demo_user", "p_1", 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p_1", cart.Items[0].ProductID)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddToCartSnapshotsPrice(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	_, err := s.AddToCart(ctx, "demo_user", "p_1", 2)
	require.NoError(t, err)

	cart, ok := s.GetCart(ctx, "demo_user")
	require.True(t, ok)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p_1", cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 19999, cart.Items[0].PriceAtAddCents)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	s := newSeeded()

	_, err := s.AddToCart(context.Background(), "demo_user", "p_999", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetCartNoImplicitCreation(t *testing.T) {
	s := newSeeded()

	_, ok := s.GetCart(context.Background(), "demo_user")
	assert.False(t, ok)
}

func TestUpdateCartItemZeroRemovesLine(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	_, err := s.AddToCart(ctx, "demo_user", "p_1", 2)
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, "demo_user", "p_2", 1)
	require.NoError(t, err)

	_, err = s.UpdateCartItem(ctx, "demo_user", "p_1", 0)
	require.NoError(t, err)

	cart, ok := s.GetCart(ctx, "demo_user")
	require.True(t, ok)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p_2", cart.Items[0].ProductID)
}

func TestUpdateCartItemAbsoluteSet(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	_, err := s.AddToCart(ctx, "demo_user", "p_1", 2)
	require.NoError(t, err)

	cart, err := s.UpdateCartItem(ctx, "demo_user", "p_1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpdateCartItemMissingCartOrItem(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	_, err := s.UpdateCartItem(ctx, "demo_user", "p_1", 1)
	assert.ErrorIs(t, err, ErrCartNotFound)

	_, err = s.AddToCart(ctx, "demo_user", "p_1", 1)
	require.NoError(t, err)
	_, err = s.UpdateCartItem(ctx, "demo_user", "p_2", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveFromCart(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	_, err := s.AddToCart(ctx, "demo_user", "p_1", 2)
	require.NoError(t, err)

	cart, err := s.RemoveFromCart(ctx, "demo_user", "p_1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestClearCart(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	_, err := s.AddToCart(ctx, "demo_user", "p_1", 2)
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, "demo_user", "p_3", 1)
	require.NoError(t, err)

	cleared, err := s.ClearCart(ctx, "demo_user")
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)

	cart, ok := s.GetCart(ctx, "demo_user")
	require.True(t, ok, "cart survives a clear")
	assert.Zero(t, cart.ItemCount())

	_, err = s.ClearCart(ctx, "nobody")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartSubtotalUsesPriceSnapshots(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	_, err := s.AddToCart(ctx, "demo_user", "p_1", 2) // 2 × 19999
	require.NoError(t, err)
	cart, err := s.AddToCart(ctx, "demo_user", "p_5", 1) // 1 × 8999
	require.NoError(t, err)

	assert.Equal(t, 2*19999+8999, cart.Subtotal())
	assert.Equal(t, 3, cart.ItemCount())
}

func TestUpdateUserPreferencesPartialMerge(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	before, ok := s.GetUser(ctx, "u_1")
	require.True(t, ok)

	dark := ThemeDark
	after, err := s.UpdateUserPreferences(ctx, "u_1", PreferencesPatch{Theme: &dark})
	require.NoError(t, err)

	assert.Equal(t, ThemeDark, after.Preferences.Theme)
	assert.Equal(t, before.Preferences.Notifications, after.Preferences.Notifications)
	assert.Equal(t, before.Preferences.FavoriteCategories, after.Preferences.FavoriteCategories)

	_, err = s.UpdateUserPreferences(ctx, "nobody", PreferencesPatch{Theme: &dark})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUserProfile(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	updated, err := s.UpdateUserProfile(ctx, "demo_user", "New Name", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)

	_, err = s.UpdateUserProfile(ctx, "nobody", "x", "x@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStarredRoundTrip(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	assert.False(t, s.IsProductStarred(ctx, "u_1", "p_2"))

	require.True(t, s.AddToStarred(ctx, "u_1", "p_2"))
	assert.True(t, s.IsProductStarred(ctx, "u_1", "p_2"))

	// Adding again is a no-op, not a duplicate.
	require.True(t, s.AddToStarred(ctx, "u_1", "p_2"))
	starred := s.StarredProducts(ctx, "u_1")
	require.Len(t, starred, 1)
	assert.Equal(t, "p_2", starred[0].ID)

	require.True(t, s.RemoveFromStarred(ctx, "u_1", "p_2"))
	assert.False(t, s.IsProductStarred(ctx, "u_1", "p_2"))

	// Removing twice in a row is a successful no-op both times.
	assert.True(t, s.RemoveFromStarred(ctx, "u_1", "p_2"))
	assert.True(t, s.RemoveFromStarred(ctx, "u_1", "p_2"))
}

func TestStarredUnknownUser(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	assert.False(t, s.AddToStarred(ctx, "nobody", "p_1"))
	assert.False(t, s.RemoveFromStarred(ctx, "nobody", "p_1"))
	assert.False(t, s.IsProductStarred(ctx, "nobody", "p_1"))
	assert.Empty(t, s.StarredProducts(ctx, "nobody"))
}

func TestStarredProductsStorageOrder(t *testing.T) {
	s := newSeeded()
	ctx := context.Background()

	// Star out of catalogue order; listing still follows storage order.
	require.True(t, s.AddToStarred(ctx, "u_2", "p_4"))
	require.True(t, s.AddToStarred(ctx, "u_2", "p_1"))

	starred := s.StarredProducts(ctx, "u_2")
	require.Len(t, starred, 2)
	assert.Equal(t, "p_1", starred[0].ID)
	assert.Equal(t, "p_4", starred[1].ID)
}

func TestSeedDemoCart(t *testing.T) {
	s := newSeeded()

	require.NoError(t, s.SeedDemoCart("demo_user"))

	cart, ok := s.GetCart(context.Background(), "demo_user")
	require.True(t, ok)
	require.Len(t, cart.Items, 3)
	assert.Equal(t, 4, cart.ItemCount())
}
