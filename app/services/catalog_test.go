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

func newCatalogService(t *testing.T) *Catalog {
	t.Helper()
	s := store.New()
	s.Seed()
	return NewCatalog(s)
}

func TestTrendingOrdersByRating(t *testing.T) {
	catalog := newCatalogService(t)

	// Without Redis the cache no-ops and Trending recomputes per call.
	trending := catalog.Trending(context.Background())
	require.Len(t, trending, 5)

	assert.Equal(t, "p_4", trending[0].ID)
	assert.Equal(t, "p_3", trending[1].ID)
	assert.Equal(t, "p_1", trending[2].ID)
	for i := 1; i < len(trending); i++ {
		assert.GreaterOrEqual(t, trending[i-1].Rating, trending[i].Rating)
	}
}

func TestSearchMatchesTitleAndTags(t *testing.T) {
	catalog := newCatalogService(t)
	ctx := context.Background()

	byTag := catalog.Search(ctx, "gaming")
	require.Len(t, byTag, 2)

	byTitle := catalog.Search(ctx, "HEADPHONES")
	require.Len(t, byTitle, 1)
	assert.Equal(t, "p_1", byTitle[0].ID)

	assert.Empty(t, catalog.Search(ctx, "no such thing"))
}

func TestRecommendedFallsBackForUnknownUser(t *testing.T) {
	catalog := newCatalogService(t)
	ctx := context.Background()

	known := catalog.Recommended(ctx, "demo_user")
	require.NotEmpty(t, known)
	for _, p := range known {
		assert.Subset(t, []string{"electronics", "audio", "wireless", "fitness",
			"wearable", "gaming", "keyboard", "display", "monitor", "mouse"}, p.Tags)
	}

	unknown := catalog.Recommended(ctx, "u_999")
	assert.NotEmpty(t, unknown)
}

func TestAddReviewFiresReviewAdded(t *testing.T) {
	catalog := newCatalogService(t)
	ctx := context.Background()

	got := make(chan events.ReviewPayload, 1)
	event.Listen(events.ReviewAdded, func(payload interface{}) {
		if p, ok := payload.(events.ReviewPayload); ok {
			got <- p
		}
	})
	t.Cleanup(event.Flush)

	review, err := catalog.AddReview(ctx, store.ReviewDraft{
		ProductID: "p_1",
		UserID:    "demo_user",
		Body:      "Does what it says.",
		Stars:     4,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)

	select {
	case p := <-got:
		assert.Equal(t, "p_1", p.ProductID)
		assert.Equal(t, review.ID, p.ReviewID)
	case <-time.After(time.Second):
		t.Fatal("no review.added event fired")
	}

	reviews := catalog.Reviews(ctx, "p_1")
	assert.Equal(t, review.ID, reviews[len(reviews)-1].ID)
}

func TestAddReviewUnknownProduct(t *testing.T) {
	catalog := newCatalogService(t)

	_, err := catalog.AddReview(context.Background(), store.ReviewDraft{
		ProductID: "p_999",
		UserID:    "demo_user",
		Body:      "ghost review",
		Stars:     3,
	})
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}
