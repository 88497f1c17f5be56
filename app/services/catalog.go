// Package services holds the storefront's application services: thin layers
// over the data store that add caching, events, metrics, and queue dispatch.
package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/launchpad/app/events"
	"github.com/shashiranjanraj/launchpad/internal/store"
	"github.com/shashiranjanraj/launchpad/pkg/cache"
	"github.com/shashiranjanraj/launchpad/pkg/event"
	"github.com/shashiranjanraj/launchpad/pkg/logger"
	"github.com/shashiranjanraj/launchpad/pkg/metrics"
)

const (
	trendingCacheKey = "launchpad:trending"
	trendingCacheTTL = 5 * time.Minute
	countCacheTTL    = time.Minute
)

// Catalog serves product reads and review writes.
type Catalog struct {
	store *store.Store
}

// NewCatalog creates a Catalog over the given store.
func NewCatalog(s *store.Store) *Catalog {
	return &Catalog{store: s}
}

// Products lists the catalogue, optionally narrowed by tag and limit.
func (c *Catalog) Products(ctx context.Context, filter store.ProductFilter) []store.Product {
	defer metrics.ObserveStoreOp("list_products", time.Now())
	return c.store.ListProducts(ctx, filter)
}

// Product returns a single product by id.
func (c *Catalog) Product(ctx context.Context, id string) (store.Product, bool) {
	defer metrics.ObserveStoreOp("get_product", time.Now())
	return c.store.GetProduct(ctx, id)
}

// Search finds products whose title, description, or tags contain the query,
// case-insensitively. An empty query matches everything.
func (c *Catalog) Search(ctx context.Context, query string) []store.Product {
	defer metrics.ObserveStoreOp("search_products", time.Now())
	return c.store.SearchProducts(ctx, query)
}

// Trending returns the top products by rating. The result is cached in
// Redis for a few minutes; without Redis it is recomputed per call, which
// is just as fine at demo scale.
func (c *Catalog) Trending(ctx context.Context) []store.Product {
	defer metrics.ObserveStoreOp("trending_products", time.Now())

	var cached []store.Product
	err := cache.Remember(trendingCacheKey, trendingCacheTTL, &cached, func() (interface{}, error) {
		return c.store.TrendingProducts(ctx), nil
	})
	if err != nil {
		logger.WithCtx(ctx).Warn("trending cache bypassed", "error", err)
		return c.store.TrendingProducts(ctx)
	}
	return cached
}

// RewarmTrending recomputes and re-caches the trending list. Run by the
// scheduler so the cache never serves a cold miss.
func (c *Catalog) RewarmTrending() {
	fresh := c.store.TrendingProducts(context.Background())
	if err := cache.Set(trendingCacheKey, fresh, trendingCacheTTL); err != nil {
		logger.Warn("trending rewarm failed", "error", err)
	}
}

// Recommended returns products matching the user's favorite categories.
// Unknown users get the trending list instead.
func (c *Catalog) Recommended(ctx context.Context, userID string) []store.Product {
	defer metrics.ObserveStoreOp("recommended_products", time.Now())
	return c.store.RecommendedProducts(ctx, userID)
}

// Reviews returns all reviews for a product, newest last (storage order).
func (c *Catalog) Reviews(ctx context.Context, productID string) []store.Review {
	defer metrics.ObserveStoreOp("list_reviews", time.Now())
	return c.store.Reviews(ctx, productID)
}

// AddReview appends a review and announces it.
func (c *Catalog) AddReview(ctx context.Context, draft store.ReviewDraft) (store.Review, error) {
	defer metrics.ObserveStoreOp("add_review", time.Now())

	review, err := c.store.AddReview(ctx, draft)
	if err != nil {
		return store.Review{}, err
	}

	event.FireAsync(events.ReviewAdded, events.ReviewPayload{
		ProductID: review.ProductID,
		ReviewID:  review.ID,
	})
	return review, nil
}
