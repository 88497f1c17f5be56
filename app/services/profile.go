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

// Profiles serves user profile, preference, and starred-product operations.
type Profiles struct {
	store *store.Store
}

// NewProfiles creates a Profiles service over the given store.
func NewProfiles(s *store.Store) *Profiles {
	return &Profiles{store: s}
}

// User returns a user by id.
func (p *Profiles) User(ctx context.Context, userID string) (store.User, bool) {
	defer metrics.ObserveStoreOp("get_user", time.Now())
	return p.store.GetUser(ctx, userID)
}

// UpdateProfile replaces the user's name and email.
func (p *Profiles) UpdateProfile(ctx context.Context, userID, name, email string) (store.User, error) {
	defer metrics.ObserveStoreOp("update_profile", time.Now())

	user, err := p.store.UpdateUserProfile(ctx, userID, name, email)
	if err != nil {
		return store.User{}, err
	}

	event.FireAsync(events.ProfileUpdated, events.ProfilePayload{UserID: userID})
	return user, nil
}

// UpdatePreferences applies a partial preference update; nil fields keep
// their current value.
func (p *Profiles) UpdatePreferences(ctx context.Context, userID string, patch store.PreferencesPatch) (store.User, error) {
	defer metrics.ObserveStoreOp("update_preferences", time.Now())

	user, err := p.store.UpdateUserPreferences(ctx, userID, patch)
	if err != nil {
		return store.User{}, err
	}

	event.FireAsync(events.ProfileUpdated, events.ProfilePayload{UserID: userID})
	return user, nil
}

// Starred returns the user's starred products in catalogue storage order.
func (p *Profiles) Starred(ctx context.Context, userID string) []store.Product {
	defer metrics.ObserveStoreOp("starred_products", time.Now())
	return p.store.StarredProducts(ctx, userID)
}

// StarredCount returns the size of the user's starred list, cached like the
// cart count.
func (p *Profiles) StarredCount(ctx context.Context, userID string) int {
	var count int
	err := cache.Remember(starredCountKey(userID), countCacheTTL, &count, func() (interface{}, error) {
		return len(p.store.StarredProducts(ctx, userID)), nil
	})
	if err != nil {
		return len(p.store.StarredProducts(ctx, userID))
	}
	return count
}

// IsStarred reports whether the user has starred the product.
func (p *Profiles) IsStarred(ctx context.Context, userID, productID string) bool {
	return p.store.IsProductStarred(ctx, userID, productID)
}

// Star adds a product to the starred list. Adding a product that is already
// starred is a no-op. Returns false only for an unknown user.
func (p *Profiles) Star(ctx context.Context, userID, productID string) bool {
	defer metrics.ObserveStoreOp("add_to_starred", time.Now())

	if !p.store.AddToStarred(ctx, userID, productID) {
		return false
	}
	p.announceFavorites(ctx, userID)
	return true
}

// Unstar removes a product from the starred list; removing an absent
// product is a no-op.
func (p *Profiles) Unstar(ctx context.Context, userID, productID string) bool {
	defer metrics.ObserveStoreOp("remove_from_starred", time.Now())

	if !p.store.RemoveFromStarred(ctx, userID, productID) {
		return false
	}
	p.announceFavorites(ctx, userID)
	return true
}

// ToggleStar stars the product if unstarred, unstars it otherwise.
// Returns the new starred state and false ok for an unknown user.
func (p *Profiles) ToggleStar(ctx context.Context, userID, productID string) (starred, ok bool) {
	if p.store.IsProductStarred(ctx, userID, productID) {
		return false, p.Unstar(ctx, userID, productID)
	}
	return true, p.Star(ctx, userID, productID)
}

func (p *Profiles) announceFavorites(ctx context.Context, userID string) {
	if err := cache.Forget(starredCountKey(userID)); err != nil {
		logger.Warn("starred count invalidation failed", "user_id", userID, "error", err)
	}
	event.FireAsync(events.FavoritesUpdated, events.FavoritesPayload{
		UserID: userID,
		Count:  len(p.store.StarredProducts(ctx, userID)),
	})
}

func starredCountKey(userID string) string { return "launchpad:starred-count:" + userID }
