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

func newProfileService(t *testing.T) *Profiles {
	t.Helper()
	s := store.New()
	s.Seed()
	return NewProfiles(s)
}

func TestToggleStarFlipsState(t *testing.T) {
	profiles := newProfileService(t)
	ctx := context.Background()

	starred, ok := profiles.ToggleStar(ctx, "demo_user", "p_1")
	require.True(t, ok)
	assert.True(t, starred)
	assert.True(t, profiles.IsStarred(ctx, "demo_user", "p_1"))

	starred, ok = profiles.ToggleStar(ctx, "demo_user", "p_1")
	require.True(t, ok)
	assert.False(t, starred)
	assert.False(t, profiles.IsStarred(ctx, "demo_user", "p_1"))
}

func TestToggleStarUnknownUser(t *testing.T) {
	profiles := newProfileService(t)

	_, ok := profiles.ToggleStar(context.Background(), "u_999", "p_1")
	assert.False(t, ok)
}

func TestStarredFollowsCatalogueOrder(t *testing.T) {
	profiles := newProfileService(t)
	ctx := context.Background()

	// Starred out of catalogue order; the listing follows storage order.
	require.True(t, profiles.Star(ctx, "demo_user", "p_3"))
	require.True(t, profiles.Star(ctx, "demo_user", "p_1"))
	require.True(t, profiles.Star(ctx, "demo_user", "p_3")) // duplicate, no-op

	products := profiles.Starred(ctx, "demo_user")
	require.Len(t, products, 2)
	assert.Equal(t, "p_1", products[0].ID)
	assert.Equal(t, "p_3", products[1].ID)
	assert.Equal(t, 2, profiles.StarredCount(ctx, "demo_user"))
}

func TestStarFiresFavoritesUpdated(t *testing.T) {
	profiles := newProfileService(t)
	ctx := context.Background()

	got := make(chan events.FavoritesPayload, 4)
	event.Listen(events.FavoritesUpdated, func(payload interface{}) {
		if p, ok := payload.(events.FavoritesPayload); ok {
			got <- p
		}
	})
	t.Cleanup(event.Flush)

	require.True(t, profiles.Star(ctx, "demo_user", "p_2"))

	select {
	case p := <-got:
		assert.Equal(t, "demo_user", p.UserID)
		assert.Equal(t, 1, p.Count)
	case <-time.After(time.Second):
		t.Fatal("no favorites.updated event fired")
	}
}

func TestUpdatePreferencesPartialPatch(t *testing.T) {
	profiles := newProfileService(t)
	ctx := context.Background()

	theme := store.ThemeDark
	user, err := profiles.UpdatePreferences(ctx, "demo_user", store.PreferencesPatch{Theme: &theme})
	require.NoError(t, err)

	assert.Equal(t, store.ThemeDark, user.Preferences.Theme)
	// Untouched fields keep their seeded values.
	assert.True(t, user.Preferences.Notifications)
	assert.Equal(t, []string{"electronics", "gaming"}, user.Preferences.FavoriteCategories)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	profiles := newProfileService(t)

	_, err := profiles.UpdateProfile(context.Background(), "u_999", "Name", "a@b.test")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
