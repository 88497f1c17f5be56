package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/launchpad/app/services"
	"github.com/shashiranjanraj/launchpad/config"
	"github.com/shashiranjanraj/launchpad/internal/store"
	"github.com/shashiranjanraj/launchpad/pkg/ctx"
)

// ProfileController serves the profile page: identity and preferences.
type ProfileController struct {
	Profiles *services.Profiles
}

// Show handles GET /api/profile?userId=.
func (pc *ProfileController) Show(c *ctx.Context) {
	user, ok := pc.Profiles.User(c.Context(), userID(c))
	if !ok {
		c.NotFound("user not found")
		return
	}
	c.Success(user)
}

// profileInput is the POST body for the profile form.
type profileInput struct {
	UserID string `json:"userId"`
	Name   string `json:"name"  validate:"required,min=1,max=120"`
	Email  string `json:"email" validate:"required,email"`
}

// Update handles POST /api/profile.
func (pc *ProfileController) Update(c *ctx.Context) {
	var input profileInput
	if !c.BindJSON(&input) {
		return
	}
	if input.UserID == "" {
		input.UserID = config.DemoUserID()
	}

	user, err := pc.Profiles.UpdateProfile(c.Context(), input.UserID, input.Name, input.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.NotFound("user not found")
			return
		}
		c.Error(http.StatusInternalServerError, err.Error())
		return
	}
	c.Success(user)
}

// preferencesInput is the POST body for the preferences form. Omitted
// fields keep their current value.
type preferencesInput struct {
	UserID             string       `json:"userId"`
	FavoriteCategories *[]string    `json:"favoriteCategories"`
	Notifications      *bool        `json:"notifications"`
	Theme              *store.Theme `json:"theme"`
}

// UpdatePreferences handles POST /api/preferences.
func (pc *ProfileController) UpdatePreferences(c *ctx.Context) {
	var input preferencesInput
	if !c.BindJSON(&input) {
		return
	}
	if input.UserID == "" {
		input.UserID = config.DemoUserID()
	}

	if input.Theme != nil {
		switch *input.Theme {
		case store.ThemeLight, store.ThemeDark, store.ThemeSystem:
		default:
			c.Error(http.StatusBadRequest, "theme must be light, dark, or system")
			return
		}
	}

	user, err := pc.Profiles.UpdatePreferences(c.Context(), input.UserID, store.PreferencesPatch{
		FavoriteCategories: input.FavoriteCategories,
		Notifications:      input.Notifications,
		Theme:              input.Theme,
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.NotFound("user not found")
			return
		}
		c.Error(http.StatusInternalServerError, err.Error())
		return
	}
	c.Success(user)
}
