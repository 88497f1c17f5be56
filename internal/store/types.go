package store

import "time"

// Theme is a user's UI theme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Product is a single catalogue entry. Prices are integer minor-currency
// units (cents) — never floats.
type Product struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	PriceCents  int               `json:"priceCents"`
	Tags        []string          `json:"tags"`
	Rating      float64           `json:"rating"` // 0–5
	Images      []string          `json:"images"`
	Specs       map[string]string `json:"specs"`
	Stock       int               `json:"stock"` // >= 0
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Review is a user's review of one product.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	Body      string    `json:"body"`
	Stars     int       `json:"stars"` // 1–5
	CreatedAt time.Time `json:"createdAt"`
	Helpful   int       `json:"helpful"` // >= 0
}

// ReviewDraft is the caller-supplied part of a review. The Store assigns
// the id, timestamp and helpful counter on AddReview.
type ReviewDraft struct {
	ProductID string `json:"productId" validate:"required"`
	UserID    string `json:"userId"    validate:"required"`
	Body      string `json:"body"      validate:"required,max=2000"`
	Stars     int    `json:"stars"     validate:"required,gte=1,lte=5"`
}

// Preferences is a user's preference record.
type Preferences struct {
	FavoriteCategories []string `json:"favoriteCategories"`
	Notifications      bool     `json:"notifications"`
	Theme              Theme    `json:"theme"`
}

// PreferencesPatch is a partial preference update. Nil fields are left
// unchanged; the set of updatable fields is exactly this struct — there is
// no open-ended merge.
type PreferencesPatch struct {
	FavoriteCategories *[]string `json:"favoriteCategories"`
	Notifications      *bool     `json:"notifications"`
	Theme              *Theme    `json:"theme"`
}

// User is a storefront user. StarredProductIDs is an ordered duplicate-free
// set of product ids.
type User struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Email             string      `json:"email"`
	AvatarURL         string      `json:"avatarUrl"`
	Preferences       Preferences `json:"preferences"`
	StarredProductIDs []string    `json:"starredProductIds"`
	CreatedAt         time.Time   `json:"createdAt"`
}

// CartItem is one line in a cart. PriceAtAddCents is a snapshot of the
// product price at the time of the first add and never changes afterwards.
// Quantity is always > 0 while the item exists; an item whose quantity
// reaches zero is removed, never stored.
type CartItem struct {
	ProductID       string    `json:"productId"`
	Quantity        int       `json:"quantity"`
	PriceAtAddCents int       `json:"priceAtAddCents"`
	AddedAt         time.Time `json:"addedAt"`
}

// Cart is a user's pending collection of line items. One cart per user,
// created lazily on the first add.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Subtotal returns the cart total in cents using the per-item price
// snapshots.
func (c Cart) Subtotal() int {
	total := 0
	for _, item := range c.Items {
		total += item.PriceAtAddCents * item.Quantity
	}
	return total
}

// ItemCount returns the summed quantity across all line items.
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// ProductFilter narrows ListProducts. Zero values mean "no restriction".
type ProductFilter struct {
	Tag   string
	Limit int
}
