// Package store holds all storefront demo data in process memory and is the
// single source of truth for products, reviews, users and carts.
//
// There is no database behind it: records live in plain ordered slices,
// lookups are brute-force scans, and everything resets on process start.
// Relationships are by id only — no record ever holds a pointer into
// another record, and every read returns a copy, so callers can never
// mutate stored state except through the mutator methods.
//
// Construct one Store in the server bootstrap and pass it to every
// consumer:
//
//	st := store.New()
//	st.Seed()
//	catalog := services.NewCatalogService(st)
//
// Reads report absence with a false second return value. Mutations return
// sentinel errors (ErrProductNotFound, ErrCartNotFound, …) that callers
// turn into user-visible messages.
//
// Every method takes a context.Context to match the remote-call shape of
// the handlers above it, but no method blocks — each completes its whole
// mutation under the store lock, so calls are atomic relative to each
// other.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/launchpad/pkg/collection"
)

// Sentinel errors for mutations against records that do not exist.
var (
	ErrProductNotFound = errors.New("store: product not found")
	ErrUserNotFound    = errors.New("store: user not found")
	ErrCartNotFound    = errors.New("store: cart not found")
	ErrItemNotFound    = errors.New("store: item not in cart")
)

const (
	trendingLimit    = 6
	recommendedLimit = 4
)

// Store owns the four record sequences. The mutex keeps each operation
// atomic under Go's concurrent HTTP server; there is no finer-grained
// coordination because operations only ever scan a few dozen records.
type Store struct {
	mu        sync.RWMutex
	products  []Product
	reviews   []Review
	users     []User
	carts     []Cart
	reviewSeq int
}

// New returns an empty Store. Call Seed to load the demo records.
func New() *Store {
	return &Store{}
}

// ─── Products ─────────────────────────────────────────────────────────────────

// ListProducts returns a snapshot of the catalogue, optionally restricted
// to products carrying filter.Tag and truncated to filter.Limit items from
// the front. Order is insertion order.
func (s *Store) ListProducts(ctx context.Context, filter ProductFilter) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := s.products
	if filter.Tag != "" {
		products = collection.Filter(products, func(p Product) bool {
			return hasTag(p, filter.Tag)
		})
	}
	if filter.Limit > 0 {
		products = collection.Take(products, filter.Limit)
	}

	return collection.Map(products, cloneProduct)
}

// GetProduct returns the product with the given id. The second return
// value is false when no such product exists — absence is not an error.
func (s *Store) GetProduct(ctx context.Context, id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := collection.First(s.products, func(p Product) bool { return p.ID == id })
	if !ok {
		return Product{}, false
	}
	return cloneProduct(p), true
}

// SearchProducts performs a case-insensitive substring match across title,
// description and tags. Results come back in storage order; there is no
// ranking.
func (s *Store) SearchProducts(ctx context.Context, query string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(query)
	matches := collection.Filter(s.products, func(p Product) bool {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			return true
		}
		return collection.Contains(p.Tags, func(tag string) bool {
			return strings.Contains(strings.ToLower(tag), term)
		})
	})

	return collection.Map(matches, cloneProduct)
}

// TrendingProducts returns the catalogue sorted by descending rating,
// truncated to the top 6. The sort is stable, so equally rated products
// keep their original order.
func (s *Store) TrendingProducts(ctx context.Context) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.trendingLocked()
}

func (s *Store) trendingLocked() []Product {
	sorted := collection.Map(s.products, cloneProduct)
	collection.SortBy(sorted, func(a, b Product) bool { return a.Rating > b.Rating })
	return collection.Take(sorted, trendingLimit)
}

// RecommendedProducts returns up to 4 products whose tags intersect the
// user's favourite categories, in storage order. Unknown users fall back
// to the trending list.
func (s *Store) RecommendedProducts(ctx context.Context, userID string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := collection.First(s.users, func(u User) bool { return u.ID == userID })
	if !ok {
		return s.trendingLocked()
	}

	matches := collection.Filter(s.products, func(p Product) bool {
		return collection.Contains(user.Preferences.FavoriteCategories, func(cat string) bool {
			return hasTag(p, cat)
		})
	})

	return collection.Map(collection.Take(matches, recommendedLimit), cloneProduct)
}

// ─── Reviews ──────────────────────────────────────────────────────────────────

// Reviews returns all reviews for a product in storage order.
func (s *Store) Reviews(ctx context.Context, productID string) []Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := collection.Filter(s.reviews, func(r Review) bool {
		return r.ProductID == productID
	})
	return collection.Map(matches, func(r Review) Review { return r })
}

// AddReview assigns a fresh id and timestamp, zero-initialises the helpful
// counter, appends the review and returns the stored record. The product
// must exist — a review may never reference a missing product.
func (s *Store) AddReview(ctx context.Context, draft ReviewDraft) (Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !collection.Contains(s.products, func(p Product) bool { return p.ID == draft.ProductID }) {
		return Review{}, fmt.Errorf("add review for %q: %w", draft.ProductID, ErrProductNotFound)
	}

	s.reviewSeq++
	review := Review{
		ID:        fmt.Sprintf("r_%d", s.reviewSeq),
		ProductID: draft.ProductID,
		UserID:    draft.UserID,
		Body:      draft.Body,
		Stars:     draft.Stars,
		CreatedAt: time.Now(),
		Helpful:   0,
	}
	s.reviews = append(s.reviews, review)

	return review, nil
}

// ─── Carts ────────────────────────────────────────────────────────────────────

// GetCart returns the user's cart. There is no implicit creation: before
// the first AddToCart the second return value is false.
func (s *Store) GetCart(ctx context.Context, userID string) (Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := collection.First(s.carts, func(c Cart) bool { return c.UserID == userID })
	if !ok {
		return Cart{}, false
	}
	return cloneCart(cart), true
}

// AddToCart creates the user's cart if absent, then either merges quantity
// into an existing line for the product or appends a new line with a
// snapshot of the product's current price. Stock is NOT checked here —
// that validation belongs to the caller.
func (s *Store) AddToCart(ctx context.Context, userID, productID string, quantity int) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := collection.First(s.products, func(p Product) bool { return p.ID == productID })
	if !ok {
		return Cart{}, fmt.Errorf("add %q to cart: %w", productID, ErrProductNotFound)
	}

	now := time.Now()
	idx := s.cartIndexLocked(userID)
	if idx < 0 {
		s.carts = append(s.carts, Cart{
			ID:        "cart_" + userID,
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		})
		idx = len(s.carts) - 1
	}
	cart := &s.carts[idx]

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, CartItem{
			ProductID:       productID,
			Quantity:        quantity,
			PriceAtAddCents: product.PriceCents,
			AddedAt:         now,
		})
	}
	cart.UpdatedAt = now

	return cloneCart(*cart), nil
}

// UpdateCartItem sets the quantity of an existing line item to an absolute
// value. A quantity of zero or less removes the line entirely. Both the
// cart and the line must already exist.
func (s *Store) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.cartIndexLocked(userID)
	if idx < 0 {
		return Cart{}, fmt.Errorf("update cart for %q: %w", userID, ErrCartNotFound)
	}
	cart := &s.carts[idx]

	pos := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return Cart{}, fmt.Errorf("update item %q: %w", productID, ErrItemNotFound)
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:pos], cart.Items[pos+1:]...)
	} else {
		cart.Items[pos].Quantity = quantity
	}
	cart.UpdatedAt = time.Now()

	return cloneCart(*cart), nil
}

// RemoveFromCart removes the line item for productID. Equivalent to
// UpdateCartItem with quantity 0.
func (s *Store) RemoveFromCart(ctx context.Context, userID, productID string) (Cart, error) {
	return s.UpdateCartItem(ctx, userID, productID, 0)
}

// ClearCart empties the user's cart (checkout). The cart keeps existing
// with zero items so a later GetCart still finds it.
func (s *Store) ClearCart(ctx context.Context, userID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.cartIndexLocked(userID)
	if idx < 0 {
		return Cart{}, fmt.Errorf("clear cart for %q: %w", userID, ErrCartNotFound)
	}

	cart := &s.carts[idx]
	cart.Items = nil
	cart.UpdatedAt = time.Now()

	return cloneCart(*cart), nil
}

func (s *Store) cartIndexLocked(userID string) int {
	for i := range s.carts {
		if s.carts[i].UserID == userID {
			return i
		}
	}
	return -1
}

// ─── Users ────────────────────────────────────────────────────────────────────

// GetUser returns the user with the given id, or false when unknown.
func (s *Store) GetUser(ctx context.Context, id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := collection.First(s.users, func(u User) bool { return u.ID == id })
	if !ok {
		return User{}, false
	}
	return cloneUser(u), true
}

// UpdateUserProfile sets the user's display name and email.
func (s *Store) UpdateUserProfile(ctx context.Context, userID, name, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.userIndexLocked(userID)
	if idx < 0 {
		return User{}, fmt.Errorf("update profile for %q: %w", userID, ErrUserNotFound)
	}

	s.users[idx].Name = name
	s.users[idx].Email = email

	return cloneUser(s.users[idx]), nil
}

// UpdateUserPreferences merges the non-nil fields of patch into the user's
// preference record. Fields absent from the patch are left unchanged.
func (s *Store) UpdateUserPreferences(ctx context.Context, userID string, patch PreferencesPatch) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.userIndexLocked(userID)
	if idx < 0 {
		return User{}, fmt.Errorf("update preferences for %q: %w", userID, ErrUserNotFound)
	}

	prefs := &s.users[idx].Preferences
	if patch.FavoriteCategories != nil {
		prefs.FavoriteCategories = append([]string(nil), (*patch.FavoriteCategories)...)
	}
	if patch.Notifications != nil {
		prefs.Notifications = *patch.Notifications
	}
	if patch.Theme != nil {
		prefs.Theme = *patch.Theme
	}

	return cloneUser(s.users[idx]), nil
}

func (s *Store) userIndexLocked(userID string) int {
	for i := range s.users {
		if s.users[i].ID == userID {
			return i
		}
	}
	return -1
}

// ─── Starred products ─────────────────────────────────────────────────────────

// StarredProducts returns the products the user has starred, in catalogue
// storage order. Unknown users get an empty slice.
func (s *Store) StarredProducts(ctx context.Context, userID string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := collection.First(s.users, func(u User) bool { return u.ID == userID })
	if !ok {
		return nil
	}

	starred := collection.Filter(s.products, func(p Product) bool {
		return contains(user.StarredProductIDs, p.ID)
	})
	return collection.Map(starred, cloneProduct)
}

// AddToStarred adds productID to the user's starred set. Adding an
// already-starred product is a successful no-op; the only failure mode is
// an unknown user, reported as false.
func (s *Store) AddToStarred(ctx context.Context, userID, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.userIndexLocked(userID)
	if idx < 0 {
		return false
	}

	if !contains(s.users[idx].StarredProductIDs, productID) {
		s.users[idx].StarredProductIDs = append(s.users[idx].StarredProductIDs, productID)
	}
	return true
}

// RemoveFromStarred removes productID from the user's starred set.
// Removing an absent product is a successful no-op; false means the user
// is unknown.
func (s *Store) RemoveFromStarred(ctx context.Context, userID, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.userIndexLocked(userID)
	if idx < 0 {
		return false
	}

	s.users[idx].StarredProductIDs = collection.Reject(s.users[idx].StarredProductIDs,
		func(id string) bool { return id == productID })
	return true
}

// IsProductStarred reports whether the user has starred the product.
// Unknown users are never starred anything.
func (s *Store) IsProductStarred(ctx context.Context, userID, productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := collection.First(s.users, func(u User) bool { return u.ID == userID })
	if !ok {
		return false
	}
	return contains(user.StarredProductIDs, productID)
}

// ─── Copy helpers ─────────────────────────────────────────────────────────────

// Stored records own their slices and maps exclusively; reads hand out
// deep copies so nothing escapes the store by reference.

func cloneProduct(p Product) Product {
	out := p
	out.Tags = append([]string(nil), p.Tags...)
	out.Images = append([]string(nil), p.Images...)
	if p.Specs != nil {
		out.Specs = make(map[string]string, len(p.Specs))
		for k, v := range p.Specs {
			out.Specs[k] = v
		}
	}
	return out
}

func cloneCart(c Cart) Cart {
	out := c
	out.Items = append([]CartItem(nil), c.Items...)
	return out
}

func cloneUser(u User) User {
	out := u
	out.Preferences.FavoriteCategories = append([]string(nil), u.Preferences.FavoriteCategories...)
	out.StarredProductIDs = append([]string(nil), u.StarredProductIDs...)
	return out
}

func hasTag(p Product, tag string) bool {
	return contains(p.Tags, tag)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
