package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appevents "github.com/shashiranjanraj/launchpad/app/events"
	"github.com/shashiranjanraj/launchpad/internal/store"
	"github.com/shashiranjanraj/launchpad/pkg/ws"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	s := store.New()
	s.Seed()
	require.NoError(t, s.SeedDemoCart("demo_user"))

	r, err := Register(Deps{
		Store:  s,
		Hub:    ws.NewHub(),
		Broker: appevents.NewBroker(),
	})
	require.NoError(t, err)
	return r.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestProductsIndex(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 5)

	meta, ok := body["meta"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 5, meta["count"])

	first, ok := data[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "p_1", first["id"])
	assert.NotContains(t, first, "specs") // cards stay slim
}

func TestProductsIndexFilteredByTag(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/products?tag=gaming&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "p_3", data[0].(map[string]interface{})["id"])
}

func TestProductsIndexRejectsBadLimit(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := doJSON(t, h, http.MethodGet, "/api/products?limit=banana", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductShowAndMiss(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/products/p_2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Smart Fitness Watch", data["title"])
	assert.Contains(t, data, "specs")

	// The product page carries its reviews along.
	meta := body["meta"].(map[string]interface{})
	assert.EqualValues(t, 1, meta["reviewCount"])

	rec, _ = doJSON(t, h, http.MethodGet, "/api/products/p_999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductShowSetsSessionCookie(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := doJSON(t, h, http.MethodGet, "/api/products/p_1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "launchpad_session" {
			found = true
		}
	}
	assert.True(t, found, "viewing a product records it in the session")
}

func TestSearch(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/search?q=keyboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "p_3", data[0].(map[string]interface{})["id"])
}

func TestTrendingSortedByRating(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/trending", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].([]interface{})
	require.NotEmpty(t, data)
	assert.Equal(t, "p_4", data[0].(map[string]interface{})["id"])
}

func TestCartCountAndCheckoutFlow(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/cart-count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 4, body["data"].(map[string]interface{})["count"])

	// Checkout clears the cart; the order total reflects the pre-clear cart.
	rec, body = doJSON(t, h, http.MethodPost, "/api/checkout", "{}")
	require.Equal(t, http.StatusOK, rec.Code)

	order := body["data"].(map[string]interface{})
	assert.EqualValues(t, 4, order["itemCount"])
	assert.EqualValues(t, 2*19999+14999+8999, order["totalCents"])

	rec, body = doJSON(t, h, http.MethodGet, "/api/cart-count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["data"].(map[string]interface{})["count"])

	// A second checkout finds an empty cart.
	rec, _ = doJSON(t, h, http.MethodPost, "/api/checkout", "{}")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCartAddValidation(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/cart", `{"quantity":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/cart", `{"productId":"p_999"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body := doJSON(t, h, http.MethodPost, "/api/cart", `{"productId":"p_2","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := body["data"].(map[string]interface{})
	assert.Equal(t, "demo_user", cart["userId"])
}

func TestCartAddRejectsBadQuantity(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/cart", `{"productId":"p_2","quantity":-5}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "quantity")

	rec, _ = doJSON(t, h, http.MethodPost, "/api/cart", `{"productId":"p_2","quantity":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCartAddRejectsQuantityOverStock(t *testing.T) {
	h := newTestHandler(t)

	// p_4 has 5 in stock.
	rec, body := doJSON(t, h, http.MethodPost, "/api/cart", `{"productId":"p_4","quantity":100}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "quantity")

	// The seeded cart is untouched.
	rec, body = doJSON(t, h, http.MethodGet, "/api/cart-count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 4, body["data"].(map[string]interface{})["count"])
}

func TestCartUpdateRejectsNegativeQuantity(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/cart/update", `{"productId":"p_1","quantity":-3}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/cart/update", `{"productId":"p_1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// The p_1 line survives: the seeded count is unchanged.
	rec, body := doJSON(t, h, http.MethodGet, "/api/cart-count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 4, body["data"].(map[string]interface{})["count"])
}

func TestCreateReviewValidation(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/products/p_1/reviews",
		`{"body":"great","stars":9}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, body := doJSON(t, h, http.MethodPost, "/api/products/p_1/reviews",
		`{"body":"Solid pair of headphones.","stars":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	review := body["data"].(map[string]interface{})
	assert.Equal(t, "p_1", review["productId"])
	assert.Equal(t, "demo_user", review["userId"])

	rec, _ = doJSON(t, h, http.MethodPost, "/api/products/p_999/reviews",
		`{"body":"ghost","stars":3}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStarredLifecycle(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/starred/toggle", `{"productId":"p_5"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["data"].(map[string]interface{})["starred"])

	rec, body = doJSON(t, h, http.MethodGet, "/api/starred/count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["data"].(map[string]interface{})["count"])

	rec, body = doJSON(t, h, http.MethodGet, "/api/starred/p_5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["data"].(map[string]interface{})["starred"])

	rec, body = doJSON(t, h, http.MethodGet, "/api/starred", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "p_5", data[0].(map[string]interface{})["id"])

	rec, body = doJSON(t, h, http.MethodPost, "/api/starred/toggle", `{"productId":"p_5"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["data"].(map[string]interface{})["starred"])
}

func TestStarredRejectsUnknownProduct(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/starred", `{"productId":"p_999"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/starred/toggle", `{"productId":"p_999"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/starred/p_999/add", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Nothing dangling got stored.
	rec, body := doJSON(t, h, http.MethodGet, "/api/starred/count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["data"].(map[string]interface{})["count"])
}

func TestStarredUnknownUser(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/starred",
		`{"userId":"u_999","productId":"p_1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileUpdateAndPreferences(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/profile", `{"name":"Demo","email":"nope"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, body := doJSON(t, h, http.MethodPost, "/api/profile",
		`{"name":"Demo Renamed","email":"renamed@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	user := body["data"].(map[string]interface{})
	assert.Equal(t, "Demo Renamed", user["name"])

	rec, _ = doJSON(t, h, http.MethodPost, "/api/preferences", `{"theme":"sepia"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = doJSON(t, h, http.MethodPost, "/api/preferences", `{"theme":"dark"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	user = body["data"].(map[string]interface{})
	prefs := user["preferences"].(map[string]interface{})
	assert.Equal(t, "dark", prefs["theme"])
}

func TestGraphQLProductsQuery(t *testing.T) {
	h := newTestHandler(t)

	rec, body := doJSON(t, h, http.MethodPost, "/graphql",
		`{"query":"{ product(id: \"p_1\") { id title priceCents } }"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "graphql response has a data key: %s", rec.Body.String())
	product := data["product"].(map[string]interface{})
	assert.Equal(t, "p_1", product["id"])
	assert.EqualValues(t, 19999, product["priceCents"])
}

func TestRouteListingCoversPages(t *testing.T) {
	s := store.New()
	s.Seed()

	r, err := Register(Deps{Store: s, Hub: ws.NewHub(), Broker: appevents.NewBroker()})
	require.NoError(t, err)

	names := map[string]bool{}
	for _, ri := range r.Routes() {
		names[ri.Name] = true
	}

	for _, want := range []string{
		"products.index", "products.show", "products.search", "products.trending",
		"reviews.create", "cart.show", "cart.count", "cart.checkout",
		"profile.show", "profile.preferences", "starred.toggle", "sse.events",
		"ws.updates", "graphql", "metrics", "health",
	} {
		assert.True(t, names[want], "route %s registered", want)
	}
}
