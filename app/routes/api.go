// Package routes declares every HTTP route and the middleware stack.
package routes

import (
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/shashiranjanraj/launchpad/app/controllers"
	appevents "github.com/shashiranjanraj/launchpad/app/events"
	appgraphql "github.com/shashiranjanraj/launchpad/app/graphql"
	"github.com/shashiranjanraj/launchpad/app/services"
	"github.com/shashiranjanraj/launchpad/internal/store"
	"github.com/shashiranjanraj/launchpad/pkg/ctx"
	"github.com/shashiranjanraj/launchpad/pkg/metrics"
	"github.com/shashiranjanraj/launchpad/pkg/middleware"
	"github.com/shashiranjanraj/launchpad/pkg/reqid"
	"github.com/shashiranjanraj/launchpad/pkg/router"
	"github.com/shashiranjanraj/launchpad/pkg/session"
	"github.com/shashiranjanraj/launchpad/pkg/storage"
	"github.com/shashiranjanraj/launchpad/pkg/ws"
)

// Deps carries everything the routes need. Constructed once at boot and in
// tests; nothing here is a global.
type Deps struct {
	Store  *store.Store
	Hub    *ws.Hub
	Broker *appevents.Broker
}

// Register builds the full router: middleware stack, REST API, GraphQL,
// live streams, and static product images.
func Register(deps Deps) (*router.Router, error) {
	catalog := services.NewCatalog(deps.Store)
	carts := services.NewCarts(deps.Store)
	profiles := services.NewProfiles(deps.Store)

	schema, err := appgraphql.NewSchema(catalog)
	if err != nil {
		return nil, err
	}

	catalogCtl := &controllers.CatalogController{Catalog: catalog}
	cartCtl := &controllers.CartController{Carts: carts}
	profileCtl := &controllers.ProfileController{Profiles: profiles}
	starredCtl := &controllers.StarredController{Profiles: profiles, Catalog: catalog}
	streamCtl := &controllers.StreamController{Broker: deps.Broker, Hub: deps.Hub}
	graphqlCtl := &controllers.GraphQLController{Schema: schema}

	r := router.New()

	// Outermost first: metrics sees everything, recovery wraps the rest.
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))

	r.Get("/health", "health", health)
	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	// Catalogue
	api.Get("/products", "products.index", ctx.Wrap(catalogCtl.Index))
	api.Get("/products/{id}", "products.show", ctx.Wrap(catalogCtl.Show))
	api.Get("/products/{id}/reviews", "reviews.index", ctx.Wrap(catalogCtl.Reviews))
	api.Post("/products/{id}/reviews", "reviews.create", ctx.Wrap(catalogCtl.CreateReview))
	api.Get("/search", "products.search", ctx.Wrap(catalogCtl.Search))
	api.Get("/trending", "products.trending", ctx.Wrap(catalogCtl.Trending))
	api.Get("/recommended", "products.recommended", ctx.Wrap(catalogCtl.Recommended))

	// Cart
	api.Get("/cart", "cart.show", ctx.Wrap(cartCtl.Show))
	api.Get("/cart-count", "cart.count", ctx.Wrap(cartCtl.Count))
	api.Post("/cart", "cart.add", ctx.Wrap(cartCtl.Add))
	api.Post("/cart/update", "cart.update", ctx.Wrap(cartCtl.Update))
	api.Post("/cart/remove", "cart.remove", ctx.Wrap(cartCtl.Remove))
	api.Post("/cart/clear", "cart.clear", ctx.Wrap(cartCtl.Clear))
	api.Post("/checkout", "cart.checkout", ctx.Wrap(cartCtl.Checkout))

	// Profile
	api.Get("/profile", "profile.show", ctx.Wrap(profileCtl.Show))
	api.Post("/profile", "profile.update", ctx.Wrap(profileCtl.Update))
	api.Post("/preferences", "profile.preferences", ctx.Wrap(profileCtl.UpdatePreferences))

	// Starred
	api.Get("/starred", "starred.index", ctx.Wrap(starredCtl.Index))
	api.Get("/starred/count", "starred.count", ctx.Wrap(starredCtl.Count))
	api.Get("/favorites-count", "favorites.count", ctx.Wrap(starredCtl.Count))
	api.Get("/starred/{productId}", "starred.probe", ctx.Wrap(starredCtl.Probe))
	api.Post("/starred", "starred.add", ctx.Wrap(starredCtl.Add))
	api.Post("/starred/remove", "starred.remove", ctx.Wrap(starredCtl.Remove))
	api.Post("/starred/toggle", "starred.toggle", ctx.Wrap(starredCtl.Toggle))
	api.Post("/starred/{productId}/add", "starred.add_by_path", ctx.Wrap(starredCtl.AddByPath))
	api.Post("/starred/{productId}/remove", "starred.remove_by_path", ctx.Wrap(starredCtl.RemoveByPath))

	// GraphQL
	r.Post("/graphql", "graphql", ctx.Wrap(graphqlCtl.Query))
	r.Get("/graphql", "graphql.get", ctx.Wrap(graphqlCtl.Query))

	// Live updates
	r.Get("/events", "sse.events", ctx.Wrap(streamCtl.Events))
	r.Get("/ws/updates", "ws.updates", ctx.Wrap(streamCtl.Updates))

	// Product images from the storage disk (local by default, S3 when
	// configured).
	r.Get("/storage/*", "storage.file", ctx.Wrap(serveStorage))

	return r, nil
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
}

func serveStorage(c *ctx.Context) {
	rel := c.Param("*")
	if rel == "" || path.Clean("/"+rel) != "/"+rel {
		c.NotFound()
		return
	}

	data, err := storage.Get(rel)
	if err != nil {
		c.NotFound()
		return
	}

	contentType := mime.TypeByExtension(path.Ext(rel))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	c.SetHeader("Content-Type", contentType)
	c.W.WriteHeader(http.StatusOK)
	c.W.Write(data) //nolint:errcheck
}
