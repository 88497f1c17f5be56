// Package events names the storefront's domain events and fans them out to
// the live channels (SSE, WebSocket) and the Prometheus gauges.
//
// Mutating endpoints fire one of these after a successful write; connected
// browsers use the signal to refetch the affected data, the way a revalidated
// page would.
package events

import (
	"encoding/json"

	"github.com/shashiranjanraj/launchpad/pkg/event"
	"github.com/shashiranjanraj/launchpad/pkg/logger"
	"github.com/shashiranjanraj/launchpad/pkg/metrics"
	"github.com/shashiranjanraj/launchpad/pkg/ws"
)

// Event names. The payload for each is the matching struct below.
const (
	CartUpdated      = "cart.updated"
	FavoritesUpdated = "favorites.updated"
	ProfileUpdated   = "profile.updated"
	ReviewAdded      = "review.added"
	OrderPlaced      = "order.placed"
)

// CartPayload accompanies cart.updated.
type CartPayload struct {
	UserID    string `json:"userId"`
	ItemCount int    `json:"itemCount"`
}

// FavoritesPayload accompanies favorites.updated.
type FavoritesPayload struct {
	UserID string `json:"userId"`
	Count  int    `json:"count"`
}

// ProfilePayload accompanies profile.updated.
type ProfilePayload struct {
	UserID string `json:"userId"`
}

// ReviewPayload accompanies review.added.
type ReviewPayload struct {
	ProductID string `json:"productId"`
	ReviewID  string `json:"reviewId"`
}

// OrderPayload accompanies order.placed.
type OrderPayload struct {
	UserID     string `json:"userId"`
	OrderID    string `json:"orderId"`
	TotalCents int    `json:"totalCents"`
}

// envelope is the wire shape pushed to SSE and WebSocket clients.
type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// RegisterListeners subscribes the live channels and metrics gauges to every
// domain event. Call once at boot, after the hub is running.
func RegisterListeners(hub *ws.Hub, broker *Broker) {
	push := func(name string) event.Handler {
		return func(payload interface{}) {
			raw, err := json.Marshal(envelope{Event: name, Data: payload})
			if err != nil {
				logger.Error("events: marshal", "event", name, "error", err)
				return
			}
			if hub != nil {
				hub.Broadcast <- raw
			}
			if broker != nil {
				broker.Publish(name, raw)
			}
		}
	}

	for _, name := range []string{CartUpdated, FavoritesUpdated, ProfileUpdated, ReviewAdded, OrderPlaced} {
		event.Listen(name, push(name))
	}

	// Gauges mirror the latest counts so dashboards track the demo state.
	event.Listen(CartUpdated, func(payload interface{}) {
		if p, ok := payload.(CartPayload); ok {
			metrics.CartItems.WithLabelValues(p.UserID).Set(float64(p.ItemCount))
		}
	})
	event.Listen(FavoritesUpdated, func(payload interface{}) {
		if p, ok := payload.(FavoritesPayload); ok {
			metrics.StarredProducts.WithLabelValues(p.UserID).Set(float64(p.Count))
		}
	})
}
