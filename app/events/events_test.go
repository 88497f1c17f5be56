package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/launchpad/pkg/event"
	"github.com/shashiranjanraj/launchpad/pkg/ws"
)

func TestListenersFanOutToHubAndBroker(t *testing.T) {
	hub := ws.NewHub()
	broker := NewBroker()
	RegisterListeners(hub, broker)
	t.Cleanup(event.Flush)

	msgs, cancel := broker.Subscribe()
	defer cancel()

	event.Fire(CartUpdated, CartPayload{UserID: "demo_user", ItemCount: 3})

	// The broker gets the wire envelope.
	select {
	case msg := <-msgs:
		assert.Equal(t, CartUpdated, msg.Event)

		var env struct {
			Event string      `json:"event"`
			Data  CartPayload `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg.Data, &env))
		assert.Equal(t, CartUpdated, env.Event)
		assert.Equal(t, "demo_user", env.Data.UserID)
		assert.Equal(t, 3, env.Data.ItemCount)
	case <-time.After(time.Second):
		t.Fatal("broker never received the event")
	}

	// The hub gets the identical bytes on its broadcast channel.
	select {
	case raw := <-hub.Broadcast:
		assert.Contains(t, string(raw), `"event":"cart.updated"`)
	case <-time.After(time.Second):
		t.Fatal("hub never received the event")
	}
}

func TestListenersCoverEveryEvent(t *testing.T) {
	hub := ws.NewHub()
	broker := NewBroker()
	RegisterListeners(hub, broker)
	t.Cleanup(event.Flush)

	msgs, cancel := broker.Subscribe()
	defer cancel()

	fired := []struct {
		name    string
		payload interface{}
	}{
		{FavoritesUpdated, FavoritesPayload{UserID: "demo_user", Count: 1}},
		{ProfileUpdated, ProfilePayload{UserID: "demo_user"}},
		{ReviewAdded, ReviewPayload{ProductID: "p_1", ReviewID: "r_9"}},
		{OrderPlaced, OrderPayload{UserID: "demo_user", OrderID: "order_1", TotalCents: 100}},
	}

	for _, f := range fired {
		event.Fire(f.name, f.payload)
	}

	seen := map[string]bool{}
	for range fired {
		select {
		case msg := <-msgs:
			seen[msg.Event] = true
		case <-time.After(time.Second):
			t.Fatalf("only saw %v", seen)
		}
	}

	for _, f := range fired {
		assert.True(t, seen[f.name], "event %s reached the broker", f.name)
	}
}
