// Package event provides a simple synchronous/async event dispatcher.
//
// Mutating endpoints fire domain events ("cart.updated", "favorites.updated")
// and listeners push refresh signals out over SSE and WebSocket.
package event

import (
	"sync"

	"github.com/shashiranjanraj/launchpad/pkg/workerpool"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
	pool     *workerpool.Pool
)

// UsePool routes FireAsync through a bounded worker pool instead of raw
// goroutines. Call once at boot; pass nil to go back to plain goroutines.
func UsePool(p *workerpool.Pool) {
	mu.Lock()
	pool = p
	mu.Unlock()
}

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire dispatches an event synchronously to all registered listeners.
func Fire(event string, payload interface{}) {
	for _, h := range snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners without waiting for them.
// With a pool installed, handlers run on pool workers; a full pool falls
// back to a plain goroutine so events are never dropped.
func FireAsync(event string, payload interface{}) {
	mu.RLock()
	p := pool
	mu.RUnlock()

	for _, h := range snapshot(event) {
		h := h
		if p != nil && p.Submit(func() { h(payload) }) == nil {
			continue
		}
		go h(payload)
	}
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

func snapshot(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}
