package events

import "sync"

// Msg is one event ready to be written to an SSE stream.
type Msg struct {
	Event string
	Data  []byte // JSON envelope
}

// Broker fans published events out to every subscribed SSE connection.
// Slow subscribers are skipped, not waited on.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan Msg]struct{}
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[chan Msg]struct{})}
}

// Subscribe registers a new subscriber. The returned cancel func must be
// called when the client disconnects.
func (b *Broker) Subscribe() (<-chan Msg, func()) {
	ch := make(chan Msg, 16)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber with room in its buffer.
func (b *Broker) Publish(event string, data []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- Msg{Event: event, Data: data}:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
