package controllers

import (
	"time"

	"github.com/shashiranjanraj/launchpad/app/events"
	"github.com/shashiranjanraj/launchpad/pkg/ctx"
	"github.com/shashiranjanraj/launchpad/pkg/sse"
	"github.com/shashiranjanraj/launchpad/pkg/ws"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 25 * time.Second

// StreamController pushes live refresh signals to connected browsers over
// SSE and WebSocket. The payloads are the domain event envelopes.
type StreamController struct {
	Broker *events.Broker
	Hub    *ws.Hub
}

// Events handles GET /events — a long-lived SSE stream of domain events.
func (sc *StreamController) Events(c *ctx.Context) {
	stream := sse.New(c.W, c.R)
	if stream == nil {
		return
	}

	msgs, cancel := sc.Broker.Subscribe()
	defer cancel()

	stream.Comment("connected")

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.R.Context().Done():
			return
		case <-heartbeat.C:
			stream.Comment("keepalive")
			if stream.IsClosed() {
				return
			}
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			stream.SendRaw(string(msg.Data))
			if stream.IsClosed() {
				return
			}
		}
	}
}

// Updates handles GET /ws/updates — the WebSocket flavor of the same feed.
func (sc *StreamController) Updates(c *ctx.Context) {
	ws.Upgrade(c.W, c.R, sc.Hub)
}
