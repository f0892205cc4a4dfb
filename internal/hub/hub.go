package hub

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/live-summary/internal/orchestrator"
	"github.com/nguyentantai21042004/live-summary/internal/transcript"
)

func (h *implHub) TranscriptChanged(ctx context.Context, snap transcript.Snapshot, added *transcript.Utterance) {
	msg, err := encodeTranscript(snap, added)
	if err != nil {
		h.logger.Error(ctx, "Encode transcript event: %v", err)
		return
	}

	h.revMu.Lock()
	defer h.revMu.Unlock()
	if snap.Revision < h.lastTranscriptRev {
		h.logger.Debug(ctx, "Dropping transcript event for revision %d, already sent %d", snap.Revision, h.lastTranscriptRev)
		return
	}
	h.lastTranscriptRev = snap.Revision
	h.broadcast(ctx, msg)
}

func (h *implHub) SummaryChanged(ctx context.Context, s orchestrator.Summary) {
	msg, err := encodeSummary(s)
	if err != nil {
		h.logger.Error(ctx, "Encode summary event: %v", err)
		return
	}
	h.broadcast(ctx, msg)
}

// broadcast never blocks; the read lock keeps unregister from closing a
// send channel mid-loop.
func (h *implHub) broadcast(ctx context.Context, msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn(ctx, "Client %s send buffer full, dropping event", id)
		}
	}
}

func (h *implHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(ctx, "Websocket upgrade failed: %v", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	h.logger.Info(ctx, "Client connected: %s", c.id)

	c.pushState(context.Background())
	go c.writePump()
	go c.readPump()
}

func (h *implHub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
	h.logger.Info(context.Background(), "Client disconnected: %s", c.id)
}

func (h *implHub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *implHub) Close() {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.unregister(c)
	}
}
