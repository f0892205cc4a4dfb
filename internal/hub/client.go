package hub

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

type client struct {
	id   string
	hub  *implHub
	conn *websocket.Conn
	send chan []byte
}

// pushState queues the full current state for this client only.
func (c *client) pushState(ctx context.Context) {
	view := c.hub.state()

	transcriptMsg, err := encodeTranscript(view.Transcript, nil)
	if err != nil {
		c.hub.logger.Error(ctx, "Encode transcript event: %v", err)
		return
	}
	summaryMsg, err := encodeSummary(view.Summary)
	if err != nil {
		c.hub.logger.Error(ctx, "Encode summary event: %v", err)
		return
	}

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.clients[c.id]; !ok {
		return
	}
	for _, msg := range [][]byte{transcriptMsg, summaryMsg} {
		select {
		case c.send <- msg:
		default:
			c.hub.logger.Warn(ctx, "Client %s send buffer full, dropping state", c.id)
		}
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn(context.Background(), "Client %s read error: %v", c.id, err)
			}
			return
		}
		if msg.Event == EventRequestUpdate {
			c.pushState(context.Background())
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
