// Package hub pushes transcript and summary changes to websocket clients.
package hub

import (
	"net/http"

	"github.com/nguyentantai21042004/live-summary/internal/orchestrator"
)

// Hub is an orchestrator.Observer that fans events out to every connected
// websocket client. Delivery is best effort: a client whose send buffer is
// full misses the event.
type Hub interface {
	orchestrator.Observer
	ServeWS(w http.ResponseWriter, r *http.Request)
	Clients() int
	Close()
}

// StateFunc returns the state sent to a client on connect and on
// request_update.
type StateFunc func() orchestrator.View
