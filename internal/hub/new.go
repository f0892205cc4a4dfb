package hub

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/nguyentantai21042004/live-summary/internal/logger"
)

type implHub struct {
	state      StateFunc
	logger     logger.Logger
	sendBuffer int
	upgrader   websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client

	revMu             sync.Mutex
	lastTranscriptRev uint64
}

// minSendBuffer fits the transcript and summary events pushed on connect.
const minSendBuffer = 2

// New creates a Hub. sendBuffer is the per-client queue length, at least
// minSendBuffer.
func New(state StateFunc, sendBuffer int, log logger.Logger) Hub {
	if sendBuffer <= 0 {
		sendBuffer = 16
	}
	if sendBuffer < minSendBuffer {
		sendBuffer = minSendBuffer
	}
	return &implHub{
		state:      state,
		logger:     log,
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*client),
	}
}
