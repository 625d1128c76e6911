package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Event is pushed to a user's connected clients whenever their data changes
// server-side, so open dashboards refetch and recompute.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventRecordCreated   = "record_created"
	EventRecordDeleted   = "record_deleted"
	EventRecordsImported = "records_imported"
	EventSettingsUpdated = "settings_updated"
)

// Hub tracks websocket clients per user and fans events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
	logger  *zap.Logger
}

// NewHub builds an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.userID)
		}
	}
}

// Notify sends the event to every client of the given user. Slow clients
// that cannot keep up are dropped rather than blocking the caller.
func (h *Hub) Notify(userID int64, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("failed to encode ws event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping slow ws client", zap.Int64("user_id", userID))
			c.closeOnce()
		}
	}
}

// ClientCount returns the number of connected clients for a user.
func (h *Hub) ClientCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
