package websocket

import (
	"encoding/json"
	"sync"
)

// HoldingUpdate is pushed to a user's connected clients after every
// successful portfolio mutation.
type HoldingUpdate struct {
	HoldingID string  `json:"holdingId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	TotalCost float64 `json:"totalCost"`
	Action    string  `json:"action"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][client] = struct{}{}
}

func (h *Hub) Unregister(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		return
	}
	delete(h.clients[userID], client)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// BroadcastHolding is best-effort: a client with a full send buffer is
// skipped rather than blocking the mutation path.
func (h *Hub) BroadcastHolding(userID string, update HoldingUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
