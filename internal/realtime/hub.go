package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Change is a table-level change notice. Consumers treat it as a refetch
// signal, not a payload to merge.
type Change struct {
	Table  string `json:"table"`
	Action string `json:"action"` // insert, update, delete
	ID     string `json:"id"`
}

// Hub fans table change notices out to subscribers. Slow subscribers drop
// notices instead of blocking write paths; a dropped notice only costs an
// extra refetch later.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Change]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Change]struct{})}
}

func (h *Hub) Subscribe() chan Change {
	ch := make(chan Change, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Change) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) Publish(table, action string, id uuid.UUID) {
	if h == nil {
		return
	}
	change := Change{Table: table, Action: action, ID: id.String()}

	h.mu.RLock()
	for ch := range h.subs {
		select {
		case ch <- change:
		default:
		}
	}
	h.mu.RUnlock()
}
