package notify

import (
	"sync"

	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
)

const subscriberBuffer = 8

// Hub routes notifications to realtime subscribers keyed by employee ID.
// Delivery is fire-and-forget: a slow or absent subscriber never blocks
// the publisher.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan *storage.NotificationRecord]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan *storage.NotificationRecord]struct{})}
}

// Subscribe registers a channel for an employee's notifications. The
// returned cancel func must be called to release the subscription.
func (h *Hub) Subscribe(employeeID string) (<-chan *storage.NotificationRecord, func()) {
	ch := make(chan *storage.NotificationRecord, subscriberBuffer)

	h.mu.Lock()
	if h.subs[employeeID] == nil {
		h.subs[employeeID] = make(map[chan *storage.NotificationRecord]struct{})
	}
	h.subs[employeeID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[employeeID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, employeeID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a notification to all subscribers of an employee.
// Full buffers are skipped rather than blocked on.
func (h *Hub) Publish(employeeID string, n *storage.NotificationRecord) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[employeeID] {
		select {
		case ch <- n:
		default:
		}
	}
}
