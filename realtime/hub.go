// Package realtime fans change events out to connected subscribers.
package realtime

import (
	"sync"

	"github.com/princinho/boutique/logx"
	"github.com/princinho/boutique/models"
)

type Topic string

const (
	TopicSettings Topic = "settings"
	TopicProducts Topic = "products"
)

type Event struct {
	Topic    Topic                 `json:"topic"`
	Settings *models.StoreSettings `json:"settings,omitempty"`
	Product  *models.ProductEvent  `json:"product,omitempty"`
}

const defaultBuffer = 16

// Hub delivers every published event to every subscriber. Delivery never
// blocks the publisher: a subscriber whose buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	buffer int
}

func NewHub() *Hub {
	return &Hub{subs: map[int]chan Event{}, buffer: defaultBuffer}
}

// Subscribe returns the event channel and a function that cancels the
// subscription and closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan Event, h.buffer)
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			logx.Warn().Int("subscriber", id).Str("topic", string(ev.Topic)).Msg("subscriber is slow, dropping event")
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
