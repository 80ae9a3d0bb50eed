package notify

import "sync"

// Hub is the in-process Broadcaster. Subscribers attach to a channel name
// and receive events over a buffered Go channel; when a subscriber falls
// behind, the oldest pending event is dropped so broadcasts never block.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[chan Event]struct{}
}

const subscriberBuffer = 16

func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[chan Event]struct{})}
}

// Subscribe attaches to a named channel. The caller must invoke the
// returned cancel function to avoid leaks.
func (h *Hub) Subscribe(channel string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	subs, ok := h.channels[channel]
	if !ok {
		subs = make(map[chan Event]struct{})
		h.channels[channel] = subs
	}
	subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.channels[channel]; ok {
			if _, present := subs[ch]; present {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(h.channels, channel)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Broadcast delivers an event to every subscriber of one channel.
func (h *Hub) Broadcast(channel, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.deliverLocked(h.channels[channel], Event{Name: event, Payload: payload})
}

// BroadcastAll delivers an event to every subscriber of every channel,
// for global announcements like round starts and resets.
func (h *Hub) BroadcastAll(event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, subs := range h.channels {
		h.deliverLocked(subs, Event{Name: event, Payload: payload})
	}
}

func (h *Hub) deliverLocked(subs map[chan Event]struct{}, ev Event) {
	for ch := range subs {
		select {
		case ch <- ev:
		default:
			// Slow subscriber: drop the oldest pending event and retry
			// so the latest state always gets through.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}
