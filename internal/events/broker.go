package events

import (
	"sync"
	"time"
)

// Generation stages published while a render request is in flight.
const (
	StageReceived  = "received"
	StageRendering = "rendering"
	StageCompleted = "completed"
	StageFailed    = "failed"
)

// Event describes progress of a single generation request.
type Event struct {
	ID     string    `json:"id"`
	Stage  string    `json:"stage"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

// Broker manages SSE subscribers.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

// NewBroker constructs a broker instance.
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel that receives events.
func (b *Broker) Subscribe() chan Event {
	ch := make(chan Event, 8)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the channel from the broker and closes it.
func (b *Broker) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish fans the event out to all subscribers. A nil broker is a no-op.
func (b *Broker) Publish(evt Event) {
	if b == nil {
		return
	}
	if evt.At.IsZero() {
		evt.At = time.Now()
	}
	b.mu.RLock()
	for ch := range b.subscribers {
		select {
		case ch <- evt:
		default:
			// drop if subscriber is slow
		}
	}
	b.mu.RUnlock()
}

// Subscribers reports the current subscriber count.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
