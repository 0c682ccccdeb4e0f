package events

import (
	"testing"
	"time"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{ID: "req-1", Stage: StageRendering})

	select {
	case evt := <-ch:
		if evt.ID != "req-1" || evt.Stage != StageRendering || evt.At.IsZero() {
			t.Fatalf("unexpected event %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestPublishDropsForSlowSubscribers(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for i := 0; i < 20; i++ {
		b.Publish(Event{Stage: StageReceived})
	}
	if len(ch) != cap(ch) {
		t.Fatalf("expected full buffer, got %d/%d", len(ch), cap(ch))
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	b.Unsubscribe(ch)
	if b.Subscribers() != 0 {
		t.Fatalf("subscribers = %d", b.Subscribers())
	}
	if _, open := <-ch; open {
		t.Fatal("channel should be closed")
	}
}

func TestNilBrokerPublish(t *testing.T) {
	var b *Broker
	b.Publish(Event{Stage: StageFailed})
}
