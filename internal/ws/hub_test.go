package ws

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"
)

func TestHubNotifiesAllClientsOfUser(t *testing.T) {
	hub := NewHub(zap.NewNop())

	first := newClient(1, nil, zap.NewNop())
	second := newClient(1, nil, zap.NewNop())
	other := newClient(2, nil, zap.NewNop())
	hub.add(first)
	hub.add(second)
	hub.add(other)

	hub.Notify(1, Event{Type: EventRecordCreated})

	for _, c := range []*Client{first, second} {
		select {
		case data := <-c.send:
			var event Event
			if err := json.Unmarshal(data, &event); err != nil {
				t.Fatalf("decode event: %v", err)
			}
			if event.Type != EventRecordCreated {
				t.Fatalf("expected %s, got %s", EventRecordCreated, event.Type)
			}
		default:
			t.Fatalf("client did not receive event")
		}
	}

	select {
	case <-other.send:
		t.Fatalf("event leaked to another user's client")
	default:
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(zap.NewNop())

	c := newClient(1, nil, zap.NewNop())
	hub.add(c)

	for i := 0; i < sendBuffer+5; i++ {
		hub.Notify(1, Event{Type: EventRecordCreated})
	}

	if len(c.send) != sendBuffer {
		t.Fatalf("expected full buffer of %d, got %d", sendBuffer, len(c.send))
	}
}

func TestHubRemoveAndCount(t *testing.T) {
	hub := NewHub(zap.NewNop())

	c := newClient(7, nil, zap.NewNop())
	hub.add(c)
	if hub.ClientCount(7) != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount(7))
	}

	hub.remove(c)
	if hub.ClientCount(7) != 0 {
		t.Fatalf("expected 0 clients after remove, got %d", hub.ClientCount(7))
	}

	// Notify on an empty hub must not panic.
	hub.Notify(7, Event{Type: EventRecordDeleted})
}
