package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub, room string) *Client {
	return &Client{
		hub:  hub,
		room: room,
		send: make(chan []byte, 256),
	}
}

func runHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHubRegistration(t *testing.T) {
	hub := runHub(t)
	client := mockClient(hub, "kitchen")

	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.rooms["kitchen"] == nil {
		t.Fatal("room not created")
	}
	if !hub.rooms["kitchen"][client] {
		t.Fatal("client not registered in room")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := runHub(t)
	client := mockClient(hub, "kitchen")

	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount("kitchen") != 0 {
		t.Fatal("room not cleaned up after last client unregistered")
	}
	if _, ok := <-client.send; ok {
		t.Fatal("send channel should be closed")
	}
}

func TestBroadcastToSingleRoom(t *testing.T) {
	hub := runHub(t)

	kitchen := mockClient(hub, "kitchen")
	tracking := mockClient(hub, "tracking")

	hub.register <- kitchen
	hub.register <- tracking
	time.Sleep(10 * time.Millisecond)

	testPayload := json.RawMessage(`{"order_number":"001"}`)
	hub.BroadcastToRoom("kitchen", Event{Type: "order.created", Payload: testPayload})

	select {
	case msg := <-kitchen.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if received.Type != "order.created" {
			t.Errorf("expected type 'order.created', got '%s'", received.Type)
		}
		if string(received.Payload) != string(testPayload) {
			t.Errorf("expected payload '%s', got '%s'", testPayload, received.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("kitchen client did not receive message")
	}

	select {
	case <-tracking.send:
		t.Fatal("tracking client should not have received kitchen message")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastToMultipleClientsInSameRoom(t *testing.T) {
	hub := runHub(t)

	clients := []*Client{mockClient(hub, "tracking"), mockClient(hub, "tracking"), mockClient(hub, "tracking")}
	for _, c := range clients {
		hub.register <- c
	}
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastToRoom("tracking", Event{
		Type:    "order.status_changed",
		Payload: json.RawMessage(`{"status":"READY"}`),
	})

	for i, client := range clients {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("client%d: failed to unmarshal: %v", i+1, err)
			}
			if received.Type != "order.status_changed" {
				t.Errorf("client%d: expected type 'order.status_changed', got '%s'", i+1, received.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive message", i+1)
		}
	}
}

func TestHubCleanupEmptyRoom(t *testing.T) {
	hub := runHub(t)
	client1 := mockClient(hub, "kitchen")
	client2 := mockClient(hub, "kitchen")

	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	if n := hub.ClientCount("kitchen"); n != 2 {
		t.Fatalf("expected 2 clients, got %d", n)
	}

	hub.unregister <- client1
	time.Sleep(10 * time.Millisecond)
	if n := hub.ClientCount("kitchen"); n != 1 {
		t.Fatalf("expected 1 client after first unregister, got %d", n)
	}

	hub.unregister <- client2
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if hub.rooms["kitchen"] != nil {
		t.Fatal("room should be deleted when last client unregisters")
	}
}

func TestSlowClientDropped(t *testing.T) {
	hub := runHub(t)
	slow := &Client{hub: hub, room: "kitchen", send: make(chan []byte)}

	hub.register <- slow
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastToRoom("kitchen", Event{Type: "order.created", Payload: json.RawMessage(`{}`)})
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount("kitchen") != 0 {
		t.Fatal("slow client should have been dropped")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := mockClient(hub, "tracking")
	hub.register <- client
	cancel()

	select {
	case <-hub.done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("hub did not stop")
	}
	if _, ok := <-client.send; ok {
		t.Fatal("client channel should be closed on shutdown")
	}
	if hub.join(mockClient(hub, "tracking")) {
		t.Fatal("join should fail after shutdown")
	}
}

func TestRoomFor(t *testing.T) {
	tests := []struct {
		requested, role, want string
		ok                    bool
	}{
		{"", "ADMIN", "kitchen", true},
		{"", "CUSTOMER", "tracking", true},
		{"kitchen", "CUSTOMER", "kitchen", true},
		{"tracking", "ADMIN", "tracking", true},
		{"lobby", "ADMIN", "", false},
	}
	for _, tt := range tests {
		got, ok := roomFor(tt.requested, tt.role)
		if got != tt.want || ok != tt.ok {
			t.Errorf("roomFor(%q, %q) = %q, %v; want %q, %v", tt.requested, tt.role, got, ok, tt.want, tt.ok)
		}
	}
}
