package chat

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &wsClient{
		Send: make(chan []byte, 10),
		Room: "conv1",
	}
	hub.register <- client

	msg := wirePayload{Type: "message", Sender: "admin", Message: "hello test"}
	data, _ := json.Marshal(msg)
	hub.broadcast <- broadcastMsg{Room: "conv1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubBroadcastIsRoomScoped(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &wsClient{Send: make(chan []byte, 10), Room: "convA"}
	b := &wsClient{Send: make(chan []byte, 10), Room: "convB"}
	hub.register <- a
	hub.register <- b

	hub.broadcast <- broadcastMsg{Room: "convA", Data: []byte("only-a")}

	select {
	case got := <-a.Send:
		if string(got) != "only-a" {
			t.Fatalf("unexpected payload %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case got := <-b.Send:
		t.Fatalf("room convB should not receive %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSendDuringStopDoesNotPanic(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &wsClient{Send: make(chan []byte, 4), Room: "conv1"}
	hub.register <- client

	// Hammer the client from a writer goroutine while the hub shuts
	// down, the way a history replay races a server stop.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			client.trySend([]byte("history"))
		}
	}()

	hub.Stop()
	<-done

	// Drain until the hub's close lands.
	deadline := time.After(1 * time.Second)
	for {
		select {
		case _, ok := <-client.Send:
			if !ok {
				if client.trySend([]byte("late")) {
					t.Fatal("send after close should report failure")
				}
				return
			}
		case <-deadline:
			t.Fatal("timeout waiting for channel close")
		}
	}
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &wsClient{Send: make(chan []byte, 1), Room: "conv1"}
	hub.register <- client

	hub.Stop()

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for channel close")
	}
}
