package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRunDeliversBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Hub: hub, UserID: 9, Role: "admin", Send: make(chan []byte, 4)}
	hub.Register <- client

	hub.Broadcast <- &Message{Type: "catalog_updated", Timestamp: time.Now()}

	select {
	case data := <-client.Send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("broadcast payload not JSON: %v", err)
		}
		if msg.Type != "catalog_updated" {
			t.Errorf("type = %q, want catalog_updated", msg.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("broadcast never reached the registered client")
	}
}

func TestBroadcastMessageDropsSaturatedClient(t *testing.T) {
	hub := NewHub()
	healthy := &Client{UserID: 1, Send: make(chan []byte, 1)}
	stuck := &Client{UserID: 2, Send: make(chan []byte)} // no reader, zero buffer
	hub.Clients[1] = healthy
	hub.Clients[2] = stuck

	hub.broadcastMessage(&Message{Type: "catalog_updated", Timestamp: time.Now()})

	if len(healthy.Send) != 1 {
		t.Errorf("healthy client should have received the message")
	}
	if _, ok := hub.Clients[2]; ok {
		t.Errorf("saturated client should be dropped from the hub")
	}
	if _, ok := hub.Clients[1]; !ok {
		t.Errorf("healthy client should stay registered")
	}
	if _, open := <-stuck.Send; open {
		t.Errorf("dropped client's channel should be closed")
	}
}

func TestSendToRoleTargetsRoleOnly(t *testing.T) {
	hub := NewHub()
	admin := &Client{UserID: 1, Role: "admin", Send: make(chan []byte, 1)}
	client := &Client{UserID: 2, Role: "client", Send: make(chan []byte, 1)}
	hub.Clients[1] = admin
	hub.Clients[2] = client

	hub.SendToRole("admin", &Message{Type: "payment_confirmed", Timestamp: time.Now()})

	if len(admin.Send) != 1 {
		t.Errorf("admin should have received the event")
	}
	if len(client.Send) != 0 {
		t.Errorf("client should not receive admin events")
	}
}
