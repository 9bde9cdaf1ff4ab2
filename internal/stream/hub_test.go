package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubLifecycle(t *testing.T) {
	h := NewHub()
	if h.ClientCount() != 0 {
		t.Errorf("fresh hub has %d clients", h.ClientCount())
	}
	if err := h.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
}

func TestHubBroadcastAfterCloseDoesNotBlock(t *testing.T) {
	h := NewHub()
	h.Close()

	done := make(chan struct{})
	go func() {
		h.Broadcast(Frame{T: 1})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked after Close")
	}
}

func TestHubDeliversFrames(t *testing.T) {
	h := NewHub()
	defer h.Close()

	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	h.Broadcast(Frame{
		T:           1.5,
		Populations: []float64{0.5, 0},
		Extinct:     []int{1},
		Event:       &FrameEvent{T: 1.5, Label: "cat2", Damage: 0.15},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Frame
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.T != 1.5 || len(got.Populations) != 2 {
		t.Errorf("frame = %+v", got)
	}
	if got.Event == nil || got.Event.Label != "cat2" {
		t.Errorf("event missing from frame: %+v", got.Event)
	}
}
