package sse

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestBroker_SubscribeAndPublish(t *testing.T) {
	b := NewBroker(time.Millisecond)
	defer b.Close()

	ch := b.Subscribe()
	if n := b.ClientCount(); n != 1 {
		t.Fatalf("ClientCount = %d, want 1", n)
	}

	b.Publish(Event{Type: "ping", Data: map[string]string{"x": "1"}})

	select {
	case msg := <-ch:
		if !strings.Contains(string(msg), "event: ping") {
			t.Errorf("msg = %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestBroker_PublishReload(t *testing.T) {
	b := NewBroker(time.Millisecond)
	defer b.Close()

	ch := b.Subscribe()
	b.PublishReload("abc123")

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "lexicon.reloaded") || !strings.Contains(s, "abc123") {
			t.Errorf("msg = %q", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reload event received")
	}
}

func TestBroker_ReloadThrottle(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()

	ch := b.Subscribe()
	b.PublishReload("first")
	b.PublishReload("second")

	// First goes through.
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("first reload not broadcast")
	}
	// Second falls inside the throttle window.
	select {
	case msg := <-ch:
		t.Errorf("unexpected second broadcast: %q", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBroker_Unsubscribe(t *testing.T) {
	b := NewBroker(time.Millisecond)
	defer b.Close()

	ch := b.Subscribe()
	b.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Error("channel not closed after unsubscribe")
	}
	if n := b.ClientCount(); n != 0 {
		t.Errorf("ClientCount = %d, want 0", n)
	}
}

func TestBroker_CloseIsIdempotent(t *testing.T) {
	b := NewBroker(time.Millisecond)
	ch := b.Subscribe()
	b.Close()
	b.Close()
	if _, ok := <-ch; ok {
		t.Error("channel not closed after Close")
	}
	if n := b.ClientCount(); n != 0 {
		t.Errorf("ClientCount after Close = %d", n)
	}
}

func TestBroker_ServeHTTPStreams(t *testing.T) {
	b := NewBroker(time.Millisecond)
	defer b.Close()

	req := httptest.NewRequest("GET", "/api/events", nil)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.ServeHTTP(rec, req)
	}()

	// Wait for the handler to subscribe, then push an event and drop the
	// client by closing the broker.
	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	b.Publish(Event{Type: "ping", Data: map[string]int{"n": 1}})
	b.Close()
	<-done

	body := rec.Body.String()
	if !strings.Contains(body, "event: ping") {
		t.Errorf("body = %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
}

// The broker loop must not outlive Close.
func TestBroker_NoGoroutineLeak(t *testing.T) {
	defer goleak.VerifyNone(t)
	b := NewBroker(time.Millisecond)
	ch := b.Subscribe()
	b.Publish(Event{Type: "ping", Data: nil})
	<-ch
	b.Close()
}
