package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/starford/startpage/internal/startpage"
)

func drain(ch chan []byte) []string {
	var out []string
	for {
		select {
		case msg := <-ch:
			out = append(out, string(msg))
		default:
			return out
		}
	}
}

func count(msgs []string, event string) int {
	n := 0
	for _, m := range msgs {
		if strings.HasPrefix(m, "event: "+event+"\n") {
			n++
		}
	}
	return n
}

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(0)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(0)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: EventLinksChanged, Data: map[string]int{"count": 3}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: links.changed") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"count":3`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishChangeEvents(t *testing.T) {
	b := NewBroker(0)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishChange(startpage.Notes, "")
	b.PublishChange(startpage.Links, "")
	b.PublishChange(startpage.DateNotes, "2024-03-05")
	b.PublishChange(startpage.DateNotes, "2024-03-06")

	// The loop handles one request per select, so wait for it to catch up.
	time.Sleep(50 * time.Millisecond)
	msgs := drain(ch)

	if count(msgs, EventNotesChanged) != 1 || count(msgs, EventLinksChanged) != 1 {
		t.Errorf("messages = %q", msgs)
	}
	if count(msgs, EventDateNotesChanged) != 2 {
		t.Errorf("date note events = %d, want 2", count(msgs, EventDateNotesChanged))
	}
	if count(msgs, EventCalendarUpdated) != 2 {
		t.Errorf("calendar events = %d, want one per date-note change", count(msgs, EventCalendarUpdated))
	}
	if !strings.Contains(strings.Join(msgs, ""), `"date":"2024-03-05"`) {
		t.Errorf("date missing from %q", msgs)
	}
}

func TestCalendarThrottle(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishChange(startpage.DateNotes, "2024-03-05")
	b.PublishChange(startpage.DateNotes, "2024-03-05")

	time.Sleep(50 * time.Millisecond)
	msgs := drain(ch)
	if count(msgs, EventDateNotesChanged) != 2 {
		t.Errorf("date note events = %d, want 2", count(msgs, EventDateNotesChanged))
	}
	if count(msgs, EventCalendarUpdated) != 1 {
		t.Errorf("calendar events = %d, want 1 (throttled)", count(msgs, EventCalendarUpdated))
	}
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker(0)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.PublishChange(startpage.Notes, "")
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	if body := w.Body.String(); !strings.Contains(body, "event: notes.changed") {
		t.Errorf("handler output missing event: %q", body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}

	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 0 {
		t.Errorf("client not cleaned up after disconnect")
	}
}

func TestPublishDropsOnFullBuffer(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Client buffer holds 64; the rest must be dropped without blocking.
	for i := 0; i < 70; i++ {
		b.Publish(Event{Type: "test", Data: map[string]string{"i": "x"}})
	}
}

func TestCloseClosesSubscribersAndStopsOperations(t *testing.T) {
	b := NewBroker(0)
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}

	b.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}

	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close")
	}

	b.Publish(Event{Type: EventNotesChanged})
	b.PublishChange(startpage.Notes, "")
}
