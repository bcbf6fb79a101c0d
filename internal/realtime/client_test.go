package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/studyhall-app/studyhall-service/internal/events"
)

// liveContextMembership fails the check if the context it runs under has
// already been canceled, the way a real database driver would.
type liveContextMembership struct{}

func (liveContextMembership) IsMember(ctx context.Context, chatID, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return true, nil
}

func TestJoinPrivateChatAfterHandlerReturns(t *testing.T) {
	hub := newTestHub(liveContextMembership{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, "member", "member")
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// the HTTP handler has returned by now and its request context with it;
	// the membership check for this join must still see a live context
	time.Sleep(50 * time.Millisecond)

	join := WsEvent{Event: "join-private-chat", Data: json.RawMessage(`"chat-1"`)}
	if err := conn.WriteJSON(join); err != nil {
		t.Fatalf("write join: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got WsEvent
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read response: %v", err)
	}
	if got.Event != events.EventJoined {
		t.Fatalf("got event %q (%s), want %q", got.Event, got.Data, events.EventJoined)
	}
}

func TestPublishDuringDisconnect(t *testing.T) {
	hub := newTestHub(nil)
	payload := json.RawMessage(`{"content":"hi"}`)

	for i := 0; i < 200; i++ {
		c := newTestClient("u1")
		hub.Subscribe(c, events.GlobalRoom)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Publish(events.GlobalRoom, events.EventNewMessage, payload)
		}()
		go func() {
			defer wg.Done()
			hub.Disconnect(c)
			c.Close()
		}()
		wg.Wait()
	}
}

func TestSendAfterCloseIsDropped(t *testing.T) {
	c := newTestClient("u1")
	c.Close()
	c.Close() // idempotent

	if c.trySend(WsEvent{Event: events.EventNewMessage}) {
		t.Fatal("trySend succeeded on a closed client")
	}
	if got := drain(t, c); len(got) != 0 {
		t.Fatalf("closed client buffered %v, want nothing", got)
	}
}
