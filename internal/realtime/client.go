package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/studyhall-app/studyhall-service/internal/events"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBufSize    = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the API is bearer-token authenticated; the token gates the socket too
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket connection owned by an authenticated user.
type Client struct {
	userID   string
	username string
	conn     *websocket.Conn
	hub      *Hub
	egress   chan WsEvent
	done     chan struct{}
	once     sync.Once
}

// ServeWS upgrades the request and runs the client pumps until disconnect.
// The caller has already authenticated the user.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID, username string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &Client{
		userID:   userID,
		username: username,
		conn:     conn,
		hub:      h,
		egress:   make(chan WsEvent, sendBufSize),
		done:     make(chan struct{}),
	}

	go c.writePump()
	// the request context ends as soon as this handler returns, while the
	// connection lives on; client events must not inherit it
	go c.readPump(context.Background())
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.Disconnect(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var ev WsEvent
		if err := c.conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				c.hub.logger.Warn("unexpected websocket close", "user_id", c.userID, "error", err)
			}
			return
		}
		c.hub.handleClientEvent(ctx, c, ev)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
			return
		case ev := <-c.egress:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// trySend enqueues without blocking; a full buffer or a closed client means
// the event is dropped. The egress channel itself is never closed, so a
// publish racing a disconnect cannot send on a closed channel.
func (c *Client) trySend(ev WsEvent) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.egress <- ev:
		return true
	default:
		return false
	}
}

func (c *Client) sendJoined(room string) {
	payload, _ := json.Marshal(map[string]string{"room": room})
	c.trySend(WsEvent{Event: events.EventJoined, Data: payload})
}

func (c *Client) sendError(msg string) {
	payload, _ := json.Marshal(map[string]string{"message": msg})
	c.trySend(WsEvent{Event: "error", Data: payload})
}

// Close signals the write pump to shut the connection down; safe to call
// from any goroutine, more than once.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}
