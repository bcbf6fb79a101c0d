// Package realtime fans out events to websocket subscribers grouped into
// rooms: one global room and one room per private chat. Delivery is
// best-effort; a slow or gone subscriber never blocks a publish.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/studyhall-app/studyhall-service/internal/events"
)

// MembershipChecker gates subscription to private chat rooms. Joining a
// private room requires proof of membership, not just knowledge of the id.
type MembershipChecker interface {
	IsMember(ctx context.Context, chatID, userID string) (bool, error)
}

// WsEvent is the wire format on the websocket, both directions.
type WsEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Hub tracks connected clients and their room subscriptions.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	clients map[*Client]map[string]struct{} // rooms per client, for disconnect cleanup

	membership MembershipChecker
	logger     *slog.Logger

	closed bool
}

func NewHub(membership MembershipChecker, logger *slog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		clients:    make(map[*Client]map[string]struct{}),
		membership: membership,
		logger:     logger,
	}
}

// Subscribe adds the client to a room's fan-out set.
func (h *Hub) Subscribe(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	set, ok := h.rooms[room]
	if !ok {
		set = make(map[*Client]struct{})
		h.rooms[room] = set
	}
	set[c] = struct{}{}

	memberOf, ok := h.clients[c]
	if !ok {
		memberOf = make(map[string]struct{})
		h.clients[c] = memberOf
	}
	memberOf[room] = struct{}{}
}

// Unsubscribe removes the client from one room.
func (h *Hub) Unsubscribe(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c, room)
}

// Disconnect removes the client from every room.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range h.clients[c] {
		h.dropLocked(c, room)
	}
	delete(h.clients, c)
}

func (h *Hub) dropLocked(c *Client, room string) {
	if set, ok := h.rooms[room]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.rooms, room)
		}
	}
	if memberOf, ok := h.clients[c]; ok {
		delete(memberOf, room)
	}
}

// Publish delivers the event to every subscriber of the room. Within one
// connection, events arrive in publish order; across connections there is no
// ordering guarantee.
func (h *Hub) Publish(room, event string, payload json.RawMessage) {
	h.publish(room, event, payload, nil)
}

// PublishExcept delivers to every subscriber of the room except one; used
// for typing indicators so the typist doesn't echo.
func (h *Hub) PublishExcept(room, event string, payload json.RawMessage, except *Client) {
	h.publish(room, event, payload, except)
}

func (h *Hub) publish(room, event string, payload json.RawMessage, except *Client) {
	h.mu.RLock()
	set := h.rooms[room]
	clients := make([]*Client, 0, len(set))
	for c := range set {
		if c != except {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	ev := WsEvent{Event: event, Data: payload}
	for _, c := range clients {
		if !c.trySend(ev) {
			h.logger.Warn("dropping event for slow client", "event", event, "room", room, "user_id", c.userID)
		}
	}
}

// Broadcast delivers to every connected client regardless of rooms; used for
// user-status presence updates.
func (h *Hub) Broadcast(event string, payload json.RawMessage) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	ev := WsEvent{Event: event, Data: payload}
	for _, c := range clients {
		if !c.trySend(ev) {
			h.logger.Warn("dropping broadcast for slow client", "event", event, "user_id", c.userID)
		}
	}
}

// Stop closes every client connection and refuses new subscriptions.
func (h *Hub) Stop() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.rooms = make(map[string]map[*Client]struct{})
	h.clients = make(map[*Client]map[string]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
}

// RoomSize reports the current subscriber count of a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// handleClientEvent dispatches a client-to-server event.
func (h *Hub) handleClientEvent(ctx context.Context, c *Client, ev WsEvent) {
	switch ev.Event {
	case "join-global-chat":
		h.Subscribe(c, events.GlobalRoom)
		c.sendJoined(events.GlobalRoom)

	case "join-private-chat":
		var chatID string
		if err := json.Unmarshal(ev.Data, &chatID); err != nil || chatID == "" {
			c.sendError("chatId required")
			return
		}
		ok, err := h.membership.IsMember(ctx, chatID, c.userID)
		if err != nil {
			c.sendError("failed to verify membership")
			return
		}
		if !ok {
			c.sendError("not a member of this chat")
			return
		}
		room := events.PrivateRoom(chatID)
		h.Subscribe(c, room)
		c.sendJoined(room)

	case "leave-room":
		var room string
		if err := json.Unmarshal(ev.Data, &room); err != nil || room == "" {
			return
		}
		h.Unsubscribe(c, room)

	case "typing":
		var data struct {
			Room     string `json:"room"`
			Username string `json:"username"`
		}
		if err := json.Unmarshal(ev.Data, &data); err != nil || data.Room == "" {
			return
		}
		payload, _ := json.Marshal(map[string]string{"username": data.Username})
		h.PublishExcept(data.Room, events.EventUserTyping, payload, c)

	case "user-online":
		var data struct {
			UserID   string `json:"userId"`
			Username string `json:"username"`
		}
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			return
		}
		payload, _ := json.Marshal(map[string]string{
			"userId":   data.UserID,
			"username": data.Username,
			"status":   "online",
		})
		h.Broadcast(events.EventUserStatus, payload)

	default:
		h.logger.Debug("unknown client event", "event", ev.Event, "user_id", c.userID)
	}
}
