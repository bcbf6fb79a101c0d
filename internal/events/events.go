// Package events carries mutations from the API layer to the realtime hub
// over an in-process Watermill pub/sub. Publishing is fire-and-forget: a
// failed publish is logged and never fails the originating request.
package events

import (
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topic is the single stream of broadcast-worthy events.
const Topic = "realtime.events"

// Server-to-client event names.
const (
	EventNewMessage  = "new-message"
	EventNewQuestion = "new-question"
	EventNewReply    = "new-reply"
	EventUserTyping  = "user-typing"
	EventUserStatus  = "user-status"
	EventJoined      = "joined"
)

// Room names.
const (
	GlobalRoom        = "global-chat"
	PrivateRoomPrefix = "private-chat-"
)

// PrivateRoom returns the room name for a private chat.
func PrivateRoom(chatID string) string {
	return PrivateRoomPrefix + chatID
}

// Envelope is the wire format between publisher and hub bridge.
type Envelope struct {
	Room    string          `json:"room"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// NewBus builds the in-process pub/sub both sides attach to.
func NewBus(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
	}, watermill.NewSlogLogger(logger))
}

// Publisher emits room events onto the bus.
type Publisher struct {
	pub    message.Publisher
	logger *slog.Logger
}

func NewPublisher(pub message.Publisher, logger *slog.Logger) *Publisher {
	return &Publisher{pub: pub, logger: logger}
}

// Publish broadcasts payload to room subscribers. Errors are swallowed;
// persistence never depends on delivery.
func (p *Publisher) Publish(room, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("marshal event payload", "event", event, "error", err)
		return
	}

	body, err := json.Marshal(Envelope{Room: room, Event: event, Payload: data})
	if err != nil {
		p.logger.Error("marshal event envelope", "event", event, "error", err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := p.pub.Publish(Topic, msg); err != nil {
		p.logger.Error("publish event", "event", event, "room", room, "error", err)
	}
}
