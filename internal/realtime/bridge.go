package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/studyhall-app/studyhall-service/internal/events"
)

// Bridge consumes the event bus and replays envelopes into hub rooms. It is
// the only consumer of the bus; the API layer never touches the hub
// directly.
type Bridge struct {
	sub    message.Subscriber
	hub    *Hub
	logger *slog.Logger
}

func NewBridge(sub message.Subscriber, hub *Hub, logger *slog.Logger) *Bridge {
	return &Bridge{sub: sub, hub: hub, logger: logger}
}

// Run blocks until ctx is cancelled or the subscription closes.
func (b *Bridge) Run(ctx context.Context) error {
	msgs, err := b.sub.Subscribe(ctx, events.Topic)
	if err != nil {
		return err
	}

	for msg := range msgs {
		var env events.Envelope
		if err := json.Unmarshal(msg.Payload, &env); err != nil {
			b.logger.Error("bad event envelope", "error", err)
			msg.Ack()
			continue
		}
		b.hub.Publish(env.Room, env.Event, env.Payload)
		msg.Ack()
	}
	return nil
}
