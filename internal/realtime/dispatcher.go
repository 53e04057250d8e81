package realtime

import (
	"context"
	"encoding/json"

	internalredis "nhatro-chat/internal/redis"
	"nhatro-chat/pkg/logger"

	"github.com/google/uuid"
)

// Envelope is the wire format pushed to websocket clients.
type Envelope struct {
	Event          string      `json:"event"`
	ConversationID *uuid.UUID  `json:"conversationId,omitempty"`
	Data           interface{} `json:"data"`
}

// RedisDispatcher publishes envelopes to Redis pub/sub. Every API instance
// runs a bridge that forwards the channels it serves to its local hub, so
// sockets on other instances receive the event too. Publish failures are
// logged and swallowed; realtime delivery never fails a write.
type RedisDispatcher struct {
	publisher *internalredis.Publisher
	log       *logger.Logger
}

func NewRedisDispatcher(publisher *internalredis.Publisher, log *logger.Logger) *RedisDispatcher {
	return &RedisDispatcher{publisher: publisher, log: log}
}

func (d *RedisDispatcher) ToUser(ctx context.Context, userID uuid.UUID, event string, payload interface{}) {
	d.publish(ctx, UserChannel(userID), Envelope{Event: event, Data: payload})
}

func (d *RedisDispatcher) ToConversation(ctx context.Context, conversationID uuid.UUID, event string, payload interface{}) {
	id := conversationID
	d.publish(ctx, ConversationChannel(conversationID), Envelope{Event: event, ConversationID: &id, Data: payload})
}

func (d *RedisDispatcher) publish(ctx context.Context, channel string, envelope Envelope) {
	body, err := json.Marshal(envelope)
	if err != nil {
		if d.log != nil {
			d.log.Errorf("failed to encode realtime envelope: %v", err)
		}
		return
	}
	if err := d.publisher.Publish(ctx, channel, body); err != nil && d.log != nil {
		d.log.Warnf("failed to publish realtime event %s to %s: %v", envelope.Event, channel, err)
	}
}
