package realtime

import (
	"context"

	internalredis "nhatro-chat/internal/redis"
)

// RedisBridge forwards published envelopes to the local hub. Each instance
// pattern-subscribes the user and conversation channels so cross-instance
// fan-out works without any shared socket state.
type RedisBridge struct {
	subscriber *internalredis.Subscriber
	hub        *Hub
}

func NewRedisBridge(subscriber *internalredis.Subscriber, hub *Hub) *RedisBridge {
	return &RedisBridge{subscriber: subscriber, hub: hub}
}

func (b *RedisBridge) Run(ctx context.Context) error {
	patterns := []string{"channel:user:*", "channel:conversation:*"}
	return b.subscriber.Subscribe(ctx, patterns, func(channel string, payload []byte) {
		b.hub.Broadcast(channel, payload)
	})
}
