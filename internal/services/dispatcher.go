package services

import (
	"context"

	"github.com/google/uuid"
)

// Realtime event names carried in dispatch envelopes.
const (
	EventNewMessage          = "new_message"
	EventMessageUpdated      = "message_updated"
	EventMessageDeleted      = "message_deleted"
	EventMessagePinned       = "message_pinned"
	EventMessageReacted      = "message_reacted"
	EventConversationDeleted = "conversation_deleted"
	EventNewBooking          = "new_booking"
	EventBookingUpdated      = "booking_updated"
)

// Dispatcher delivers realtime events. Services depend on this interface
// only; the production implementation publishes through Redis so every API
// instance can reach every connected socket. Delivery is best effort and
// never fails a write.
type Dispatcher interface {
	// ToUser delivers to every socket of one user.
	ToUser(ctx context.Context, userID uuid.UUID, event string, payload interface{})
	// ToConversation delivers to every socket currently joined to the
	// conversation channel.
	ToConversation(ctx context.Context, conversationID uuid.UUID, event string, payload interface{})
}

// NopDispatcher drops every event. Used when realtime delivery is disabled.
type NopDispatcher struct{}

func (NopDispatcher) ToUser(ctx context.Context, userID uuid.UUID, event string, payload interface{}) {
}

func (NopDispatcher) ToConversation(ctx context.Context, conversationID uuid.UUID, event string, payload interface{}) {
}
