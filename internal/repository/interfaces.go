package repository

import (
	"context"
	"time"

	"nhatro-chat/internal/assistant"
	"nhatro-chat/internal/domain/booking"
	"nhatro-chat/internal/domain/chat"
	"nhatro-chat/internal/domain/listing"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, c *chat.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (chat.Conversation, error)
	FindByPair(ctx context.Context, listingID, userLow, userHigh uuid.UUID) (chat.Conversation, error)
	GetUserConversations(ctx context.Context, userID uuid.UUID) ([]chat.Conversation, error)
	UpdateLastMessage(ctx context.Context, id uuid.UUID, preview string, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MessageRepository interface {
	Create(ctx context.Context, m *chat.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (chat.Message, error)
	Update(ctx context.Context, m chat.Message) error
	// List returns non-deleted messages newest first, with the total count
	// of non-deleted messages in the conversation.
	List(ctx context.Context, conversationID uuid.UUID, page, limit int) ([]chat.Message, int64, error)
	ListAll(ctx context.Context, conversationID uuid.UUID) ([]chat.Message, error)
	DeleteByConversation(ctx context.Context, conversationID uuid.UUID) error
	MarkConversationRead(ctx context.Context, conversationID, readerID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error
	// ListPinned returns the conversation's pinned, non-deleted messages in
	// chronological order.
	ListPinned(ctx context.Context, conversationID uuid.UUID) ([]chat.Message, error)
	ReplaceReaction(ctx context.Context, r *chat.MessageReaction) error
	ClearReaction(ctx context.Context, messageID, userID uuid.UUID) error
	GetReactions(ctx context.Context, messageID uuid.UUID) ([]chat.MessageReaction, error)
}

type ListingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (listing.Listing, error)
	Match(ctx context.Context, criteria assistant.Criteria, limit int) ([]listing.Listing, error)
	Recent(ctx context.Context, limit int) ([]listing.Listing, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (booking.Booking, error)
	Update(ctx context.Context, b booking.Booking) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]booking.Booking, error)
	ListForLandlord(ctx context.Context, landlordID uuid.UUID) ([]booking.Booking, error)
}
