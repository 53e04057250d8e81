package chat

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a two-party thread scoped to a single listing. The
// participant pair is stored normalized (lexicographically low/high) so that
// (listing, {A,B}) and (listing, {B,A}) hit the same unique index.
type Conversation struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ListingID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_pair,priority:1" json:"listingId"`
	UserLowID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_pair,priority:2" json:"userLowId"`
	UserHighID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_pair,priority:3" json:"userHighId"`
	LastMessage   string    `gorm:"type:text;default:''" json:"lastMessage"`
	LastMessageAt time.Time `gorm:"index" json:"lastMessageAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NormalizePair orders two user IDs so the pair is direction-independent.
func NormalizePair(a, b uuid.UUID) (low, high uuid.UUID) {
	if a.String() <= b.String() {
		return a, b
	}
	return b, a
}

// Participants returns both participant IDs.
func (c *Conversation) Participants() []uuid.UUID {
	return []uuid.UUID{c.UserLowID, c.UserHighID}
}

// HasParticipant reports whether the user belongs to the conversation.
func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.UserLowID == userID || c.UserHighID == userID
}

// OtherParticipant returns the counterparty of userID.
func (c *Conversation) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if c.UserLowID == userID {
		return c.UserHighID
	}
	return c.UserLowID
}

type Message struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID         `gorm:"type:uuid;not null;index:idx_messages_conversation" json:"conversationId"`
	SenderID       uuid.UUID         `gorm:"type:uuid;not null" json:"senderId"`
	Type           string            `gorm:"type:varchar(16);not null;default:'text'" json:"type"`
	Content        string            `gorm:"type:text;not null" json:"content"`
	ImageURL       string            `gorm:"type:text;default:''" json:"imageUrl,omitempty"`
	ImageKey       string            `gorm:"type:text;default:''" json:"-"`
	IsRead         bool              `gorm:"not null;default:false" json:"isRead"`
	State          string            `gorm:"type:varchar(16);not null;default:'active'" json:"state"`
	EditedAt       *time.Time        `json:"editedAt,omitempty"`
	ReplyToID      *uuid.UUID        `gorm:"type:uuid" json:"replyToId,omitempty"`
	Pinned         bool              `gorm:"not null;default:false" json:"pinned"`
	Reactions      []MessageReaction `gorm:"foreignKey:MessageID" json:"reactions,omitempty"`
	CreatedAt      time.Time         `gorm:"index:idx_messages_conversation" json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// MessageReaction holds at most one emoji per user per message, enforced by
// the composite unique index.
type MessageReaction struct {
	MessageID uuid.UUID `gorm:"type:uuid;primaryKey" json:"messageId"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	Emoji     string    `gorm:"type:varchar(16);not null" json:"emoji"`
	CreatedAt time.Time `json:"createdAt"`
}
