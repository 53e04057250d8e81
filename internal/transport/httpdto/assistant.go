package httpdto

import (
	"time"

	"nhatro-chat/internal/assistant"
	"nhatro-chat/internal/domain/listing"
)

type AssistantChatRequest struct {
	Message string           `json:"message" binding:"required"`
	History []assistant.Turn `json:"conversationHistory"`
}

type AssistantChatResponse struct {
	Response          string             `json:"response"`
	Timestamp         time.Time          `json:"timestamp"`
	Criteria          assistant.Criteria `json:"criteria"`
	SuggestedListings []listing.Listing  `json:"suggestedListings"`
}
