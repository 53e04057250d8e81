package httpdto

import "nhatro-chat/internal/domain/chat"

// SendMessageRequest doubles as multipart form fields when an image is
// attached.
type SendMessageRequest struct {
	ConversationID string `json:"conversationId" form:"conversationId" binding:"required"`
	Content        string `json:"content" form:"content"`
	ReplyToID      string `json:"replyToId" form:"replyToId"`
}

type EditMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type ForwardMessageRequest struct {
	MessageID            string `json:"messageId" binding:"required"`
	TargetConversationID string `json:"targetConversationId" binding:"required"`
}

type PinMessageRequest struct {
	Pinned *bool `json:"pinned" binding:"required"`
}

type ReactMessageRequest struct {
	Emoji string `json:"emoji"`
}

type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type MessageListResponse struct {
	Messages   []chat.Message     `json:"messages"`
	Pagination PaginationResponse `json:"pagination"`
}

type UnreadCountResponse struct {
	Count int64 `json:"unreadCount"`
}
