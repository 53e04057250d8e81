package services

import (
	"context"
	"time"

	"nhatro-chat/internal/domain/chat"
	"nhatro-chat/internal/repository"
	nhatro_errors "nhatro-chat/pkg/errors"
	"nhatro-chat/pkg/logger"

	"github.com/google/uuid"
)

type SendMessageInput struct {
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	Content        string
	ImageURL       string
	ImageKey       string
	ReplyToID      *uuid.UUID
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type MessageService struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	uploads          *UploadService
	dispatcher       Dispatcher
	log              *logger.Logger
	pageSize         int
}

func NewMessageService(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	uploads *UploadService,
	dispatcher Dispatcher,
	log *logger.Logger,
	pageSize int,
) *MessageService {
	if dispatcher == nil {
		dispatcher = NopDispatcher{}
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	return &MessageService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		uploads:          uploads,
		dispatcher:       dispatcher,
		log:              log,
		pageSize:         pageSize,
	}
}

// Send appends a message, refreshes the conversation preview and notifies the
// other participants.
func (s *MessageService) Send(ctx context.Context, input SendMessageInput) (chat.Message, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, input.ConversationID)
	if err != nil {
		return chat.Message{}, err
	}
	if !conversation.HasParticipant(input.SenderID) {
		return chat.Message{}, nhatro_errors.ErrForbidden
	}

	messageType := chat.MessageTypeText
	content := input.Content
	if input.ImageURL != "" {
		messageType = chat.MessageTypeImage
		if content == "" {
			content = chat.ImagePlaceholder
		}
	} else if content == "" {
		return chat.Message{}, nhatro_errors.ErrInvalidInput
	}

	if input.ReplyToID != nil {
		parent, err := s.messageRepo.GetByID(ctx, *input.ReplyToID)
		if err != nil || parent.ConversationID != input.ConversationID || parent.Deleted() {
			return chat.Message{}, nhatro_errors.ErrInvalidReference
		}
	}

	message := chat.Message{
		ID:             uuid.New(),
		ConversationID: input.ConversationID,
		SenderID:       input.SenderID,
		Type:           messageType,
		Content:        content,
		ImageURL:       input.ImageURL,
		ImageKey:       input.ImageKey,
		State:          chat.StateActive,
		ReplyToID:      input.ReplyToID,
	}
	if err := s.messageRepo.Create(ctx, &message); err != nil {
		return chat.Message{}, err
	}

	s.refreshPreview(ctx, conversation.ID, message)
	s.notifyParticipants(ctx, conversation, input.SenderID, EventNewMessage, message)
	return message, nil
}

// Edit rewrites the content of the requester's own message. Deleted messages
// are terminal and refuse the edit.
func (s *MessageService) Edit(ctx context.Context, messageID, requesterID uuid.UUID, content string) (chat.Message, error) {
	if content == "" {
		return chat.Message{}, nhatro_errors.ErrInvalidInput
	}
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return chat.Message{}, err
	}
	if message.SenderID != requesterID {
		return chat.Message{}, nhatro_errors.ErrForbidden
	}
	if err := message.ApplyEdit(content, time.Now()); err != nil {
		return chat.Message{}, err
	}
	conversation, err := s.conversationRepo.GetByID(ctx, message.ConversationID)
	if err != nil {
		return chat.Message{}, err
	}
	if err := s.messageRepo.Update(ctx, message); err != nil {
		return chat.Message{}, err
	}

	s.broadcastLifecycle(ctx, conversation, EventMessageUpdated, message)
	return message, nil
}

// SoftDelete tombstones the message. The row stays so replies keep a target;
// a second delete is a no-op.
func (s *MessageService) SoftDelete(ctx context.Context, messageID, requesterID uuid.UUID) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.SenderID != requesterID {
		return nhatro_errors.ErrForbidden
	}
	if message.Deleted() {
		return nil
	}
	conversation, err := s.conversationRepo.GetByID(ctx, message.ConversationID)
	if err != nil {
		return err
	}

	imageKey := message.ImageKey
	message.ApplyDelete()
	if err := s.messageRepo.Update(ctx, message); err != nil {
		return err
	}

	if imageKey != "" && s.uploads != nil {
		if err := s.uploads.DeleteImage(ctx, imageKey); err != nil && s.log != nil {
			s.log.Warnf("failed to delete message image %s: %v", imageKey, err)
		}
	}

	s.broadcastLifecycle(ctx, conversation, EventMessageDeleted, map[string]interface{}{
		"messageId":      message.ID,
		"conversationId": message.ConversationID,
	})
	return nil
}

func (s *MessageService) Pin(ctx context.Context, messageID, requesterID uuid.UUID, pinned bool) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	conversation, err := s.conversationRepo.GetByID(ctx, message.ConversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(requesterID) {
		return nhatro_errors.ErrForbidden
	}

	if err := s.messageRepo.SetPinned(ctx, messageID, pinned); err != nil {
		return err
	}
	s.broadcastLifecycle(ctx, conversation, EventMessagePinned, map[string]interface{}{
		"messageId":      message.ID,
		"conversationId": message.ConversationID,
		"pinned":         pinned,
	})
	return nil
}

// ListPinned returns the conversation's pinned messages for a participant.
func (s *MessageService) ListPinned(ctx context.Context, conversationID, requesterID uuid.UUID) ([]chat.Message, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(requesterID) {
		return nil, nhatro_errors.ErrForbidden
	}
	return s.messageRepo.ListPinned(ctx, conversationID)
}

// React sets the requester's reaction, replacing any earlier one. An empty
// emoji clears it.
func (s *MessageService) React(ctx context.Context, messageID, requesterID uuid.UUID, emoji string) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.Deleted() {
		return nhatro_errors.ErrInvalidState
	}
	conversation, err := s.conversationRepo.GetByID(ctx, message.ConversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(requesterID) {
		return nhatro_errors.ErrForbidden
	}

	if emoji == "" {
		err = s.messageRepo.ClearReaction(ctx, messageID, requesterID)
	} else {
		err = s.messageRepo.ReplaceReaction(ctx, &chat.MessageReaction{
			MessageID: messageID,
			UserID:    requesterID,
			Emoji:     emoji,
		})
	}
	if err != nil {
		return err
	}

	reactions, err := s.messageRepo.GetReactions(ctx, messageID)
	if err != nil {
		return err
	}
	s.broadcastLifecycle(ctx, conversation, EventMessageReacted, map[string]interface{}{
		"messageId":      message.ID,
		"conversationId": message.ConversationID,
		"reactions":      reactions,
	})
	return nil
}

// Forward copies a message into another conversation the requester belongs to.
func (s *MessageService) Forward(ctx context.Context, messageID, targetConversationID, requesterID uuid.UUID) (chat.Message, error) {
	source, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return chat.Message{}, err
	}
	if source.Deleted() {
		return chat.Message{}, nhatro_errors.ErrInvalidState
	}
	target, err := s.conversationRepo.GetByID(ctx, targetConversationID)
	if err != nil {
		return chat.Message{}, err
	}
	if !target.HasParticipant(requesterID) {
		return chat.Message{}, nhatro_errors.ErrForbidden
	}

	forwarded := source.ForwardCopy(targetConversationID, requesterID)
	if err := s.messageRepo.Create(ctx, &forwarded); err != nil {
		return chat.Message{}, err
	}

	s.refreshPreview(ctx, target.ID, forwarded)
	s.notifyParticipants(ctx, target, requesterID, EventNewMessage, forwarded)
	return forwarded, nil
}

// MarkRead flags every message the requester received in the conversation.
func (s *MessageService) MarkRead(ctx context.Context, conversationID, requesterID uuid.UUID) error {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(requesterID) {
		return nhatro_errors.ErrForbidden
	}
	return s.messageRepo.MarkConversationRead(ctx, conversationID, requesterID)
}

// List returns a chronological page of non-deleted messages. The store pages
// newest first; the slice is reversed so clients render oldest to newest.
func (s *MessageService) List(ctx context.Context, conversationID, requesterID uuid.UUID, page, limit int) ([]chat.Message, Pagination, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, Pagination{}, err
	}
	if !conversation.HasParticipant(requesterID) {
		return nil, Pagination{}, nhatro_errors.ErrForbidden
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = s.pageSize
	}

	messages, total, err := s.messageRepo.List(ctx, conversationID, page, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return messages, Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// UnreadCount recomputes the total from the store on every call.
func (s *MessageService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.messageRepo.UnreadCount(ctx, userID)
}

func (s *MessageService) refreshPreview(ctx context.Context, conversationID uuid.UUID, message chat.Message) {
	// Captionless images already carry the placeholder as content.
	if err := s.conversationRepo.UpdateLastMessage(ctx, conversationID, message.Content, message.CreatedAt); err != nil && s.log != nil {
		s.log.Warnf("failed to refresh conversation preview %s: %v", conversationID, err)
	}
}

// broadcastLifecycle delivers a lifecycle event to both participants' user
// channels, so list views stay fresh, and to the conversation channel for
// clients with the thread open.
func (s *MessageService) broadcastLifecycle(ctx context.Context, conversation chat.Conversation, event string, payload interface{}) {
	s.dispatcher.ToConversation(ctx, conversation.ID, event, payload)
	for _, participant := range conversation.Participants() {
		s.dispatcher.ToUser(ctx, participant, event, payload)
	}
}

func (s *MessageService) notifyParticipants(ctx context.Context, conversation chat.Conversation, senderID uuid.UUID, event string, payload interface{}) {
	for _, participant := range conversation.Participants() {
		if participant == senderID {
			continue
		}
		s.dispatcher.ToUser(ctx, participant, event, payload)
	}
}
