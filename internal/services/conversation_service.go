package services

import (
	"context"
	"errors"

	"nhatro-chat/internal/domain/chat"
	"nhatro-chat/internal/repository"
	nhatro_errors "nhatro-chat/pkg/errors"
	"nhatro-chat/pkg/logger"

	"github.com/google/uuid"
)

type ConversationService struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	listingRepo      repository.ListingRepository
	uploads          *UploadService
	dispatcher       Dispatcher
	log              *logger.Logger
}

func NewConversationService(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	listingRepo repository.ListingRepository,
	uploads *UploadService,
	dispatcher Dispatcher,
	log *logger.Logger,
) *ConversationService {
	if dispatcher == nil {
		dispatcher = NopDispatcher{}
	}
	return &ConversationService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		listingRepo:      listingRepo,
		uploads:          uploads,
		dispatcher:       dispatcher,
		log:              log,
	}
}

// GetOrCreate returns the conversation between the two users about a listing,
// creating it if absent. The pair is normalized so the argument order never
// produces a second row; a concurrent create loses the unique-index race and
// re-fetches the winner.
func (s *ConversationService) GetOrCreate(ctx context.Context, listingID, userA, userB uuid.UUID) (chat.Conversation, error) {
	if userA == userB {
		return chat.Conversation{}, nhatro_errors.ErrInvalidInput
	}
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return chat.Conversation{}, err
	}

	low, high := chat.NormalizePair(userA, userB)
	existing, err := s.conversationRepo.FindByPair(ctx, listingID, low, high)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, nhatro_errors.ErrNotFound) {
		return chat.Conversation{}, err
	}

	conversation := chat.Conversation{
		ID:         uuid.New(),
		ListingID:  listingID,
		UserLowID:  low,
		UserHighID: high,
	}
	err = s.conversationRepo.Create(ctx, &conversation)
	if err == nil {
		return conversation, nil
	}
	if errors.Is(err, nhatro_errors.ErrAlreadyExists) {
		return s.conversationRepo.FindByPair(ctx, listingID, low, high)
	}
	return chat.Conversation{}, err
}

func (s *ConversationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]chat.Conversation, error) {
	return s.conversationRepo.GetUserConversations(ctx, userID)
}

func (s *ConversationService) GetByID(ctx context.Context, conversationID, requesterID uuid.UUID) (chat.Conversation, error) {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return chat.Conversation{}, err
	}
	if !conversation.HasParticipant(requesterID) {
		return chat.Conversation{}, nhatro_errors.ErrForbidden
	}
	return conversation, nil
}

// Delete removes the conversation and every message in it. Stored images are
// cleaned up best effort; a failed object delete is logged and does not roll
// back the removal.
func (s *ConversationService) Delete(ctx context.Context, conversationID, requesterID uuid.UUID) error {
	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(requesterID) {
		return nhatro_errors.ErrForbidden
	}

	messages, err := s.messageRepo.ListAll(ctx, conversationID)
	if err != nil {
		return err
	}

	if err := s.messageRepo.DeleteByConversation(ctx, conversationID); err != nil {
		return err
	}
	if err := s.conversationRepo.Delete(ctx, conversationID); err != nil {
		return err
	}

	if s.uploads != nil {
		for _, m := range messages {
			if m.ImageKey == "" {
				continue
			}
			if err := s.uploads.DeleteImage(ctx, m.ImageKey); err != nil && s.log != nil {
				s.log.Warnf("failed to delete message image %s: %v", m.ImageKey, err)
			}
		}
	}

	payload := map[string]interface{}{"conversationId": conversationID}
	for _, participant := range conversation.Participants() {
		s.dispatcher.ToUser(ctx, participant, EventConversationDeleted, payload)
	}
	return nil
}
