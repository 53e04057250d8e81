package services_test

import (
	"context"
	"errors"
	"testing"

	"nhatro-chat/internal/domain/chat"
	"nhatro-chat/internal/domain/listing"
	"nhatro-chat/internal/services"
	nhatro_errors "nhatro-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newConversationFixture() (uuid.UUID, uuid.UUID, uuid.UUID, chat.Conversation) {
	listingID := uuid.New()
	userA := uuid.New()
	userB := uuid.New()
	low, high := chat.NormalizePair(userA, userB)
	return listingID, userA, userB, chat.Conversation{
		ID:         uuid.New(),
		ListingID:  listingID,
		UserLowID:  low,
		UserHighID: high,
	}
}

func TestGetOrCreateReturnsExisting(t *testing.T) {
	listingID, userA, userB, existing := newConversationFixture()

	conversationRepo := new(MockConversationRepository)
	listingRepo := new(MockListingRepository)
	listingRepo.On("GetByID", mock.Anything, listingID).Return(listing.Listing{ID: listingID}, nil)
	conversationRepo.On("FindByPair", mock.Anything, listingID, existing.UserLowID, existing.UserHighID).Return(existing, nil)

	svc := services.NewConversationService(conversationRepo, new(MockMessageRepository), listingRepo, nil, nil, nil)

	got, err := svc.GetOrCreate(context.Background(), listingID, userA, userB)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)

	// Reversed argument order resolves to the same normalized pair.
	got, err = svc.GetOrCreate(context.Background(), listingID, userB, userA)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)

	conversationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetOrCreateCreatesWhenMissing(t *testing.T) {
	listingID, userA, userB, fixture := newConversationFixture()

	conversationRepo := new(MockConversationRepository)
	listingRepo := new(MockListingRepository)
	listingRepo.On("GetByID", mock.Anything, listingID).Return(listing.Listing{ID: listingID}, nil)
	conversationRepo.On("FindByPair", mock.Anything, listingID, fixture.UserLowID, fixture.UserHighID).
		Return(chat.Conversation{}, nhatro_errors.ErrNotFound).Once()
	conversationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := services.NewConversationService(conversationRepo, new(MockMessageRepository), listingRepo, nil, nil, nil)

	got, err := svc.GetOrCreate(context.Background(), listingID, userA, userB)
	require.NoError(t, err)
	assert.Equal(t, fixture.UserLowID, got.UserLowID)
	assert.Equal(t, fixture.UserHighID, got.UserHighID)
	conversationRepo.AssertExpectations(t)
}

func TestGetOrCreateRefetchesOnDuplicate(t *testing.T) {
	listingID, userA, userB, winner := newConversationFixture()

	conversationRepo := new(MockConversationRepository)
	listingRepo := new(MockListingRepository)
	listingRepo.On("GetByID", mock.Anything, listingID).Return(listing.Listing{ID: listingID}, nil)
	conversationRepo.On("FindByPair", mock.Anything, listingID, winner.UserLowID, winner.UserHighID).
		Return(chat.Conversation{}, nhatro_errors.ErrNotFound).Once()
	conversationRepo.On("Create", mock.Anything, mock.Anything).Return(nhatro_errors.ErrAlreadyExists)
	conversationRepo.On("FindByPair", mock.Anything, listingID, winner.UserLowID, winner.UserHighID).
		Return(winner, nil).Once()

	svc := services.NewConversationService(conversationRepo, new(MockMessageRepository), listingRepo, nil, nil, nil)

	got, err := svc.GetOrCreate(context.Background(), listingID, userA, userB)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
}

func TestGetOrCreateRejectsSelfConversation(t *testing.T) {
	svc := services.NewConversationService(new(MockConversationRepository), new(MockMessageRepository), new(MockListingRepository), nil, nil, nil)

	user := uuid.New()
	_, err := svc.GetOrCreate(context.Background(), uuid.New(), user, user)
	assert.ErrorIs(t, err, nhatro_errors.ErrInvalidInput)
}

func TestGetOrCreateRequiresListing(t *testing.T) {
	listingID := uuid.New()
	listingRepo := new(MockListingRepository)
	listingRepo.On("GetByID", mock.Anything, listingID).Return(listing.Listing{}, nhatro_errors.ErrNotFound)

	svc := services.NewConversationService(new(MockConversationRepository), new(MockMessageRepository), listingRepo, nil, nil, nil)

	_, err := svc.GetOrCreate(context.Background(), listingID, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, nhatro_errors.ErrNotFound)
}

func TestDeleteForbiddenForOutsider(t *testing.T) {
	_, _, _, conversation := newConversationFixture()

	conversationRepo := new(MockConversationRepository)
	conversationRepo.On("GetByID", mock.Anything, conversation.ID).Return(conversation, nil)

	svc := services.NewConversationService(conversationRepo, new(MockMessageRepository), new(MockListingRepository), nil, nil, nil)

	err := svc.Delete(context.Background(), conversation.ID, uuid.New())
	assert.ErrorIs(t, err, nhatro_errors.ErrForbidden)
}

func TestDeleteSurvivesImageCleanupFailure(t *testing.T) {
	_, userA, _, conversation := newConversationFixture()

	conversationRepo := new(MockConversationRepository)
	messageRepo := new(MockMessageRepository)
	store := new(MockImageStore)
	dispatcher := &RecordingDispatcher{}

	conversationRepo.On("GetByID", mock.Anything, conversation.ID).Return(conversation, nil)
	messageRepo.On("ListAll", mock.Anything, conversation.ID).Return([]chat.Message{
		{ID: uuid.New(), ConversationID: conversation.ID, Type: chat.MessageTypeImage, ImageKey: "chat/a.jpg"},
		{ID: uuid.New(), ConversationID: conversation.ID, Type: chat.MessageTypeText},
	}, nil)
	messageRepo.On("DeleteByConversation", mock.Anything, conversation.ID).Return(nil)
	conversationRepo.On("Delete", mock.Anything, conversation.ID).Return(nil)
	store.On("Delete", mock.Anything, "chat/a.jpg").Return(errors.New("bucket unavailable"))

	svc := services.NewConversationService(conversationRepo, messageRepo, new(MockListingRepository), services.NewUploadService(store), dispatcher, nil)

	err := svc.Delete(context.Background(), conversation.ID, userA)
	require.NoError(t, err)

	require.Len(t, dispatcher.UserEvents, 2)
	for _, ev := range dispatcher.UserEvents {
		assert.Equal(t, services.EventConversationDeleted, ev.Event)
	}
	targets := []uuid.UUID{dispatcher.UserEvents[0].Target, dispatcher.UserEvents[1].Target}
	assert.ElementsMatch(t, []uuid.UUID{conversation.UserLowID, conversation.UserHighID}, targets)
	store.AssertExpectations(t)
}
