package services_test

import (
	"context"
	"io"
	"time"

	"nhatro-chat/internal/assistant"
	"nhatro-chat/internal/domain/booking"
	"nhatro-chat/internal/domain/chat"
	"nhatro-chat/internal/domain/listing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, c *chat.Conversation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (chat.Conversation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(chat.Conversation), args.Error(1)
}

func (m *MockConversationRepository) FindByPair(ctx context.Context, listingID, userLow, userHigh uuid.UUID) (chat.Conversation, error) {
	args := m.Called(ctx, listingID, userLow, userHigh)
	return args.Get(0).(chat.Conversation), args.Error(1)
}

func (m *MockConversationRepository) GetUserConversations(ctx context.Context, userID uuid.UUID) ([]chat.Conversation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]chat.Conversation), args.Error(1)
}

func (m *MockConversationRepository) UpdateLastMessage(ctx context.Context, id uuid.UUID, preview string, at time.Time) error {
	args := m.Called(ctx, id, preview, at)
	return args.Error(0)
}

func (m *MockConversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *chat.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (chat.Message, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(chat.Message), args.Error(1)
}

func (m *MockMessageRepository) Update(ctx context.Context, msg chat.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) List(ctx context.Context, conversationID uuid.UUID, page, limit int) ([]chat.Message, int64, error) {
	args := m.Called(ctx, conversationID, page, limit)
	return args.Get(0).([]chat.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MockMessageRepository) ListAll(ctx context.Context, conversationID uuid.UUID) ([]chat.Message, error) {
	args := m.Called(ctx, conversationID)
	return args.Get(0).([]chat.Message), args.Error(1)
}

func (m *MockMessageRepository) DeleteByConversation(ctx context.Context, conversationID uuid.UUID) error {
	args := m.Called(ctx, conversationID)
	return args.Error(0)
}

func (m *MockMessageRepository) MarkConversationRead(ctx context.Context, conversationID, readerID uuid.UUID) error {
	args := m.Called(ctx, conversationID, readerID)
	return args.Error(0)
}

func (m *MockMessageRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	args := m.Called(ctx, id, pinned)
	return args.Error(0)
}

func (m *MockMessageRepository) ListPinned(ctx context.Context, conversationID uuid.UUID) ([]chat.Message, error) {
	args := m.Called(ctx, conversationID)
	return args.Get(0).([]chat.Message), args.Error(1)
}

func (m *MockMessageRepository) ReplaceReaction(ctx context.Context, r *chat.MessageReaction) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockMessageRepository) ClearReaction(ctx context.Context, messageID, userID uuid.UUID) error {
	args := m.Called(ctx, messageID, userID)
	return args.Error(0)
}

func (m *MockMessageRepository) GetReactions(ctx context.Context, messageID uuid.UUID) ([]chat.MessageReaction, error) {
	args := m.Called(ctx, messageID)
	return args.Get(0).([]chat.MessageReaction), args.Error(1)
}

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) GetByID(ctx context.Context, id uuid.UUID) (listing.Listing, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(listing.Listing), args.Error(1)
}

func (m *MockListingRepository) Match(ctx context.Context, criteria assistant.Criteria, limit int) ([]listing.Listing, error) {
	args := m.Called(ctx, criteria, limit)
	return args.Get(0).([]listing.Listing), args.Error(1)
}

func (m *MockListingRepository) Recent(ctx context.Context, limit int) ([]listing.Listing, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]listing.Listing), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, b booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]booking.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForLandlord(ctx context.Context, landlordID uuid.UUID) ([]booking.Booking, error) {
	args := m.Called(ctx, landlordID)
	return args.Get(0).([]booking.Booking), args.Error(1)
}

// RecordingDispatcher captures dispatched events for assertions.
type RecordingDispatcher struct {
	UserEvents         []DispatchedEvent
	ConversationEvents []DispatchedEvent
}

type DispatchedEvent struct {
	Target  uuid.UUID
	Event   string
	Payload interface{}
}

func (d *RecordingDispatcher) ToUser(ctx context.Context, userID uuid.UUID, event string, payload interface{}) {
	d.UserEvents = append(d.UserEvents, DispatchedEvent{Target: userID, Event: event, Payload: payload})
}

func (d *RecordingDispatcher) ToConversation(ctx context.Context, conversationID uuid.UUID, event string, payload interface{}) {
	d.ConversationEvents = append(d.ConversationEvents, DispatchedEvent{Target: conversationID, Event: event, Payload: payload})
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
