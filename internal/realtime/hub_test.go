package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID uuid.UUID) *Client {
	return &Client{
		ID:       uuid.New().String(),
		UserID:   userID,
		Send:     make(chan []byte, 8),
		channels: make(map[string]bool),
	}
}

func drain(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case msg := <-c.Send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestBroadcastReachesSubscribersOnly(t *testing.T) {
	hub := NewHub()
	userA := newTestClient(uuid.New())
	userB := newTestClient(uuid.New())

	hub.addClient(userA)
	hub.addClient(userB)

	conversationID := uuid.New()
	hub.subscribeToChannel(userA, ConversationChannel(conversationID))

	hub.Broadcast(ConversationChannel(conversationID), []byte(`{"event":"new_message"}`))

	require.Len(t, drain(userA), 1)
	assert.Empty(t, drain(userB))
}

func TestUserChannelDeliversToEveryConnection(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	tab1 := newTestClient(userID)
	tab2 := newTestClient(userID)

	hub.addClient(tab1)
	hub.addClient(tab2)
	hub.subscribeToChannel(tab1, UserChannel(userID))
	hub.subscribeToChannel(tab2, UserChannel(userID))

	hub.Broadcast(UserChannel(userID), []byte(`{"event":"new_booking"}`))

	assert.Len(t, drain(tab1), 1)
	assert.Len(t, drain(tab2), 1)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	client := newTestClient(uuid.New())
	hub.addClient(client)

	conversationID := uuid.New()
	channel := ConversationChannel(conversationID)
	hub.subscribeToChannel(client, channel)
	hub.unsubscribeFromChannel(client, channel)

	hub.Broadcast(channel, []byte(`{}`))
	assert.Empty(t, drain(client))
	assert.Zero(t, hub.SubscriberCount(channel))
}

func TestRemoveClientCleansSubscriptions(t *testing.T) {
	hub := NewHub()
	client := newTestClient(uuid.New())
	hub.addClient(client)

	channel := ConversationChannel(uuid.New())
	hub.subscribeToChannel(client, channel)

	hub.removeClient(client)
	assert.Zero(t, hub.ClientCount())
	assert.Zero(t, hub.SubscriberCount(channel))

	// Send channel is closed after removal.
	_, open := <-client.Send
	assert.False(t, open)
}

func TestFullSendBufferDropsInsteadOfBlocking(t *testing.T) {
	client := &Client{Send: make(chan []byte, 1), channels: make(map[string]bool)}
	client.SendMessage([]byte("first"))
	client.SendMessage([]byte("second"))

	assert.Len(t, drain(client), 1)
}
