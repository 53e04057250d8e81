package chat

import (
	"testing"
	"time"

	nhatro_errors "nhatro-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePairIsDirectionIndependent(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	low1, high1 := NormalizePair(a, b)
	low2, high2 := NormalizePair(b, a)

	assert.Equal(t, low1, low2)
	assert.Equal(t, high1, high2)
	assert.True(t, low1.String() <= high1.String())
}

func TestApplyEditKeepsMessageEditable(t *testing.T) {
	m := Message{State: StateActive, Content: "first"}

	require.NoError(t, m.ApplyEdit("second", time.Now()))
	assert.Equal(t, StateEdited, m.State)
	require.NotNil(t, m.EditedAt)

	require.NoError(t, m.ApplyEdit("third", time.Now()))
	assert.Equal(t, "third", m.Content)
}

func TestDeleteIsTerminal(t *testing.T) {
	m := Message{State: StateEdited, Content: "secret", ImageURL: "https://cdn/img.jpg", ImageKey: "chat/img.jpg"}

	m.ApplyDelete()
	assert.Equal(t, StateDeleted, m.State)
	assert.Equal(t, TombstoneContent, m.Content)
	assert.Empty(t, m.ImageURL)
	assert.Empty(t, m.ImageKey)

	err := m.ApplyEdit("resurrect", time.Now())
	assert.ErrorIs(t, err, nhatro_errors.ErrInvalidState)
	assert.Equal(t, TombstoneContent, m.Content)
}

func TestForwardCopyText(t *testing.T) {
	source := Message{
		ID:             uuid.New(),
		ConversationID: uuid.New(),
		SenderID:       uuid.New(),
		Type:           MessageTypeText,
		Content:        "còn phòng không?",
		State:          StateEdited,
	}
	target := uuid.New()
	sender := uuid.New()

	copied := source.ForwardCopy(target, sender)
	assert.NotEqual(t, source.ID, copied.ID)
	assert.Equal(t, target, copied.ConversationID)
	assert.Equal(t, sender, copied.SenderID)
	assert.Equal(t, ForwardPrefix+source.Content, copied.Content)
	assert.Equal(t, StateActive, copied.State)
}

func TestForwardCopyImageUsesPlaceholder(t *testing.T) {
	source := Message{
		ID:       uuid.New(),
		Type:     MessageTypeImage,
		Content:  "caption",
		ImageURL: "https://cdn/img.jpg",
		State:    StateActive,
	}

	copied := source.ForwardCopy(uuid.New(), uuid.New())
	assert.Equal(t, ForwardPrefix+ImagePlaceholder, copied.Content)
	assert.Equal(t, source.ImageURL, copied.ImageURL)
}
