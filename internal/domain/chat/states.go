package chat

import (
	"time"

	nhatro_errors "nhatro-chat/pkg/errors"

	"github.com/google/uuid"
)

// Message lifecycle states. A message stays editable through active and
// edited; deleted is terminal and irreversibly replaces the content with
// the tombstone text.
const (
	StateActive  = "active"
	StateEdited  = "edited"
	StateDeleted = "deleted"
)

const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"

	// TombstoneContent replaces the body of a soft-deleted message.
	TombstoneContent = "Tin nhắn đã bị xóa"

	// ImagePlaceholder is stored as content for image messages sent without
	// a caption.
	ImagePlaceholder = "Đã gửi một hình ảnh"

	// ForwardPrefix labels messages copied into another conversation.
	ForwardPrefix = "[Chuyển tiếp] "
)

// Deleted reports whether the message has been tombstoned.
func (m *Message) Deleted() bool {
	return m.State == StateDeleted
}

// ApplyEdit transitions active|edited -> edited. Tombstoned messages refuse
// further edits.
func (m *Message) ApplyEdit(content string, at time.Time) error {
	if m.Deleted() {
		return nhatro_errors.ErrInvalidState
	}
	m.Content = content
	m.State = StateEdited
	m.EditedAt = &at
	return nil
}

// ApplyDelete transitions into the terminal deleted state. The original
// content is discarded and cannot be recovered; the image reference is kept
// only long enough for the caller to release the stored object.
func (m *Message) ApplyDelete() {
	m.State = StateDeleted
	m.Content = TombstoneContent
	m.ImageURL = ""
	m.ImageKey = ""
}

// ForwardCopy derives a new message body for forwarding into target. Image
// originals keep their image reference; the content always carries the
// forwarded-origin label.
func (m *Message) ForwardCopy(target uuid.UUID, sender uuid.UUID) Message {
	content := ForwardPrefix + m.Content
	if m.Type == MessageTypeImage {
		content = ForwardPrefix + ImagePlaceholder
	}
	return Message{
		ID:             uuid.New(),
		ConversationID: target,
		SenderID:       sender,
		Type:           m.Type,
		Content:        content,
		ImageURL:       m.ImageURL,
		State:          StateActive,
	}
}
