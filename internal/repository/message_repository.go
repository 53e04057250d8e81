package repository

import (
	"context"
	"errors"

	"nhatro-chat/internal/domain/chat"
	nhatro_errors "nhatro-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *chat.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (chat.Message, error) {
	var m chat.Message
	err := r.db.WithContext(ctx).
		Preload("Reactions").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Message{}, nhatro_errors.ErrNotFound
		}
		return chat.Message{}, err
	}
	return m, nil
}

func (r *PostgresMessageRepository) Update(ctx context.Context, m chat.Message) error {
	res := r.db.WithContext(ctx).
		Model(&chat.Message{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"content":   m.Content,
			"image_url": m.ImageURL,
			"image_key": m.ImageKey,
			"state":     m.State,
			"edited_at": m.EditedAt,
			"pinned":    m.Pinned,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nhatro_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresMessageRepository) List(ctx context.Context, conversationID uuid.UUID, page, limit int) ([]chat.Message, int64, error) {
	if page < 1 {
		page = 1
	}
	base := r.db.WithContext(ctx).
		Model(&chat.Message{}).
		Where("conversation_id = ? AND state <> ?", conversationID, chat.StateDeleted)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []chat.Message
	err := base.
		Preload("Reactions").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *PostgresMessageRepository) ListAll(ctx context.Context, conversationID uuid.UUID) ([]chat.Message, error) {
	var messages []chat.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PostgresMessageRepository) DeleteByConversation(ctx context.Context, conversationID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("message_id IN (?)", r.db.Model(&chat.Message{}).Select("id").Where("conversation_id = ?", conversationID)).
		Delete(&chat.MessageReaction{}).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Delete(&chat.Message{}).Error
}

func (r *PostgresMessageRepository) MarkConversationRead(ctx context.Context, conversationID, readerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&chat.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = false", conversationID, readerID).
		Update("is_read", true).Error
}

func (r *PostgresMessageRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&chat.Message{}).
		Joins("JOIN conversations ON conversations.id = messages.conversation_id").
		Where("(conversations.user_low_id = ? OR conversations.user_high_id = ?)", userID, userID).
		Where("messages.sender_id <> ? AND messages.is_read = false AND messages.state <> ?", userID, chat.StateDeleted).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresMessageRepository) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	res := r.db.WithContext(ctx).
		Model(&chat.Message{}).
		Where("id = ?", id).
		Update("pinned", pinned)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nhatro_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresMessageRepository) ListPinned(ctx context.Context, conversationID uuid.UUID) ([]chat.Message, error) {
	var messages []chat.Message
	err := r.db.WithContext(ctx).
		Preload("Reactions").
		Where("conversation_id = ? AND pinned = true AND state <> ?", conversationID, chat.StateDeleted).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PostgresMessageRepository) ReplaceReaction(ctx context.Context, reaction *chat.MessageReaction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"emoji"}),
		}).
		Create(reaction).Error
}

func (r *PostgresMessageRepository) ClearReaction(ctx context.Context, messageID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Delete(&chat.MessageReaction{}).Error
}

func (r *PostgresMessageRepository) GetReactions(ctx context.Context, messageID uuid.UUID) ([]chat.MessageReaction, error) {
	var reactions []chat.MessageReaction
	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	return reactions, nil
}
