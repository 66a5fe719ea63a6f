package repository

import (
	"time"

	"github.com/opsdeck/opsdeck/internal/model"
	"gorm.io/gorm"
)

// ConversationRepository 会话数据访问
type ConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建会话仓库
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// ConversationFilter 会话列表过滤条件
type ConversationFilter struct {
	Pinned   *bool
	Starred  *bool
	Archived *bool
	Status   string
	Tag      string
}

// CreateConversation 创建会话
func (r *ConversationRepository) CreateConversation(conv *model.Conversation) error {
	return r.db.Create(conv).Error
}

// GetConversationByID 获取会话
func (r *ConversationRepository) GetConversationByID(id string) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.Where("id = ?", id).First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations 按条件列出会话，置顶优先，其余按最后消息时间倒序
func (r *ConversationRepository) ListConversations(filter *ConversationFilter, offset, limit int) ([]*model.Conversation, error) {
	var conversations []*model.Conversation
	query := r.db.Order("pinned DESC, last_message_at DESC").Offset(offset).Limit(limit)

	if filter != nil {
		if filter.Pinned != nil {
			query = query.Where("pinned = ?", *filter.Pinned)
		}
		if filter.Starred != nil {
			query = query.Where("starred = ?", *filter.Starred)
		}
		if filter.Archived != nil {
			query = query.Where("archived = ?", *filter.Archived)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Tag != "" {
			query = query.Where("tags::text LIKE ?", "%\""+filter.Tag+"\"%")
		}
	}

	err := query.Find(&conversations).Error
	return conversations, err
}

// SearchConversations 按标题/摘要检索会话
func (r *ConversationRepository) SearchConversations(q string, offset, limit int) ([]*model.Conversation, error) {
	var conversations []*model.Conversation
	pattern := "%" + q + "%"
	err := r.db.Where("title ILIKE ? OR summary ILIKE ?", pattern, pattern).
		Order("last_message_at DESC").
		Offset(offset).Limit(limit).
		Find(&conversations).Error
	return conversations, err
}

// UpdateConversation 更新会话
func (r *ConversationRepository) UpdateConversation(conv *model.Conversation) error {
	return r.db.Save(conv).Error
}

// TouchConversation 刷新会话的最后消息时间
func (r *ConversationRepository) TouchConversation(id string, at time.Time) error {
	return r.db.Model(&model.Conversation{}).Where("id = ?", id).
		Update("last_message_at", at).Error
}

// DeleteConversation 删除会话，级联删除其消息、工具调用与附件
func (r *ConversationRepository) DeleteConversation(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		messageIDs := tx.Model(&model.Message{}).Select("id").Where("conversation_id = ?", id)
		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&model.ToolCall{}).Error; err != nil {
			return err
		}
		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&model.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Message{}, "conversation_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Conversation{}, "id = ?", id).Error
	})
}

// ArchiveOlderThan 归档最后消息时间早于 cutoff 的未归档会话，返回被归档的会话 ID
// 置顶会话不参与批量归档
func (r *ConversationRepository) ArchiveOlderThan(cutoff time.Time) ([]string, error) {
	var ids []string
	if err := r.db.Model(&model.Conversation{}).
		Where("archived = ? AND pinned = ? AND last_message_at < ?", false, false, cutoff).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if err := r.db.Model(&model.Conversation{}).
		Where("id IN ?", ids).
		Update("archived", true).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateMessage 创建消息（连同工具调用与附件记录）
func (r *ConversationRepository) CreateMessage(msg *model.Message) error {
	return r.db.Create(msg).Error
}

// GetMessagesByConversationID 获取会话全部消息，按创建时间升序
func (r *ConversationRepository) GetMessagesByConversationID(conversationID string) ([]*model.Message, error) {
	var messages []*model.Message
	err := r.db.Where("conversation_id = ?", conversationID).
		Preload("ToolCalls", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("Attachments").
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// GetMessageByID 获取单条消息
func (r *ConversationRepository) GetMessageByID(id string) (*model.Message, error) {
	var msg model.Message
	err := r.db.Preload("ToolCalls").Preload("Attachments").Where("id = ?", id).First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdateMessage 更新消息
func (r *ConversationRepository) UpdateMessage(msg *model.Message) error {
	return r.db.Save(msg).Error
}
