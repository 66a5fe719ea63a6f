// Package conversation 提供会话与消息的组织操作
package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/internal/model"
	"github.com/opsdeck/opsdeck/internal/repository"
	"github.com/opsdeck/opsdeck/internal/service/session"
)

// Store 会话与消息的持久化能力
type Store interface {
	CreateConversation(conv *model.Conversation) error
	GetConversationByID(id string) (*model.Conversation, error)
	ListConversations(filter *repository.ConversationFilter, offset, limit int) ([]*model.Conversation, error)
	SearchConversations(q string, offset, limit int) ([]*model.Conversation, error)
	UpdateConversation(conv *model.Conversation) error
	DeleteConversation(id string) error
	ArchiveOlderThan(cutoff time.Time) ([]string, error)
	GetMessagesByConversationID(conversationID string) ([]*model.Message, error)
	GetMessageByID(id string) (*model.Message, error)
	UpdateMessage(msg *model.Message) error
}

// Service 会话组织服务
type Service struct {
	store     Store
	selection *session.Manager
}

// NewService 创建会话组织服务
func NewService(store Store, selection *session.Manager) *Service {
	return &Service{store: store, selection: selection}
}

// CreateRequest 创建会话请求
type CreateRequest struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// Create 创建空会话
// 通常会话随第一条助手消息自动创建，这里提供显式创建入口
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*model.Conversation, error) {
	title := req.Title
	if title == "" {
		title = "New conversation"
	}

	conv := &model.Conversation{
		ID:            uuid.New().String(),
		Title:         title,
		Status:        model.ConversationStatusActive,
		LastMessageAt: time.Now(),
	}
	if len(req.Tags) > 0 {
		conv.SetTagList(req.Tags)
	}

	if err := s.store.CreateConversation(conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// Get 获取会话
func (s *Service) Get(ctx context.Context, id string) (*model.Conversation, error) {
	return s.store.GetConversationByID(id)
}

// List 按过滤条件列出会话
func (s *Service) List(ctx context.Context, filter *repository.ConversationFilter, page, size int) ([]*model.Conversation, error) {
	offset, limit := normalizePage(page, size)
	return s.store.ListConversations(filter, offset, limit)
}

// Search 按标题或摘要检索会话
func (s *Service) Search(ctx context.Context, q string, page, size int) ([]*model.Conversation, error) {
	offset, limit := normalizePage(page, size)
	return s.store.SearchConversations(q, offset, limit)
}

func normalizePage(page, size int) (offset, limit int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return (page - 1) * size, size
}

// UpdateRequest 会话组织字段更新请求，nil 字段不变
type UpdateRequest struct {
	Title    *string   `json:"title"`
	Summary  *string   `json:"summary"`
	Pinned   *bool     `json:"pinned"`
	Starred  *bool     `json:"starred"`
	Archived *bool     `json:"archived"`
	Status   *string   `json:"status"`
	Tags     *[]string `json:"tags"`
}

// Update 更新会话的组织字段
// 归档当前选中的会话时同步清除选中状态
func (s *Service) Update(ctx context.Context, clientID, id string, req *UpdateRequest) (*model.Conversation, error) {
	conv, err := s.store.GetConversationByID(id)
	if err != nil {
		return nil, fmt.Errorf("conversation not found: %w", err)
	}

	if req.Title != nil {
		conv.Title = *req.Title
	}
	if req.Summary != nil {
		conv.Summary = *req.Summary
	}
	if req.Pinned != nil {
		conv.Pinned = *req.Pinned
	}
	if req.Starred != nil {
		conv.Starred = *req.Starred
	}
	if req.Archived != nil {
		conv.Archived = *req.Archived
	}
	if req.Status != nil {
		conv.Status = *req.Status
	}
	if req.Tags != nil {
		conv.SetTagList(*req.Tags)
	}

	if err := s.store.UpdateConversation(conv); err != nil {
		return nil, fmt.Errorf("failed to update conversation: %w", err)
	}

	if req.Archived != nil && *req.Archived {
		if clientID != "" {
			s.selection.ClearIfSelected(ctx, clientID, id)
		} else {
			s.selection.ClearConversation(ctx, id)
		}
	}

	return conv, nil
}

// Delete 删除会话及其全部消息
func (s *Service) Delete(ctx context.Context, clientID, id string) error {
	if _, err := s.store.GetConversationByID(id); err != nil {
		return fmt.Errorf("conversation not found: %w", err)
	}

	if err := s.store.DeleteConversation(id); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	if clientID != "" {
		s.selection.ClearIfSelected(ctx, clientID, id)
	} else {
		s.selection.ClearConversation(ctx, id)
	}
	return nil
}

// ArchiveOld 批量归档最后消息早于 N 天前的会话，置顶的除外
// 被归档的会话若被任何客户端选中，选中状态一并清除
func (s *Service) ArchiveOld(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	ids, err := s.store.ArchiveOlderThan(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to archive conversations: %w", err)
	}

	for _, id := range ids {
		s.selection.ClearConversation(ctx, id)
	}
	return int64(len(ids)), nil
}

// GetMessages 返回会话消息，软删除的消息内容以占位文本展示
// 消息顺序保持不变，不做重新编号
func (s *Service) GetMessages(ctx context.Context, conversationID string) ([]*model.Message, error) {
	msgs, err := s.store.GetMessagesByConversationID(conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	for _, msg := range msgs {
		if msg.IsDeleted {
			msg.Content = model.DeletedMessagePlaceholder
		}
	}
	return msgs, nil
}

// EditMessage 就地编辑消息内容，保留原角色并标记已编辑
func (s *Service) EditMessage(ctx context.Context, messageID, content string) (*model.Message, error) {
	msg, err := s.store.GetMessageByID(messageID)
	if err != nil {
		return nil, fmt.Errorf("message not found: %w", err)
	}
	if msg.IsDeleted {
		return nil, fmt.Errorf("cannot edit a deleted message")
	}

	msg.Content = content
	msg.IsEdited = true
	if err := s.store.UpdateMessage(msg); err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}
	return msg, nil
}

// DeleteMessage 软删除消息，记录保留以维持顺序
func (s *Service) DeleteMessage(ctx context.Context, messageID string) error {
	msg, err := s.store.GetMessageByID(messageID)
	if err != nil {
		return fmt.Errorf("message not found: %w", err)
	}

	msg.IsDeleted = true
	if err := s.store.UpdateMessage(msg); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// Select 标记客户端当前打开的会话
func (s *Service) Select(ctx context.Context, clientID, conversationID string) error {
	if _, err := s.store.GetConversationByID(conversationID); err != nil {
		return fmt.Errorf("conversation not found: %w", err)
	}
	s.selection.Select(ctx, clientID, conversationID)
	return nil
}

// Selected 返回客户端当前选中的会话 ID
func (s *Service) Selected(ctx context.Context, clientID string) string {
	return s.selection.Selected(ctx, clientID)
}
