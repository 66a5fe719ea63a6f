package model

import (
	"encoding/json"
	"time"
)

// 会话状态
const (
	ConversationStatusActive   = "active"
	ConversationStatusResolved = "resolved"
	ConversationStatusPending  = "pending"
)

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// DeletedMessagePlaceholder 软删除消息的展示占位文本
const DeletedMessagePlaceholder = "This message was deleted"

// Conversation 助手会话
type Conversation struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"size:255" json:"title"`
	Summary       string    `gorm:"type:text" json:"summary,omitempty"`
	Pinned        bool      `gorm:"index;default:false" json:"pinned"`
	Starred       bool      `gorm:"index;default:false" json:"starred"`
	Archived      bool      `gorm:"index;default:false" json:"archived"`
	Status        string    `gorm:"index;size:20;default:active" json:"status"` // active, resolved, pending
	Tags          string    `gorm:"type:jsonb" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	LastMessageAt time.Time `gorm:"index" json:"last_message_at"`
	Messages      []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// TagList 解析标签列表
func (c *Conversation) TagList() []string {
	if c.Tags == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(c.Tags), &tags); err != nil {
		return nil
	}
	return tags
}

// SetTagList 序列化标签列表
func (c *Conversation) SetTagList(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	c.Tags = string(data)
}

// Message 会话消息
// 编辑与删除均为软状态：原始角色与排序位置始终保留
type Message struct {
	ID             string       `gorm:"primaryKey;size:36" json:"id"`
	ConversationID string       `gorm:"index;size:36" json:"conversation_id"`
	Role           string       `gorm:"size:20;index" json:"role"` // user, assistant, system
	Content        string       `gorm:"type:text" json:"content"`
	ContentType    string       `gorm:"size:20;default:text" json:"content_type,omitempty"`
	IsEdited       bool         `gorm:"default:false" json:"is_edited"`
	IsDeleted      bool         `gorm:"default:false" json:"is_deleted"`
	ToolCalls      []ToolCall   `gorm:"foreignKey:MessageID" json:"tool_calls,omitempty"`
	Attachments    []Attachment `gorm:"foreignKey:MessageID" json:"attachments,omitempty"`
	CreatedAt      time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
}

// ToolCall 附着在助手消息上的工具调用记录
// 只有已执行完成的调用才会被持久化，Result 不为空
type ToolCall struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	MessageID string    `gorm:"index;size:36" json:"-"`
	CallID    string    `gorm:"size:64" json:"call_id"` // 模型侧的调用标识
	Name      string    `gorm:"size:100" json:"name"`
	Arguments string    `gorm:"type:jsonb" json:"arguments"`
	Result    string    `gorm:"type:jsonb" json:"result"`
	Seq       int       `json:"seq"` // 单次交互内的执行顺序
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Attachment 消息附件，指向已存储的文件
type Attachment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	MessageID string    `gorm:"index;size:36" json:"-"`
	FileID    string    `gorm:"index;size:36" json:"file_id"`
	FileName  string    `gorm:"size:255" json:"file_name"`
	MimeType  string    `gorm:"size:100" json:"mime_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Conversation) TableName() string { return "conversations" }
func (Message) TableName() string      { return "messages" }
func (ToolCall) TableName() string     { return "tool_calls" }
func (Attachment) TableName() string   { return "attachments" }
