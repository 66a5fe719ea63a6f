// Package assistant 提供工具编排的对话服务
package assistant

import (
	"context"
	"fmt"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/opsdeck/opsdeck/internal/model"
)

// 工具轮次耗尽时返回的兜底回答
const maxRoundsFallback = "I could not complete this request within the allowed number of tool calls. Please try again with a more specific question."

// defaultMaxToolRounds 默认工具轮次上限
const defaultMaxToolRounds = 8

// ToolExecutor 工具执行能力
// 执行失败以 JSON 错误字符串返回，从不返回 error
type ToolExecutor interface {
	Infos(ctx context.Context) ([]*schema.ToolInfo, error)
	Execute(ctx context.Context, name, arguments string) string
}

// Store 会话与消息的持久化能力
type Store interface {
	CreateConversation(conv *model.Conversation) error
	GetConversationByID(id string) (*model.Conversation, error)
	GetMessagesByConversationID(conversationID string) ([]*model.Message, error)
	CreateMessage(msg *model.Message) error
	TouchConversation(id string, at time.Time) error
}

// Config 对话服务配置
type Config struct {
	ChatModel     einomodel.ToolCallingChatModel
	Executor      ToolExecutor
	Store         Store
	MaxToolRounds int
	Now           func() time.Time
}

// Service 对话服务
type Service struct {
	chatModel einomodel.ToolCallingChatModel
	executor  ToolExecutor
	store     Store
	maxRounds int
	now       func() time.Time
}

// NewService 创建对话服务，启动时把工具目录绑定到模型
func NewService(ctx context.Context, cfg *Config) (*Service, error) {
	infos, err := cfg.Executor.Infos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tool infos: %w", err)
	}

	bound, err := cfg.ChatModel.WithTools(infos)
	if err != nil {
		return nil, fmt.Errorf("failed to bind tools: %w", err)
	}

	maxRounds := cfg.MaxToolRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxToolRounds
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		chatModel: bound,
		executor:  cfg.Executor,
		store:     cfg.Store,
		maxRounds: maxRounds,
		now:       now,
	}, nil
}

// ChatRequest 对话请求
type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message" binding:"required"`
}

// ChatResponse 对话结果
type ChatResponse struct {
	ConversationID string           `json:"conversation_id"`
	Reply          string           `json:"reply"`
	ToolCalls      []model.ToolCall `json:"tool_calls"`
}

// Chat 执行一次完整交互
// 用户消息先落库，再进入模型与工具的循环，最终回答连同工具调用轨迹一并落库
func (s *Service) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	now := s.now()

	conv, err := s.resolveConversation(req, now)
	if err != nil {
		return nil, err
	}

	history, err := s.store.GetMessagesByConversationID(conv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	userMsg := &model.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Role:           model.RoleUser,
		Content:        req.Message,
	}
	if err := s.store.CreateMessage(userMsg); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	transcript := s.buildTranscript(history, req.Message, now)

	reply, trace, err := s.runToolLoop(ctx, transcript)
	if err != nil {
		return nil, err
	}

	assistantMsg := &model.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Role:           model.RoleAssistant,
		Content:        reply,
	}
	for i := range trace {
		trace[i].MessageID = assistantMsg.ID
	}
	assistantMsg.ToolCalls = trace

	if err := s.store.CreateMessage(assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}
	if err := s.store.TouchConversation(conv.ID, s.now()); err != nil {
		return nil, fmt.Errorf("failed to touch conversation: %w", err)
	}

	return &ChatResponse{
		ConversationID: conv.ID,
		Reply:          reply,
		ToolCalls:      trace,
	}, nil
}

// resolveConversation 查找或创建会话
// 新会话标题取用户消息的前 50 个字符
func (s *Service) resolveConversation(req *ChatRequest, now time.Time) (*model.Conversation, error) {
	if req.ConversationID != "" {
		conv, err := s.store.GetConversationByID(req.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("conversation not found: %w", err)
		}
		return conv, nil
	}

	conv := &model.Conversation{
		ID:            uuid.New().String(),
		Title:         titleFrom(req.Message),
		Status:        model.ConversationStatusActive,
		LastMessageAt: now,
	}
	if err := s.store.CreateConversation(conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// buildTranscript 构建提交给模型的消息列表
// 系统提示 + 历史消息（软删除的跳过，只回放文本）+ 新用户消息
func (s *Service) buildTranscript(history []*model.Message, userMessage string, now time.Time) []*schema.Message {
	transcript := make([]*schema.Message, 0, len(history)+2)
	transcript = append(transcript, schema.SystemMessage(BuildSystemPrompt(now)))

	for _, msg := range history {
		if msg.IsDeleted {
			continue
		}
		switch msg.Role {
		case model.RoleUser:
			transcript = append(transcript, schema.UserMessage(msg.Content))
		case model.RoleAssistant:
			transcript = append(transcript, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return append(transcript, schema.UserMessage(userMessage))
}

// runToolLoop 模型与工具交替的主循环
// 模型返回纯文本即终止；工具失败不终止，错误作为结果喂回模型；
// 超过轮次上限时强制返回兜底回答
func (s *Service) runToolLoop(ctx context.Context, transcript []*schema.Message) (string, []model.ToolCall, error) {
	var trace []model.ToolCall

	for round := 0; round < s.maxRounds; round++ {
		resp, err := s.chatModel.Generate(ctx, transcript)
		if err != nil {
			return "", nil, fmt.Errorf("chat model failed: %w", err)
		}

		// 纯文本回答，空字符串也视为有效
		if len(resp.ToolCalls) == 0 {
			return resp.Content, trace, nil
		}

		transcript = append(transcript, resp)
		for _, tc := range resp.ToolCalls {
			result := s.executor.Execute(ctx, tc.Function.Name, tc.Function.Arguments)
			trace = append(trace, model.ToolCall{
				ID:        uuid.New().String(),
				CallID:    tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
				Result:    result,
				Seq:       len(trace),
			})
			transcript = append(transcript, schema.ToolMessage(result, tc.ID))
		}
	}

	return maxRoundsFallback, trace, nil
}

// titleFrom 取消息前 50 个字符作为标题
func titleFrom(message string) string {
	runes := []rune(message)
	if len(runes) <= 50 {
		return message
	}
	return string(runes[:50])
}
