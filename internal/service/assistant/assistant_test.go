// Package assistant 提供对话服务单元测试
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/opsdeck/opsdeck/internal/model"
)

// ========== 测试辅助 ==========

// scriptedModel 按脚本返回响应的 ChatModel
type scriptedModel struct {
	responses   []*schema.Message
	calls       int
	transcripts [][]*schema.Message
}

func (m *scriptedModel) Generate(ctx context.Context, msgs []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	m.transcripts = append(m.transcripts, msgs)
	if m.calls >= len(m.responses) {
		return nil, errors.New("no scripted response left")
	}
	resp := m.responses[m.calls]
	m.calls++
	return resp, nil
}

func (m *scriptedModel) Stream(ctx context.Context, msgs []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported in tests")
}

func (m *scriptedModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	return m, nil
}

// loopingModel 永远请求工具调用的 ChatModel
type loopingModel struct {
	calls int
}

func (m *loopingModel) Generate(ctx context.Context, msgs []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	m.calls++
	return &schema.Message{
		Role: schema.Assistant,
		ToolCalls: []schema.ToolCall{
			{ID: fmt.Sprintf("call-%d", m.calls), Function: schema.FunctionCall{Name: "list_sops", Arguments: "{}"}},
		},
	}, nil
}

func (m *loopingModel) Stream(ctx context.Context, msgs []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported in tests")
}

func (m *loopingModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	return m, nil
}

// stubExecutor 固定结果的工具执行器
type stubExecutor struct {
	results map[string]string
}

func (e *stubExecutor) Infos(ctx context.Context) ([]*schema.ToolInfo, error) {
	return nil, nil
}

func (e *stubExecutor) Execute(ctx context.Context, name, arguments string) string {
	if result, ok := e.results[name]; ok {
		return result
	}
	return fmt.Sprintf(`{"error":"Unknown tool: %s"}`, name)
}

// memoryStore 内存版会话存储
type memoryStore struct {
	conversations map[string]*model.Conversation
	messages      map[string][]*model.Message
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		conversations: make(map[string]*model.Conversation),
		messages:      make(map[string][]*model.Message),
	}
}

func (s *memoryStore) CreateConversation(conv *model.Conversation) error {
	s.conversations[conv.ID] = conv
	return nil
}

func (s *memoryStore) GetConversationByID(id string) (*model.Conversation, error) {
	conv, ok := s.conversations[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return conv, nil
}

func (s *memoryStore) GetMessagesByConversationID(conversationID string) ([]*model.Message, error) {
	return s.messages[conversationID], nil
}

func (s *memoryStore) CreateMessage(msg *model.Message) error {
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], msg)
	return nil
}

func (s *memoryStore) TouchConversation(id string, at time.Time) error {
	if conv, ok := s.conversations[id]; ok {
		conv.LastMessageAt = at
	}
	return nil
}

func newTestService(t *testing.T, chatModel einomodel.ToolCallingChatModel, store *memoryStore, maxRounds int) *Service {
	t.Helper()

	svc, err := NewService(context.Background(), &Config{
		ChatModel: chatModel,
		Executor: &stubExecutor{results: map[string]string{
			"list_sops":    `[{"id":"s1","title":"Onboarding","category":"ops"}]`,
			"get_context":  `{"sop_count":1}`,
			"create_sop":   `{"success":true,"id":"s2","message":"SOP created"}`,
		}},
		Store:         store,
		MaxToolRounds: maxRounds,
		Now:           func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

// ========== Chat 测试 ==========

func TestChatWithoutToolCalls(t *testing.T) {
	store := newMemoryStore()
	chatModel := &scriptedModel{responses: []*schema.Message{
		{Role: schema.Assistant, Content: "Hello, how can I help?"},
	}}
	svc := newTestService(t, chatModel, store, 0)

	resp, err := svc.Chat(context.Background(), &ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if resp.Reply != "Hello, how can I help?" {
		t.Errorf("Reply = %q, want greeting", resp.Reply)
	}
	if len(resp.ToolCalls) != 0 {
		t.Errorf("ToolCalls = %d, want 0", len(resp.ToolCalls))
	}

	msgs := store.messages[resp.ConversationID]
	if len(msgs) != 2 {
		t.Fatalf("persisted messages = %d, want 2", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[1].Role != model.RoleAssistant {
		t.Errorf("roles = %s, %s, want user, assistant", msgs[0].Role, msgs[1].Role)
	}
	if len(msgs[1].ToolCalls) != 0 {
		t.Errorf("assistant tool calls = %d, want 0", len(msgs[1].ToolCalls))
	}
}

func TestChatCreatesConversationWithTruncatedTitle(t *testing.T) {
	store := newMemoryStore()
	chatModel := &scriptedModel{responses: []*schema.Message{
		{Role: schema.Assistant, Content: "Sure."},
	}}
	svc := newTestService(t, chatModel, store, 0)

	message := "Plan Q1 goals and budget review cycle right now please"
	resp, err := svc.Chat(context.Background(), &ChatRequest{Message: message})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	conv := store.conversations[resp.ConversationID]
	if conv == nil {
		t.Fatal("conversation was not created")
	}

	want := string([]rune(message)[:50])
	if conv.Title != want {
		t.Errorf("Title = %q, want %q", conv.Title, want)
	}
	if got := len([]rune(conv.Title)); got != 50 {
		t.Errorf("title length = %d, want 50", got)
	}
	if conv.Status != model.ConversationStatusActive {
		t.Errorf("Status = %q, want active", conv.Status)
	}
}

func TestChatShortMessageKeepsFullTitle(t *testing.T) {
	store := newMemoryStore()
	chatModel := &scriptedModel{responses: []*schema.Message{
		{Role: schema.Assistant, Content: "ok"},
	}}
	svc := newTestService(t, chatModel, store, 0)

	resp, err := svc.Chat(context.Background(), &ChatRequest{Message: "short one"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if got := store.conversations[resp.ConversationID].Title; got != "short one" {
		t.Errorf("Title = %q, want %q", got, "short one")
	}
}

func TestChatAccumulatesToolCallTrace(t *testing.T) {
	store := newMemoryStore()
	chatModel := &scriptedModel{responses: []*schema.Message{
		{
			Role: schema.Assistant,
			ToolCalls: []schema.ToolCall{
				{ID: "call-1", Function: schema.FunctionCall{Name: "get_context", Arguments: "{}"}},
				{ID: "call-2", Function: schema.FunctionCall{Name: "list_sops", Arguments: "{}"}},
			},
		},
		{
			Role: schema.Assistant,
			ToolCalls: []schema.ToolCall{
				{ID: "call-3", Function: schema.FunctionCall{Name: "create_sop", Arguments: `{"title":"Weekly review"}`}},
			},
		},
		{Role: schema.Assistant, Content: "Created the SOP."},
	}}
	svc := newTestService(t, chatModel, store, 0)

	resp, err := svc.Chat(context.Background(), &ChatRequest{Message: "set up a weekly review sop"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if resp.Reply != "Created the SOP." {
		t.Errorf("Reply = %q", resp.Reply)
	}
	if len(resp.ToolCalls) != 3 {
		t.Fatalf("trace length = %d, want 3", len(resp.ToolCalls))
	}
	for i, tc := range resp.ToolCalls {
		if tc.Seq != i {
			t.Errorf("ToolCalls[%d].Seq = %d, want %d", i, tc.Seq, i)
		}
		if tc.Result == "" {
			t.Errorf("ToolCalls[%d].Result is empty", i)
		}
	}

	msgs := store.messages[resp.ConversationID]
	if len(msgs) != 2 {
		t.Fatalf("persisted messages = %d, want 2", len(msgs))
	}
	if len(msgs[1].ToolCalls) != 3 {
		t.Errorf("persisted tool calls = %d, want 3", len(msgs[1].ToolCalls))
	}
	for _, tc := range msgs[1].ToolCalls {
		if tc.MessageID != msgs[1].ID {
			t.Errorf("tool call message id = %q, want %q", tc.MessageID, msgs[1].ID)
		}
	}
}

func TestChatEmptyFinalContentIsValid(t *testing.T) {
	store := newMemoryStore()
	chatModel := &scriptedModel{responses: []*schema.Message{
		{Role: schema.Assistant, Content: ""},
	}}
	svc := newTestService(t, chatModel, store, 0)

	resp, err := svc.Chat(context.Background(), &ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.Reply != "" {
		t.Errorf("Reply = %q, want empty", resp.Reply)
	}

	msgs := store.messages[resp.ConversationID]
	if len(msgs) != 2 {
		t.Errorf("persisted messages = %d, want 2", len(msgs))
	}
}

func TestChatStopsAtMaxToolRounds(t *testing.T) {
	store := newMemoryStore()
	chatModel := &loopingModel{}
	svc := newTestService(t, chatModel, store, 3)

	resp, err := svc.Chat(context.Background(), &ChatRequest{Message: "loop forever"})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if resp.Reply != maxRoundsFallback {
		t.Errorf("Reply = %q, want fallback answer", resp.Reply)
	}
	if chatModel.calls != 3 {
		t.Errorf("model calls = %d, want 3", chatModel.calls)
	}
	if len(resp.ToolCalls) != 3 {
		t.Errorf("trace length = %d, want 3", len(resp.ToolCalls))
	}
}

func TestChatUnknownConversation(t *testing.T) {
	store := newMemoryStore()
	chatModel := &scriptedModel{}
	svc := newTestService(t, chatModel, store, 0)

	_, err := svc.Chat(context.Background(), &ChatRequest{ConversationID: "missing", Message: "hi"})
	if err == nil {
		t.Fatal("Chat() expected error for unknown conversation")
	}
}

func TestChatTranscriptSkipsDeletedMessages(t *testing.T) {
	store := newMemoryStore()
	conv := &model.Conversation{ID: "c1", Title: "t", Status: model.ConversationStatusActive}
	store.conversations["c1"] = conv
	store.messages["c1"] = []*model.Message{
		{ID: "m1", ConversationID: "c1", Role: model.RoleUser, Content: "first"},
		{ID: "m2", ConversationID: "c1", Role: model.RoleAssistant, Content: "secret", IsDeleted: true},
		{ID: "m3", ConversationID: "c1", Role: model.RoleAssistant, Content: "visible"},
	}

	chatModel := &scriptedModel{responses: []*schema.Message{
		{Role: schema.Assistant, Content: "ok"},
	}}
	svc := newTestService(t, chatModel, store, 0)

	if _, err := svc.Chat(context.Background(), &ChatRequest{ConversationID: "c1", Message: "next"}); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	transcript := chatModel.transcripts[0]
	// 系统提示 + first + visible + next
	if len(transcript) != 4 {
		t.Fatalf("transcript length = %d, want 4", len(transcript))
	}
	if transcript[0].Role != schema.System {
		t.Errorf("transcript[0].Role = %s, want system", transcript[0].Role)
	}
	for _, msg := range transcript {
		if strings.Contains(msg.Content, "secret") {
			t.Error("deleted message leaked into transcript")
		}
	}
}

func TestChatModelErrorPropagates(t *testing.T) {
	store := newMemoryStore()
	chatModel := &scriptedModel{} // 无脚本响应，Generate 直接报错
	svc := newTestService(t, chatModel, store, 0)

	_, err := svc.Chat(context.Background(), &ChatRequest{Message: "hi"})
	if err == nil {
		t.Fatal("Chat() expected error when model fails")
	}
}
